package docstore

import (
	"encoding/json"
	"math"
	"strconv"
)

// Fields is the untyped content of a document
type Fields map[string]interface{}

// Clone returns a shallow copy
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Has reports whether key is present
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// String returns the string stored under key, or "" when absent or not a string
func (f Fields) String(key string) string {
	if s, ok := f[key].(string); ok {
		return s
	}
	return ""
}

// OptionalString returns the string stored under key and whether it was a non-empty string
func (f Fields) OptionalString(key string) (string, bool) {
	s, ok := f[key].(string)
	return s, ok && s != ""
}

// Int returns the integer stored under key, or 0 when absent or not integral
func (f Fields) Int(key string) int {
	n, ok := toInt64(f[key])
	if !ok {
		return 0
	}
	return int(n)
}

// Bool returns the bool stored under key, or false when absent or not a bool
func (f Fields) Bool(key string) bool {
	if b, ok := f[key].(bool); ok {
		return b
	}
	return false
}

// Equal compares two scalar field values. Numbers compare by value regardless of their
// Go representation, so an int written to one backend matches the int64, int32, float64
// or json.Number it reads back as.
func Equal(a, b interface{}) bool {
	if an, ok := toFloat(a); ok {
		bn, ok := toFloat(b)
		return ok && an == bn
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return false
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return floatToInt64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if fl, err := strconv.ParseFloat(string(n), 64); err == nil {
			return floatToInt64(fl)
		}
	}
	return 0, false
}

// floatToInt64 accepts whole numbers that fit in an int64
func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// AsInt converts an integral value of any numeric representation to int
func AsInt(v interface{}) (int, bool) {
	n, ok := toInt64(v)
	return int(n), ok
}
