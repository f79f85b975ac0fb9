// Package session holds the authenticated identity for the running process.
package session

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
)

// Role is the authorisation level read from the user's role document
type Role int

const (
	RoleNone Role = iota
	RoleAdmin
	RoleParent
)

// ParseRole maps a stored role string to a Role. Anything unrecognised is RoleNone.
func ParseRole(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "parent":
		return RoleParent
	default:
		return RoleNone
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleParent:
		return "parent"
	default:
		return ""
	}
}

// MarshalText renders the role as its stored string ("" when unset)
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Session is the identity behind a request or the process. It is a value and is
// replaced as a whole, never mutated in place.
type Session struct {
	UID      string `json:"uid"`
	Token    string `json:"-"`
	Role     Role   `json:"role"`
	ParentID string `json:"parentId,omitempty"`
}

// Authenticated reports whether the session carries a usable role
func (s Session) Authenticated() bool {
	return s.UID != "" && s.Role != RoleNone
}

var ErrInvalidAmount = errors.New("amount must be a non-negative decimal with at most two decimal places")

// PendingPayment is the scratch state of an in-progress payment
type PendingPayment struct {
	Amount    string `json:"amount"`
	ChildName string `json:"childName"`
}

// Manager guards the current Session and the pending payment
type Manager struct {
	mu      sync.RWMutex
	current Session
	payment *PendingPayment
}

// NewManager creates a manager with no session
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the active session (zero value when logged out)
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set replaces the active session
func (m *Manager) Set(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = s
}

// Clear drops the session together with any pending payment
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Session{}
	m.payment = nil
}

// SetPendingPayment records the amount and child of a payment in progress.
// The amount is normalised to two decimal places.
func (m *Manager) SetPendingPayment(amount, childName string) error {
	normalised, err := NormaliseAmount(amount)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payment = &PendingPayment{Amount: normalised, ChildName: childName}
	return nil
}

// PendingPayment returns the payment in progress, if any
func (m *Manager) PendingPayment() (PendingPayment, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.payment == nil {
		return PendingPayment{}, false
	}
	return *m.payment, true
}

// ClearPendingPayment forgets the payment in progress
func (m *Manager) ClearPendingPayment() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payment = nil
}

// NormaliseAmount validates a decimal amount and renders it with two decimal places
func NormaliseAmount(amount string) (string, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return "", ErrInvalidAmount
	}
	if i := strings.IndexByte(amount, '.'); i >= 0 && len(amount)-i-1 > 2 {
		return "", ErrInvalidAmount
	}
	r, ok := new(big.Rat).SetString(amount)
	if !ok || r.Sign() < 0 || strings.ContainsAny(amount, "/eE") {
		return "", fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return r.FloatString(2), nil
}
