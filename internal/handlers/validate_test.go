package handlers

import (
	"strings"
	"testing"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       interface{}
		wantField string
	}{
		{name: "valid registration", req: registerRequest{Name: "Ann", Email: "ann@example.com", Password: "password123"}},
		{name: "blank name", req: registerRequest{Name: "   ", Email: "ann@example.com", Password: "password123"}, wantField: "name"},
		{name: "bad email", req: registerRequest{Name: "Ann", Email: "ann", Password: "password123"}, wantField: "email"},
		{name: "short password", req: registerRequest{Name: "Ann", Email: "ann@example.com", Password: "short"}, wantField: "password"},
		{name: "bad event date", req: eventRequest{Title: "Sports day", Date: "01/05/2024"}, wantField: "date"},
		{name: "negative age", req: childRequest{Name: "Sam", Age: -1}, wantField: "age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateRequest(tt.req)
			if tt.wantField == "" {
				if msg != "" {
					t.Fatalf("expected no error, got %q", msg)
				}
				return
			}
			if !strings.Contains(msg, tt.wantField) {
				t.Fatalf("expected message naming %q, got %q", tt.wantField, msg)
			}
		})
	}
}

func TestValidateChildFields(t *testing.T) {
	tests := []struct {
		name      string
		fields    map[string]interface{}
		wantField string
	}{
		{name: "valid", fields: map[string]interface{}{"name": "Sam", "age": float64(4), "allergies": ""}},
		{name: "unknown key left to the facade", fields: map[string]interface{}{"colour": "red"}},
		{name: "negative age", fields: map[string]interface{}{"age": float64(-5)}, wantField: "age"},
		{name: "huge age", fields: map[string]interface{}{"age": 1e20}, wantField: "age"},
		{name: "blank name", fields: map[string]interface{}{"name": "   "}, wantField: "name"},
		{name: "numeric name", fields: map[string]interface{}{"name": float64(42)}, wantField: "name"},
		{name: "null teacher", fields: map[string]interface{}{"teacherId": nil}, wantField: "teacherId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateChildFields(tt.fields)
			if tt.wantField == "" {
				if msg != "" {
					t.Fatalf("expected no error, got %q", msg)
				}
				return
			}
			if !strings.HasPrefix(msg, tt.wantField+" ") {
				t.Fatalf("expected message about %q, got %q", tt.wantField, msg)
			}
		})
	}
}
