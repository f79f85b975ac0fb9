package models

import (
	"testing"
	"time"
)

func TestAttendanceID(t *testing.T) {
	if got := AttendanceID("c42", "2024-05-01"); got != "c42_2024-05-01" {
		t.Errorf("AttendanceID() = %q, want c42_2024-05-01", got)
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "iso date", input: "2024-05-01", want: true},
		{name: "leap day", input: "2024-02-29", want: true},
		{name: "not a leap year", input: "2023-02-29", want: false},
		{name: "date time", input: "2024-05-01T10:00:00Z", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidDate(tt.input); got != tt.want {
				t.Errorf("ValidDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	day := time.Date(2024, time.December, 3, 23, 30, 0, 0, time.UTC)
	if got := FormatDate(day); got != "2024-12-03" {
		t.Errorf("FormatDate() = %q", got)
	}
}

func TestMessageTime(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
		wantZero  bool
	}{
		{name: "rfc3339", timestamp: "2024-05-01T08:15:00Z", wantZero: false},
		{name: "with nanos", timestamp: "2024-05-01T08:15:00.123456Z", wantZero: false},
		{name: "missing", timestamp: "", wantZero: true},
		{name: "garbage", timestamp: "yesterday", wantZero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Message{Timestamp: tt.timestamp}
			if got := m.Time().IsZero(); got != tt.wantZero {
				t.Errorf("Time().IsZero() = %v, want %v", got, tt.wantZero)
			}
		})
	}
}
