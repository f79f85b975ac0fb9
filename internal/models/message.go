package models

import "time"

// Message is either a parent-to-admin message (ToAdmin) or an admin announcement.
// Announcements may carry ToParentID when they are addressed to a single parent,
// as absence notices are.
type Message struct {
	ID           string `json:"id"`
	Content      string `json:"content"`
	FromParentID string `json:"fromParentId,omitempty"`
	ToParentID   string `json:"toParentId,omitempty"`
	ToAdmin      bool   `json:"toAdmin"`
	Timestamp    string `json:"timestamp"`
}

// Time parses the timestamp, returning the zero time when it is missing or malformed
func (m *Message) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, m.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}
