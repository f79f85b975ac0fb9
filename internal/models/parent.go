package models

// Parent represents a registered parent. The id is the parent's auth uid.
type Parent struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	ConsentMedia bool   `json:"consentMedia"`
}
