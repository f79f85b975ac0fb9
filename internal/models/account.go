package models

import "time"

// Account is a login credential held by the authentication service
type Account struct {
	UID          string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
