// Package models defines the persistent entities of the clipstream server.
package models

import "time"

// User is an account that may request upload authorizations.
type User struct {
	ID           string
	Login        string
	PasswordHash []byte
	CreatedAt    time.Time
}
