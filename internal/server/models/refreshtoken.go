package models

import "time"

// RefreshToken is an opaque, single-use token exchanged for a new token pair.
type RefreshToken struct {
	Token   string
	UserID  string
	Expires time.Time
}
