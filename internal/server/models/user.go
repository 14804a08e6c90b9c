package models

import "time"

// User is a registered account. Password holds the bcrypt hash, never the
// plaintext. AvatarURL is an object key or an absolute URL.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Password  string
	RoleID    string
	Token     string
	AvatarURL string
	CreatedAt time.Time
}
