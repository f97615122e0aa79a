// Package models defines server-side data models persisted in the database.
package models

import "time"

// DefaultRole is assigned to every account created through registration.
const DefaultRole = "user"

// User is a registered account. Email doubles as the login handle and is
// the subject written into access tokens. PasswordHash is a bcrypt digest
// and must never leave the server.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
