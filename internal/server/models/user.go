// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account record. Created on registration and immutable
// afterwards; no exposed operation deletes it. Email is unique at the
// store level.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
