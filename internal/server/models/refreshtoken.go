package models

import "time"

// RefreshToken associates an issued refresh token string with its user.
// A record is valid for exactly one refresh: consumption deletes it and
// creates a replacement. Expires is stored for operational visibility;
// expiry is enforced by signature verification, not by the store.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
