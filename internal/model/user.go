// Package model defines domain entities for the application.
package model

import "time"

// User is a registered account. Users are never mutated or deleted.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never serialize
	CreatedAt    time.Time `json:"created_at"`
}
