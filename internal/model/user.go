// Package model defines domain entities for the application.
package model

import "time"

// User represents an account that owns financial records.
// The id is assigned by the database on first insert.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
