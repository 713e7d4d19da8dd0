// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is a registered user. Username always mirrors Email.
type Account struct {
	ID           string
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	IsActive     bool
	DateJoined   time.Time
}

// AccountUpdate carries the profile fields being changed. Nil fields are left
// untouched.
type AccountUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}
