package models

import "time"

// EmailConfirmation is a single-use verification key issued to an account.
// Only the sha256 of the key is stored.
type EmailConfirmation struct {
	ID         string
	AccountID  string
	Email      string
	KeyHash    string
	CreatedAt  time.Time
	SentAt     *time.Time
	ExpiresAt  time.Time
	ConsumedAt *time.Time
}
