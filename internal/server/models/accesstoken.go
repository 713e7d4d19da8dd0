package models

import "time"

// AccessToken is the persisted record behind an issued bearer token. ID is
// the token's jti claim.
type AccessToken struct {
	ID        string
	AccountID string
	ClientID  string
	ExpiresAt time.Time
	CreatedAt time.Time
}
