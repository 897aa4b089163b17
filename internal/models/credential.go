package models

import "time"

type Credential struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"token_expiry"`
}

// Valid reports whether the credential can still be presented at now.
// There is no grace period.
func (c Credential) Valid(now time.Time) bool {
	return c.Token != "" && now.Before(c.ExpiresAt)
}
