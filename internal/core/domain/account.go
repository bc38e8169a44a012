package domain

import "time"

// Account models a registered actor. The email is the account's identity:
// unique, immutable once created, and the subject claim of every token
// issued for it.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Banned       bool      `json:"banned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the per-request authenticated principal, reconstructed from a
// verified access token. It is never a substitute for live account state:
// ban checks go back to the store.
type Identity struct {
	Subject string
	Role    Role
}
