package domain

import "time"

// Account is an end-user identity. Nicknames are unique and compared
// case-sensitively everywhere; account management itself lives outside this
// service, which only reads and verifies these records.
type Account struct {
	ID           string
	Nickname     string
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
