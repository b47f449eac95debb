package domain

import "time"

// Client application types accepted at registration.
const (
	ClientTypeWeb    = "web"
	ClientTypeNative = "native"
)

// Client is a registered third-party application's credential record. ID and
// the secret (stored only as an argon2 hash) are assigned at association time
// and never change afterwards.
type Client struct {
	ID           string
	SecretHash   string
	Title        string // application_name
	Description  string
	Type         string // "web", "native", or empty
	Contacts     []string
	LogoURL      string
	RedirectURIs []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ExpiresAt    *time.Time // nil means non-expiring
}

// ValidType reports whether t is an acceptable application_type value.
// Absent (empty) is fine; anything else must be web or native.
func ValidType(t string) bool {
	return t == "" || t == ClientTypeWeb || t == ClientTypeNative
}
