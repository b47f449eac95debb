// Package regsdk holds the wire types for the gatehouse registration and
// session APIs, plus a small HTTP client for driving them. Handlers and
// consumers share these shapes so they cannot drift apart.
package regsdk

// Registration action names carried in the "type" parameter.
const (
	TypeAssociate = "client_associate"
	TypeUpdate    = "client_update"
)

// RegistrationRequest is the body of POST /api/client/register, accepted as
// JSON or form encoding. Pointer fields distinguish "absent" from "empty":
// on update, absent fields leave the stored value unchanged.
type RegistrationRequest struct {
	Type            string  `json:"type"`
	ClientID        *string `json:"client_id,omitempty"`
	ClientSecret    *string `json:"client_secret,omitempty"`
	ApplicationName *string `json:"application_name,omitempty"`
	Description     *string `json:"description,omitempty"`
	ApplicationType *string `json:"application_type,omitempty"`
	Contacts        *string `json:"contacts,omitempty"`      // space-separated e-mails
	LogoURL         *string `json:"logo_url,omitempty"`      // single URL
	RedirectURIs    *string `json:"redirect_uris,omitempty"` // space-separated URLs
}

// RegistrationResponse is returned for both successful association and
// update. ExpiresAt is always present; 0 means the credentials never expire.
type RegistrationResponse struct {
	ClientID        string `json:"client_id"`
	ClientSecret    string `json:"client_secret"`
	ExpiresAt       int64  `json:"expires_at"`
	ApplicationName string `json:"application_name,omitempty"`
	Description     string `json:"description,omitempty"`
	ApplicationType string `json:"application_type,omitempty"`
	Contacts        string `json:"contacts,omitempty"`
	LogoURL         string `json:"logo_url,omitempty"`
	RedirectURIs    string `json:"redirect_uris,omitempty"`
	CreatedAt       int64  `json:"created_at,omitempty"`
}

// AccountInfo is the public view of an account.
type AccountInfo struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	CreatedAt string `json:"created_at,omitempty"`
}

// SessionResponse is returned by POST /api/session.
type SessionResponse struct {
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expires_at"`
	Account   AccountInfo `json:"account"`
}

// ErrorResponse is the uniform failure body.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// HealthChecks reports the state of each critical dependency.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
