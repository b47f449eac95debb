package http

import (
	"net/http"
	"time"

	"github.com/stackmill/gatehouse/internal/auth/service"
	"github.com/stackmill/gatehouse/pkg/httpx"
	"github.com/stackmill/gatehouse/pkg/regsdk"
	"github.com/stackmill/gatehouse/pkg/slogx"
)

// SessionHandler issues and revokes session tokens.
type SessionHandler struct {
	Sessions *service.SessionService
}

// HandleLogin handles POST /api/session. The CheckCredentials guard has
// already verified Basic credentials and attached the account; this just
// mints the token and sets the cookie.
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	account, ok := RequestAccount(ctx)
	if !ok {
		// Reaching here means the route was wired without CheckCredentials.
		writeError(w, http.StatusUnauthorized, "unauthorized", "credentials required")
		return
	}

	token, expiresAt, err := h.Sessions.Issue(ctx, account)
	if err != nil {
		slogx.FromContext(ctx).Error("session issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error", "could not create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	httpx.WriteJSON(w, http.StatusOK, regsdk.SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		Account:   accountInfo(account),
	})
}

// HandleLogout handles DELETE /api/session. Tokens are stateless, so logout
// is clearing the cookie; the token itself dies at its expiry.
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
