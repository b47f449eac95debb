package http

import (
	"net/http"
	"time"

	"github.com/stackmill/gatehouse/internal/auth/domain"
	"github.com/stackmill/gatehouse/pkg/httpx"
	"github.com/stackmill/gatehouse/pkg/regsdk"
)

// UsersHandler serves account views. All authorization happens in the guard
// chain; these handlers only shape responses from what the guards attached.
type UsersHandler struct{}

// HandleWhoAmI handles GET /api/whoami for the authenticated caller.
func (h *UsersHandler) HandleWhoAmI(w http.ResponseWriter, r *http.Request) {
	account, ok := RequestAccount(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, accountInfo(account))
}

// HandleProfile handles GET /api/user/{nickname}, visible to anyone.
func (h *UsersHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	target, ok := TargetAccount(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "no such user")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, accountInfo(target))
}

// HandleSettings handles GET /api/user/{nickname}/settings. The SameUser
// guard already proved the caller owns this account.
func (h *UsersHandler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	target, ok := TargetAccount(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "no such user")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, accountInfo(target))
}

func accountInfo(a domain.Account) regsdk.AccountInfo {
	info := regsdk.AccountInfo{
		ID:       a.ID,
		Nickname: a.Nickname,
	}
	if !a.CreatedAt.IsZero() {
		info.CreatedAt = a.CreatedAt.UTC().Format(time.RFC3339)
	}
	return info
}
