package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/stackmill/gatehouse/internal/auth/service"
	"github.com/stackmill/gatehouse/pkg/httpx"
	"github.com/stackmill/gatehouse/pkg/slogx"
)

// SessionCookieName carries the session token for browser callers.
const SessionCookieName = "gatehouse_session"

// Every guard here is an independently usable httpx.Middleware; routes
// compose them with httpx.Chain and a later guard may assume an earlier one
// already ran. Identity resolution per request ends in exactly one of three
// states: anonymous, authenticated-as(account), or failed (the guard wrote
// the response and stopped the chain).

// GetSessionUser resolves the session cookie and attaches its account.
// A missing or unusable cookie is not fatal; the request stays anonymous.
func GetSessionUser(sessions *service.SessionService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				if account, err := sessions.Resolve(ctx, cookie.Value); err == nil {
					ctx = WithRequestAccount(ctx, account)
				} else {
					slogx.FromContext(ctx).Warn("session cookie rejected", "error", err)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCurrentUser resolves the caller's identity from a bearer Authorization
// header, falling back to the session cookie. Attaches the account on
// success; never blocks the request on failure.
func GetCurrentUser(sessions *service.SessionService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if _, ok := RequestAccount(ctx); ok {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				if cookie, err := r.Cookie(SessionCookieName); err == nil {
					token = cookie.Value
				}
			}

			if token != "" {
				if account, err := sessions.Resolve(ctx, token); err == nil {
					ctx = WithRequestAccount(ctx, account)
				} else {
					slogx.FromContext(ctx).Warn("presented credential rejected", "error", err)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MaybeAuth runs credential resolution opportunistically. The request
// proceeds whatever happens, including malformed credentials; pair with
// MustAuth when the route actually requires an identity.
func MaybeAuth(sessions *service.SessionService) httpx.Middleware {
	return GetCurrentUser(sessions)
}

// ReqUser looks up the account named by the {nickname} route parameter and
// attaches it as the request's target user. The lookup is exact and
// case-sensitive; a missing parameter or a miss of any kind is a 404.
func ReqUser(directory *service.DirectoryService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			nickname := r.PathValue("nickname")
			account, err := directory.FindByNickname(ctx, nickname)
			if err != nil {
				if errors.Is(err, service.ErrAccountNotFound) {
					writeError(w, http.StatusNotFound, "not_found", "no such user")
					return
				}
				slogx.FromContext(ctx).Error("user lookup failed", "error", err, "nickname", nickname)
				writeError(w, http.StatusInternalServerError, "server_error", "user lookup failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTargetAccount(ctx, account)))
		})
	}
}

// MustAuth passes through only when an identity has already been attached by
// an upstream guard.
func MustAuth() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := RequestAccount(r.Context()); !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SameUser passes through only when the resolved identity is the route's
// target user. An authenticated stranger is an authorization denial, not
// merely unauthenticated.
func SameUser() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := RequestAccount(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}
			target, ok := TargetAccount(r.Context())
			if !ok || identity.Nickname != target.Nickname {
				writeError(w, http.StatusForbidden, "forbidden", "not your resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NoUser passes through only when no identity is attached; used for routes
// that make no sense for an authenticated caller.
func NoUser() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := RequestAccount(r.Context()); ok {
				writeError(w, http.StatusForbidden, "forbidden", "already authenticated")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CheckCredentials verifies a Basic nickname/password pair against the
// directory and attaches the account. Any mismatch is the same 401; callers
// learn nothing about which half was wrong.
func CheckCredentials(directory *service.DirectoryService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			nickname, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="gatehouse"`)
				writeError(w, http.StatusUnauthorized, "unauthorized", "credentials required")
				return
			}

			account, err := directory.CheckCredentials(ctx, nickname, password)
			if err != nil {
				if errors.Is(err, service.ErrBadCredentials) {
					writeError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
					return
				}
				slogx.FromContext(ctx).Error("credential check failed", "error", err)
				writeError(w, http.StatusInternalServerError, "server_error", "credential check failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRequestAccount(ctx, account)))
		})
	}
}

func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
}
