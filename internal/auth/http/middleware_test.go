package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stackmill/gatehouse/pkg/regsdk"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, method, url string, mutate func(*http.Request)) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	if mutate != nil {
		mutate(req)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func withBearer(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

func withSessionCookie(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
}

func TestGetSessionUser(t *testing.T) {
	env := newTestEnv(t)
	account := env.seedAccount(t, "dave", "pw")
	token := env.sessionToken(t, account)

	probe := func(t *testing.T, mutate func(*http.Request)) (resolved bool) {
		t.Helper()

		h := GetSessionUser(env.sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, resolved = RequestAccount(r.Context())
		}))

		req, err := http.NewRequest(http.MethodGet, "/", nil)
		require.NoError(t, err)
		if mutate != nil {
			mutate(req)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
		return resolved
	}

	t.Run("resolves the session cookie", func(t *testing.T) {
		require.True(t, probe(t, withSessionCookie(token)))
	})

	t.Run("ignores bearer headers", func(t *testing.T) {
		require.False(t, probe(t, withBearer(token)))
	})

	t.Run("bad cookie stays anonymous", func(t *testing.T) {
		require.False(t, probe(t, withSessionCookie("garbage")))
	})

	t.Run("no credentials stays anonymous", func(t *testing.T) {
		require.False(t, probe(t, nil))
	})
}

func TestWhoAmI(t *testing.T) {
	env := newTestEnv(t)
	account := env.seedAccount(t, "alice", "pw")
	token := env.sessionToken(t, account)
	whoami := env.server.URL + "/api/whoami"

	t.Run("anonymous is 401", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, whoami, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("bearer token works", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, whoami, withBearer(token))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var info regsdk.AccountInfo
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
		require.Equal(t, "alice", info.Nickname)
	})

	t.Run("session cookie works", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, whoami, withSessionCookie(token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("garbage credentials stay anonymous and hit 401", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, whoami, withBearer("garbage"))
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestUserRoutes(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedAccount(t, "alice", "pw")
	env.seedAccount(t, "bob", "pw")
	aliceToken := env.sessionToken(t, alice)

	t.Run("profile is public", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, env.server.URL+"/api/user/alice", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var info regsdk.AccountInfo
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
		require.Equal(t, "alice", info.Nickname)
	})

	t.Run("unknown nickname is 404", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, env.server.URL+"/api/user/nobody", nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("case-mismatched nickname is 404", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, env.server.URL+"/api/user/Alice", nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("settings require authentication", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, env.server.URL+"/api/user/alice/settings", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("settings reject a different user", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, env.server.URL+"/api/user/bob/settings", withBearer(aliceToken))
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("settings allow the owner", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, env.server.URL+"/api/user/alice/settings", withBearer(aliceToken))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("settings for a missing user are 404 before 401", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, env.server.URL+"/api/user/nobody/settings", nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestSessionEndpoints(t *testing.T) {
	env := newTestEnv(t)
	account := env.seedAccount(t, "carol", "s3cret")
	sessionURL := env.server.URL + "/api/session"

	t.Run("login without credentials is challenged", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, sessionURL, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Basic")
	})

	t.Run("login with wrong password is 401", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, sessionURL, func(r *http.Request) {
			r.SetBasicAuth("carol", "wrong")
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("login issues a token and cookie", func(t *testing.T) {
		sdk := regsdk.New(env.server.URL)
		out, err := sdk.Login(context.Background(), "carol", "s3cret")
		require.NoError(t, err)
		require.NotEmpty(t, out.Token)
		require.Equal(t, "carol", out.Account.Nickname)

		// The freshly issued token resolves through the middleware.
		resp := doRequest(t, http.MethodGet, env.server.URL+"/api/whoami", withBearer(out.Token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("login while already authenticated is 403", func(t *testing.T) {
		token := env.sessionToken(t, account)
		resp := doRequest(t, http.MethodPost, sessionURL, func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
			r.SetBasicAuth("carol", "s3cret")
		})
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("logout requires a session", func(t *testing.T) {
		resp := doRequest(t, http.MethodDelete, sessionURL, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("logout clears the cookie", func(t *testing.T) {
		token := env.sessionToken(t, account)
		resp := doRequest(t, http.MethodDelete, sessionURL, withSessionCookie(token))
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		var cleared bool
		for _, c := range resp.Cookies() {
			if c.Name == SessionCookieName && c.MaxAge < 0 {
				cleared = true
			}
		}
		require.True(t, cleared)
	})
}

func TestHealthProbes(t *testing.T) {
	env := newTestEnv(t)

	t.Run("livez is always ok", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, env.server.URL+"/livez", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var health regsdk.HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
		require.Equal(t, "ok", health.Status)
	})

	t.Run("readyz reports dependency checks", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, env.server.URL+"/readyz", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var health regsdk.HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
		require.Equal(t, "ok", health.Status)
		require.NotNil(t, health.Checks)
		require.Equal(t, "ok", health.Checks.Database)
		require.Equal(t, "ok", health.Checks.Signer)
	})

	// Runs last: closing the store poisons this env for further requests.
	t.Run("readyz fails closed when the store is closed", func(t *testing.T) {
		require.NoError(t, env.store.Close())

		resp := doRequest(t, http.MethodGet, env.server.URL+"/readyz", nil)
		require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var health regsdk.HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
		require.Equal(t, "degraded", health.Status)
		require.NotNil(t, health.Checks)
		require.Contains(t, health.Checks.Database, "error")
		require.Equal(t, "ok", health.Checks.Signer)
	})
}
