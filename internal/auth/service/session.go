package service

import (
	"context"
	"errors"
	"time"

	"github.com/stackmill/gatehouse/internal/auth/domain"
	"github.com/stackmill/gatehouse/internal/auth/store"
	"github.com/stackmill/gatehouse/pkg/jwtx"
)

// ErrInvalidSession is returned for any token that does not resolve to a
// live account: bad signature, expired, or the account is gone.
var ErrInvalidSession = errors.New("invalid or expired session")

// SessionService issues and resolves signed session tokens. Tokens are
// stateless; resolving one still re-fetches the account so sessions for
// deleted accounts die with the account.
type SessionService struct {
	Store    store.Store
	Signer   *jwtx.Signer
	Verifier *jwtx.Verifier
	Issuer   string
	TTL      time.Duration
}

// Issue mints a session token for the account.
func (s *SessionService) Issue(ctx context.Context, account domain.Account) (string, time.Time, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	now := time.Now().UTC()
	claims := jwtx.NewSessionClaims(account.ID, account.Nickname, s.Issuer, ttl, now)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, now.Add(ttl), nil
}

// Resolve verifies a presented token and returns the account it names.
// Absent credentials are the caller's problem; this only sees tokens.
func (s *SessionService) Resolve(ctx context.Context, token string) (domain.Account, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return domain.Account{}, ErrInvalidSession
	}

	account, err := s.Store.Accounts().GetAccountByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrInvalidSession
		}
		return domain.Account{}, err
	}

	return account, nil
}
