package service

import (
	"context"
	"errors"

	"github.com/stackmill/gatehouse/internal/auth/domain"
	"github.com/stackmill/gatehouse/internal/auth/store"
	"github.com/stackmill/gatehouse/pkg/cryptox"
	"github.com/stackmill/gatehouse/pkg/slogx"
)

var (
	ErrAccountNotFound = errors.New("account not found")

	// ErrBadCredentials is returned for unknown nicknames and wrong
	// passwords alike; callers get no hint which part was wrong.
	ErrBadCredentials = errors.New("invalid credentials")
)

// DirectoryService looks up accounts by nickname. Lookups are exact and
// case-sensitive: a nickname differing only in letter case is not-found,
// never a match. That is policy, not an omission.
type DirectoryService struct {
	Store store.Store
}

// FindByNickname returns the account with exactly this nickname.
func (s *DirectoryService) FindByNickname(ctx context.Context, nickname string) (domain.Account, error) {
	if nickname == "" {
		return domain.Account{}, ErrAccountNotFound
	}

	account, err := s.Store.Accounts().GetAccountByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}

	// Recheck byte equality so the policy holds even if the store's
	// collation is ever case-insensitive.
	if account.Nickname != nickname {
		return domain.Account{}, ErrAccountNotFound
	}

	return account, nil
}

// CheckCredentials verifies a nickname/password pair against the stored
// record.
func (s *DirectoryService) CheckCredentials(ctx context.Context, nickname, password string) (domain.Account, error) {
	l := slogx.FromContext(ctx)

	account, err := s.FindByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return domain.Account{}, ErrBadCredentials
		}
		return domain.Account{}, err
	}

	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			l.Warn("credential check failed", "nickname", nickname)
			return domain.Account{}, ErrBadCredentials
		}
		return domain.Account{}, err
	}

	return account, nil
}
