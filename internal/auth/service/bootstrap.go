package service

import (
	"context"
	"time"

	"github.com/stackmill/gatehouse/internal/auth/domain"
	"github.com/stackmill/gatehouse/internal/auth/store"
	"github.com/stackmill/gatehouse/pkg/cryptox"
	"github.com/stackmill/gatehouse/pkg/idx"
	"github.com/stackmill/gatehouse/pkg/slogx"
)

// BootstrapService seeds a first account when the directory is empty.
// Account management otherwise lives outside this service; this exists so a
// fresh deployment has something to authenticate as.
type BootstrapService struct {
	Store    store.Store
	Nickname string
	Password string
}

// Run creates the configured account if no accounts exist yet. A no-op when
// unconfigured or the directory already has accounts.
func (s *BootstrapService) Run(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	if s.Nickname == "" || s.Password == "" {
		return nil
	}

	empty, err := s.Store.Accounts().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	hash, err := cryptox.HashPassword(s.Password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	account := domain.Account{
		ID:           idx.New().String(),
		Nickname:     s.Nickname,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		return err
	}

	l.Info("bootstrap account created", "nickname", s.Nickname, "account_id", account.ID)
	return nil
}
