package service

import (
	"context"
	"testing"
	"time"

	"github.com/stackmill/gatehouse/internal/auth/domain"
	"github.com/stackmill/gatehouse/internal/auth/store"
	"github.com/stackmill/gatehouse/pkg/cryptox"
	"github.com/stackmill/gatehouse/pkg/idx"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, st store.Store, nickname, password string) domain.Account {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	now := time.Now().UTC()
	account := domain.Account{
		ID:           idx.New().String(),
		Nickname:     nickname,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Accounts().CreateAccount(context.Background(), account))
	return account
}

func TestFindByNickname(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &DirectoryService{Store: st}

	seeded := seedAccount(t, st, "robby", "secret-password")

	t.Run("exact nickname matches", func(t *testing.T) {
		account, err := svc.FindByNickname(ctx, "robby")
		require.NoError(t, err)
		require.Equal(t, seeded.ID, account.ID)
	})

	t.Run("lookup is case-sensitive", func(t *testing.T) {
		_, err := svc.FindByNickname(ctx, "Robby")
		require.ErrorIs(t, err, ErrAccountNotFound)

		_, err = svc.FindByNickname(ctx, "ROBBY")
		require.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("unknown nickname is not found", func(t *testing.T) {
		_, err := svc.FindByNickname(ctx, "nobody")
		require.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("empty nickname is not found", func(t *testing.T) {
		_, err := svc.FindByNickname(ctx, "")
		require.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestCheckCredentials(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &DirectoryService{Store: st}

	seeded := seedAccount(t, st, "alice", "correct-horse")

	t.Run("valid pair returns the account", func(t *testing.T) {
		account, err := svc.CheckCredentials(ctx, "alice", "correct-horse")
		require.NoError(t, err)
		require.Equal(t, seeded.ID, account.ID)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		_, err := svc.CheckCredentials(ctx, "alice", "battery-staple")
		require.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("unknown nickname fails identically", func(t *testing.T) {
		_, err := svc.CheckCredentials(ctx, "mallory", "correct-horse")
		require.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("case-mismatched nickname fails", func(t *testing.T) {
		_, err := svc.CheckCredentials(ctx, "Alice", "correct-horse")
		require.ErrorIs(t, err, ErrBadCredentials)
	})
}
