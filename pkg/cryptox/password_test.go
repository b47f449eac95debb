package cryptox

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Each test run gets its own throwaway pepper.
	dir, err := filepath.Abs("testdata")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))
	m.Run()
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("kangaroo")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	require.NoError(t, VerifyPassword("kangaroo", hash))
	require.ErrorIs(t, VerifyPassword("wallaby", hash), ErrMismatch)
}

func TestHashIsSalted(t *testing.T) {
	a, err := HashPassword("same-input")
	require.NoError(t, err)
	b, err := HashPassword("same-input")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyPasswordRejectsMalformedHashes(t *testing.T) {
	require.Error(t, VerifyPassword("x", "not-a-hash"))
	require.Error(t, VerifyPassword("x", "$bcrypt$v=19$m=1,t=1,p=1$AA$AA"))
	require.Error(t, VerifyPassword("x", "$argon2id$v=18$m=1,t=1,p=1$AA$AA"))
}
