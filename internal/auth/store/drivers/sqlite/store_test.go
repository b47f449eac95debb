package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDSNAppliesPragmas(t *testing.T) {
	st, err := NewStore(DSN(filepath.Join(t.TempDir(), "pragmas.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	ctx := context.Background()

	var mode string
	require.NoError(t, st.db.QueryRowContext(ctx, `PRAGMA journal_mode`).Scan(&mode))
	require.Equal(t, "wal", strings.ToLower(mode))

	var timeout int64
	require.NoError(t, st.db.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&timeout))
	require.EqualValues(t, 5000, timeout)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	st, err := NewStore(DSN(filepath.Join(t.TempDir(), "migrate.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.ApplyMigrations())
}
