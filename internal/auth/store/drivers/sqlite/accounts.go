package sqlite

import (
	"context"
	"database/sql"

	"github.com/stackmill/gatehouse/internal/auth/domain"
)

type accountsRepo struct {
	db dbtx
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, nickname, password_hash, created_at, updated_at
		FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByNickname(ctx context.Context, nickname string) (domain.Account, error) {
	// Nickname comparisons rely on sqlite's default BINARY collation being
	// case-sensitive; the directory service rechecks equality regardless.
	row := r.db.QueryRowContext(ctx, `
		SELECT id, nickname, password_hash, created_at, updated_at
		FROM accounts WHERE nickname = ?`, nickname)
	return scanAccount(row)
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, nickname, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Nickname, a.PasswordHash, a.CreatedAt, a.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *accountsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Nickname, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}
