package sqlite

import (
	"context"
	"database/sql"

	"github.com/stackmill/gatehouse/internal/auth/domain"
)

type clientsRepo struct {
	db dbtx
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, secret_hash, title, description, client_type,
		       contacts, logo_url, redirect_uris,
		       created_at, updated_at, expires_at
		FROM clients WHERE id = ?`, id)
	return scanClient(row)
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, secret_hash, title, description, client_type,
		                     contacts, logo_url, redirect_uris,
		                     created_at, updated_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.SecretHash, c.Title, c.Description, c.Type,
		joinList(c.Contacts), c.LogoURL, joinList(c.RedirectURIs),
		c.CreatedAt, c.UpdatedAt, nullTime(c.ExpiresAt),
	)
	return mapConstraint(err)
}

func (r *clientsRepo) UpdateClientMetadata(ctx context.Context, c domain.Client) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET title = ?, description = ?, client_type = ?,
		    contacts = ?, logo_url = ?, redirect_uris = ?, updated_at = ?
		WHERE id = ?`,
		c.Title, c.Description, c.Type,
		joinList(c.Contacts), c.LogoURL, joinList(c.RedirectURIs), c.UpdatedAt,
		c.ID,
	)
	return err
}

func (r *clientsRepo) CountClients(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count)
	return count, err
}

func scanClient(row *sql.Row) (domain.Client, error) {
	var (
		c                      domain.Client
		contacts, redirectURIs string
		expiresAt              sql.NullTime
	)
	err := row.Scan(
		&c.ID, &c.SecretHash, &c.Title, &c.Description, &c.Type,
		&contacts, &c.LogoURL, &redirectURIs,
		&c.CreatedAt, &c.UpdatedAt, &expiresAt,
	)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}

	c.Contacts = splitList(contacts)
	c.RedirectURIs = splitList(redirectURIs)
	if expiresAt.Valid {
		t := expiresAt.Time
		c.ExpiresAt = &t
	}
	return c, nil
}
