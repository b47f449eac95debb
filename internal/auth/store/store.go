package store

import (
	"context"
	"errors"

	"github.com/stackmill/gatehouse/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable; anything not listed here is out of this service's hands.
type Store interface {
	Accounts() Accounts
	Clients() Clients

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic, like the
	// secret-check-then-mutate of a client update. The caller MUST call
	// Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Clients interface {
	// GetClientByID fetches a client credential record.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// CreateClient inserts a new client (id is ULID, secret stored hashed).
	CreateClient(ctx context.Context, c domain.Client) error

	// UpdateClientMetadata persists the mutable fields of c (everything but
	// id, secret hash and created_at) and bumps updated_at.
	UpdateClientMetadata(ctx context.Context, c domain.Client) error

	// CountClients returns the number of registered clients.
	CountClients(ctx context.Context) (int64, error)
}

type Accounts interface {
	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByNickname looks an account up by its exact nickname.
	// Callers are responsible for the case-sensitivity policy.
	GetAccountByNickname(ctx context.Context, nickname string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by app via ULID).
	CreateAccount(ctx context.Context, a domain.Account) error

	// IsEmpty returns true if there are no accounts.
	IsEmpty(ctx context.Context) (bool, error)
}
