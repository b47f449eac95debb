package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stackmill/gatehouse/internal/auth/domain"
	"github.com/stackmill/gatehouse/internal/auth/store"
	"github.com/stackmill/gatehouse/pkg/cryptox"
	"github.com/stackmill/gatehouse/pkg/idx"
	"github.com/stackmill/gatehouse/pkg/slogx"
	"github.com/stackmill/gatehouse/pkg/validate"
)

// ErrClientAuthentication covers both "no such client" and "wrong secret" for
// client_update. The two cases are deliberately indistinguishable to callers
// so the endpoint cannot be used as an existence or secret oracle.
var ErrClientAuthentication = errors.New("client authentication failed")

// FieldError is a validation failure on a specific registration field.
// Always client-caused, never a system fault.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ClientMetadata carries the mutable registration fields. Nil means the
// caller did not supply the field: on associate it stays empty, on update the
// stored value is left unchanged.
type ClientMetadata struct {
	Title        *string
	Description  *string
	Type         *string
	Contacts     *string // space-separated e-mail addresses
	LogoURL      *string // exactly one URL
	RedirectURIs *string // space-separated URLs
}

// RegistrationService implements the client_associate and client_update
// actions. Validation is fully evaluated before any store write; a failure
// never leaves a partial mutation behind.
type RegistrationService struct {
	Store store.Store
}

// Associate creates a new client credential record. The client id and secret
// are assigned here and nowhere else; the plaintext secret is returned once
// and only its argon2 hash is stored.
func (s *RegistrationService) Associate(ctx context.Context, meta ClientMetadata) (domain.Client, string, error) {
	l := slogx.FromContext(ctx)

	if err := validateMetadata(meta); err != nil {
		return domain.Client{}, "", err
	}

	secret, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		l.Error("failed to generate client secret", "error", err)
		return domain.Client{}, "", err
	}

	secretHash, err := cryptox.HashPassword(secret)
	if err != nil {
		l.Error("failed to hash client secret", "error", err)
		return domain.Client{}, "", err
	}

	now := time.Now().UTC()
	client := domain.Client{
		ID:         idx.New().String(),
		SecretHash: secretHash,
		CreatedAt:  now,
		UpdatedAt:  now,
		// ExpiresAt stays nil: clients are non-expiring unless an external
		// policy says otherwise.
	}
	applyMetadata(&client, meta)

	if err := s.Store.Clients().CreateClient(ctx, client); err != nil {
		l.Error("failed to create client", "error", err)
		return domain.Client{}, "", err
	}

	l.Info("client associated", "client_id", client.ID, "application_name", client.Title)
	return client, secret, nil
}

// Update mutates an existing client's metadata after verifying the presented
// secret against the stored record. The check and the write run inside one
// transaction so a racing update cannot slip a stale secret past the gate.
// The client id and secret never change.
func (s *RegistrationService) Update(ctx context.Context, clientID, clientSecret string, meta ClientMetadata) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	if clientID == "" || clientSecret == "" {
		return domain.Client{}, ErrClientAuthentication
	}
	if err := validateMetadata(meta); err != nil {
		return domain.Client{}, err
	}

	var updated domain.Client
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		client, err := tx.Clients().GetClientByID(ctx, clientID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrClientAuthentication
			}
			return err
		}

		if err := cryptox.VerifyPassword(clientSecret, client.SecretHash); err != nil {
			if errors.Is(err, cryptox.ErrMismatch) {
				return ErrClientAuthentication
			}
			return err
		}

		applyMetadata(&client, meta)
		client.UpdatedAt = time.Now().UTC()

		if err := tx.Clients().UpdateClientMetadata(ctx, client); err != nil {
			return err
		}
		updated = client
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrClientAuthentication) {
			l.Warn("client update rejected", "client_id", clientID)
		} else {
			l.Error("failed to update client", "error", err, "client_id", clientID)
		}
		return domain.Client{}, err
	}

	l.Info("client updated", "client_id", clientID)
	return updated, nil
}

func validateMetadata(meta ClientMetadata) error {
	if meta.Type != nil && !domain.ValidType(*meta.Type) {
		return &FieldError{Field: "application_type", Reason: "must be web or native"}
	}
	if meta.Contacts != nil && !validate.IsEmailList(*meta.Contacts) {
		return &FieldError{Field: "contacts", Reason: "must be space-separated e-mail addresses"}
	}
	if meta.LogoURL != nil && !validate.IsURL(*meta.LogoURL) {
		return &FieldError{Field: "logo_url", Reason: "must be a single valid URL"}
	}
	if meta.RedirectURIs != nil && !validate.IsURLList(*meta.RedirectURIs) {
		return &FieldError{Field: "redirect_uris", Reason: "must be space-separated URLs"}
	}
	return nil
}

// applyMetadata copies supplied fields onto the client. Call only after
// validateMetadata has accepted meta.
func applyMetadata(c *domain.Client, meta ClientMetadata) {
	if meta.Title != nil {
		c.Title = *meta.Title
	}
	if meta.Description != nil {
		c.Description = *meta.Description
	}
	if meta.Type != nil {
		c.Type = *meta.Type
	}
	if meta.Contacts != nil {
		c.Contacts = validate.SplitList(*meta.Contacts)
	}
	if meta.LogoURL != nil {
		c.LogoURL = *meta.LogoURL
	}
	if meta.RedirectURIs != nil {
		c.RedirectURIs = validate.SplitList(*meta.RedirectURIs)
	}
}
