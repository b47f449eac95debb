package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/stackmill/gatehouse/internal/auth/domain"
	"github.com/stackmill/gatehouse/internal/auth/service"
	"github.com/stackmill/gatehouse/pkg/httpx"
	"github.com/stackmill/gatehouse/pkg/regsdk"
	"github.com/stackmill/gatehouse/pkg/slogx"
)

// RegisterHandler serves the client registration endpoint. Registration is
// unauthenticated by design; updates authenticate with the client's own
// credentials inside the request body.
type RegisterHandler struct {
	Registration *service.RegistrationService
}

// registration is the request decoded once at the boundary into exactly one
// action. Unknown or missing types never reach validation.
type registration struct {
	associate *regsdk.RegistrationRequest
	update    *regsdk.RegistrationRequest
}

// HandlePost handles POST /api/client/register for both client_associate and
// client_update.
func (h *RegisterHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	req, err := decodeRegistration(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	switch {
	case req.associate != nil:
		body := req.associate
		if body.ClientID != nil || body.ClientSecret != nil {
			// Clients never pre-assign their own identifier or secret.
			writeError(w, http.StatusBadRequest, "invalid_request",
				"client_id and client_secret may not be supplied at association")
			return
		}

		client, secret, err := h.Registration.Associate(ctx, metadataFrom(body))
		if err != nil {
			writeRegistrationError(w, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, registrationResponse(client, secret))

	case req.update != nil:
		body := req.update
		var clientID, clientSecret string
		if body.ClientID != nil {
			clientID = *body.ClientID
		}
		if body.ClientSecret != nil {
			clientSecret = *body.ClientSecret
		}

		client, err := h.Registration.Update(ctx, clientID, clientSecret, metadataFrom(body))
		if err != nil {
			writeRegistrationError(w, log, err)
			return
		}
		// The secret is never re-issued; echo the one the caller proved
		// possession of.
		httpx.WriteJSON(w, http.StatusOK, registrationResponse(client, clientSecret))
	}
}

// HandleOptions advertises the supported methods for pre-flight and
// introspection queries.
func (h *RegisterHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "OPTIONS, POST")
	w.WriteHeader(http.StatusOK)
}

// decodeRegistration parses a JSON or form body into a tagged registration.
func decodeRegistration(r *http.Request) (registration, error) {
	var body regsdk.RegistrationRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return registration{}, errors.New("malformed JSON body")
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return registration{}, errors.New("malformed form body")
		}
		body = regsdk.RegistrationRequest{
			Type:            r.PostForm.Get("type"),
			ClientID:        formValue(r.PostForm, "client_id"),
			ClientSecret:    formValue(r.PostForm, "client_secret"),
			ApplicationName: formValue(r.PostForm, "application_name"),
			Description:     formValue(r.PostForm, "description"),
			ApplicationType: formValue(r.PostForm, "application_type"),
			Contacts:        formValue(r.PostForm, "contacts"),
			LogoURL:         formValue(r.PostForm, "logo_url"),
			RedirectURIs:    formValue(r.PostForm, "redirect_uris"),
		}
	}

	switch body.Type {
	case regsdk.TypeAssociate:
		return registration{associate: &body}, nil
	case regsdk.TypeUpdate:
		return registration{update: &body}, nil
	default:
		return registration{}, errors.New("unrecognized or missing type")
	}
}

func formValue(form map[string][]string, key string) *string {
	vs, ok := form[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	return &vs[0]
}

func metadataFrom(body *regsdk.RegistrationRequest) service.ClientMetadata {
	return service.ClientMetadata{
		Title:        body.ApplicationName,
		Description:  body.Description,
		Type:         body.ApplicationType,
		Contacts:     body.Contacts,
		LogoURL:      body.LogoURL,
		RedirectURIs: body.RedirectURIs,
	}
}

func registrationResponse(client domain.Client, secret string) regsdk.RegistrationResponse {
	resp := regsdk.RegistrationResponse{
		ClientID:        client.ID,
		ClientSecret:    secret,
		ApplicationName: client.Title,
		Description:     client.Description,
		ApplicationType: client.Type,
		Contacts:        strings.Join(client.Contacts, " "),
		LogoURL:         client.LogoURL,
		RedirectURIs:    strings.Join(client.RedirectURIs, " "),
		CreatedAt:       client.CreatedAt.Unix(),
	}
	// expires_at is always present; zero means the credentials never expire.
	if client.ExpiresAt != nil {
		resp.ExpiresAt = client.ExpiresAt.Unix()
	}
	return resp
}

func writeRegistrationError(w http.ResponseWriter, log *slog.Logger, err error) {
	var fieldErr *service.FieldError
	switch {
	case errors.As(err, &fieldErr):
		writeError(w, http.StatusBadRequest, "invalid_request", fieldErr.Error())
	case errors.Is(err, service.ErrClientAuthentication):
		// Deliberately vague: no distinction between unknown client and
		// wrong secret.
		writeError(w, http.StatusBadRequest, "invalid_client", "client authentication failed")
	default:
		log.Error("registration failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error", "registration failed")
	}
}
