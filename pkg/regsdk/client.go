package regsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	Status int
	Body   ErrorResponse
}

func (e *APIError) Error() string {
	if e.Body.Error != "" {
		return fmt.Sprintf("regsdk: %d %s: %s", e.Status, e.Body.Error, e.Body.ErrorDescription)
	}
	return fmt.Sprintf("regsdk: unexpected status %d", e.Status)
}

// Client talks to a gatehouse instance.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    http.DefaultClient,
	}
}

// Associate registers a new client and returns its freshly minted
// credentials. The secret in the response is shown exactly once.
func (c *Client) Associate(ctx context.Context, req RegistrationRequest) (RegistrationResponse, error) {
	req.Type = TypeAssociate
	return c.register(ctx, req)
}

// Update mutates an existing client's metadata, authenticated by its own
// client_id/client_secret pair.
func (c *Client) Update(ctx context.Context, clientID, clientSecret string, req RegistrationRequest) (RegistrationResponse, error) {
	req.Type = TypeUpdate
	req.ClientID = &clientID
	req.ClientSecret = &clientSecret
	return c.register(ctx, req)
}

func (c *Client) register(ctx context.Context, req RegistrationRequest) (RegistrationResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return RegistrationResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/client/register", bytes.NewReader(body))
	if err != nil {
		return RegistrationResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return RegistrationResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return RegistrationResponse{}, decodeError(resp)
	}

	var out RegistrationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return RegistrationResponse{}, err
	}
	return out, nil
}

// AllowedMethods asks the registration endpoint which methods it supports.
func (c *Client) AllowedMethods(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodOptions, c.BaseURL+"/api/client/register", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var allow []string
	for _, part := range strings.Split(resp.Header.Get("Allow"), ",") {
		if part = strings.TrimSpace(part); part != "" {
			allow = append(allow, part)
		}
	}
	return allow, nil
}

// Login exchanges a nickname/password pair for a session token.
func (c *Client) Login(ctx context.Context, nickname, password string) (SessionResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/session", nil)
	if err != nil {
		return SessionResponse{}, err
	}
	req.SetBasicAuth(nickname, password)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return SessionResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SessionResponse{}, decodeError(resp)
	}

	var out SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return SessionResponse{}, err
	}
	return out, nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	_ = json.NewDecoder(resp.Body).Decode(&apiErr.Body)
	return apiErr
}
