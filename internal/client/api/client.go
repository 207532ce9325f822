// Package api is the HTTP client for the Everkeep server. It speaks the
// /api JSON surface and translates wire errors back into the shared
// taxonomy, so the CLI can keep matching with errors.Is.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/common"
	"github.com/everkeep/everkeep/internal/server/models"
)

type Client struct {
	baseURL string
	http    *http.Client

	accessToken  string
	refreshToken string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// LoginResult bundles the authenticated user with the issued token pair.
type LoginResult struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// EntryPayload is the request body for entry create/update calls.
type EntryPayload struct {
	Content             string              `json:"content"`
	Type                models.EntryType    `json:"type,omitempty"`
	Status              models.EntryStatus  `json:"status,omitempty"`
	ReleaseType         *models.ReleaseType `json:"release_type,omitempty"`
	ReleaseDate         *time.Time          `json:"release_date,omitempty"`
	ReleaseContactEmail *string             `json:"release_contact_email,omitempty"`
}

type wireError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// decodeError reconstructs a taxonomy error from the wire shape. An
// unparseable body degrades to a generic AppError.
func decodeError(status int, body []byte) error {
	var we wireError
	if err := json.Unmarshal(body, &we); err != nil || we.Error.Code == "" {
		return common.AppError(fmt.Sprintf("server returned status %d", status))
	}

	switch we.Error.Code {
	case "VALIDATION_ERROR":
		return common.ValidationError(we.Error.Message)
	case "AUTH_ERROR":
		return common.AuthorizationError(we.Error.Message)
	case "NOT_FOUND":
		return common.NotFoundError(we.Error.Message)
	default:
		return common.AppError(we.Error.Message)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling server: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/api/auth/register",
		map[string]string{"email": email, "password": password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and stores the token pair on the client for
// subsequent guarded calls.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var res LoginResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &res)
	if err != nil {
		return nil, err
	}
	c.accessToken = res.AccessToken
	c.refreshToken = res.RefreshToken
	return res.User, nil
}

// Refresh rotates the stored token pair.
func (c *Client) Refresh(ctx context.Context) error {
	var res struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/refresh",
		map[string]string{"refresh_token": c.refreshToken}, &res)
	if err != nil {
		return err
	}
	c.accessToken = res.AccessToken
	c.refreshToken = res.RefreshToken
	return nil
}

// Logout revokes the refresh token and clears the stored pair.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout",
		map[string]string{"refresh_token": c.refreshToken}, nil)
	c.accessToken = ""
	c.refreshToken = ""
	return err
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) ListPendingUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/pending", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUserStatus(ctx context.Context, id uuid.UUID, status models.AccountStatus) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPut, "/api/users/"+id.String()+"/status",
		map[string]models.AccountStatus{"status": status}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, id uuid.UUID, patch map[string]any) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/api/users/"+id.String()+"/profile", patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ResetPassword(ctx context.Context, id uuid.UUID, password string) error {
	return c.do(ctx, http.MethodPut, "/api/users/"+id.String()+"/password",
		map[string]string{"password": password}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+id.String(), nil, nil)
}

func (c *Client) CreateEntry(ctx context.Context, payload EntryPayload) (*models.Entry, error) {
	var entry models.Entry
	if err := c.do(ctx, http.MethodPost, "/api/entries", payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Client) UpdateEntry(ctx context.Context, id uuid.UUID, payload EntryPayload) (*models.Entry, error) {
	var entry models.Entry
	if err := c.do(ctx, http.MethodPut, "/api/entries/"+id.String(), payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Client) GetEntry(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	var entry models.Entry
	if err := c.do(ctx, http.MethodGet, "/api/entries/"+id.String(), nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListEntries fetches the caller's entries, optionally filtered by status.
func (c *Client) ListEntries(ctx context.Context, status models.EntryStatus) ([]models.Entry, error) {
	path := "/api/entries"
	if status != "" {
		path += "?status=" + string(status)
	}
	var entries []models.Entry
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/entries/"+id.String(), nil, nil)
}
