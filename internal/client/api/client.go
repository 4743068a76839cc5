// Package api implements the HTTP client for the clipstream server API.
// It keeps the token pair obtained at login and transparently refreshes the
// access token when the server reports it expired.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/mkorotkov/clipstream/internal/common"
)

// APIError is a structured error returned by the server.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
	Type       string `json:"type"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets callers match APIErrors against the shared sentinels with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case common.ErrorUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case common.ErrUnsupportedMediaType:
		return e.StatusCode == http.StatusUnsupportedMediaType
	case common.ErrorNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// UploadGrant is a single-use write authorization issued by the server.
type UploadGrant struct {
	UploadURL  string `json:"uploadUrl"`
	StorageKey string `json:"storageKey"`
	ExpiresIn  int    `json:"expiresIn"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Authenticated reports whether a login has been performed.
func (c *Client) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken != ""
}

func (c *Client) setTokens(p tokenPair) {
	c.mu.Lock()
	c.accessToken = p.AccessToken
	c.refreshToken = p.RefreshToken
	c.mu.Unlock()
}

func (c *Client) tokens() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

// Logout drops the stored token pair.
func (c *Client) Logout() {
	c.setTokens(tokenPair{})
}

func (c *Client) Register(ctx context.Context, login, password string) error {
	body := map[string]string{"login": login, "password": password}
	return c.doJSON(ctx, http.MethodPost, "/api/v1/auth/register", body, nil, false)
}

func (c *Client) Login(ctx context.Context, login, password string) error {
	body := map[string]string{"login": login, "password": password}

	var pair tokenPair
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", body, &pair, false); err != nil {
		return err
	}

	c.setTokens(pair)
	return nil
}

func (c *Client) refresh(ctx context.Context) error {
	_, rt := c.tokens()
	if rt == "" {
		return common.ErrorUnauthorized
	}

	var pair tokenPair
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/refresh", map[string]string{"refreshToken": rt}, &pair, false)
	if err != nil {
		return err
	}

	c.setTokens(pair)
	return nil
}

// CreateUpload requests a fresh write authorization for one file.
func (c *Client) CreateUpload(ctx context.Context, fileName, contentType, category string) (*UploadGrant, error) {
	body := map[string]string{
		"fileName":    fileName,
		"contentType": contentType,
		"category":    category,
	}

	var grant UploadGrant
	if err := c.doAuthed(ctx, http.MethodPost, "/api/v1/uploads", body, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

// PlaybackURL asks the server for a short-lived read URL for a stored object.
func (c *Client) PlaybackURL(ctx context.Context, key string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	path := "/api/v1/uploads/url?key=" + key
	if err := c.doAuthed(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// doAuthed performs an authenticated request. On a TokenExpired rejection it
// refreshes the token pair once and retries.
func (c *Client) doAuthed(ctx context.Context, method, path string, body, out any) error {
	err := c.doJSON(ctx, method, path, body, out, true)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Type == "TokenExpired" {
		if rerr := c.refresh(ctx); rerr != nil {
			return rerr
		}
		err = c.doJSON(ctx, method, path, body, out, true)
	}
	return err
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, authed bool) error {

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		at, _ := c.tokens()
		if at == "" {
			return common.ErrorUnauthorized
		}
		req.Header.Set(common.AuthHeaderName, "Bearer "+at)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr := json.NewDecoder(resp.Body).Decode(apiErr); decodeErr != nil {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
