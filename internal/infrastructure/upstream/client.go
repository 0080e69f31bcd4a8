// Package upstream implements ports.SocietyAPI against the society REST
// backend. It owns bearer-token attachment, JSON serialization, and the
// normalization of error responses into APIError.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/societyhub/dashboard/internal/core/domain"
	"github.com/societyhub/dashboard/internal/core/ports"
)

const apiPrefix = "/api/v1"

const defaultTimeout = 15 * time.Second

// Config captures the settings for reaching the backend.
type Config struct {
	// BaseURL is the backend origin, e.g. "http://localhost:8000".
	BaseURL string
	// Timeout bounds a single request. Defaults to defaultTimeout.
	Timeout time.Duration
}

// Client is the typed HTTP client for the backend contract.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ ports.SocietyAPI = (*Client)(nil)

// New creates a Client for the given backend origin.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// do issues one JSON request. A non-empty token is attached as a bearer
// credential. 2xx bodies are decoded into out (when non-nil); everything
// else becomes an APIError.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("upstream: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return newAPIError(resp.StatusCode, decodeDetail(resp))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("upstream: decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// decodeDetail extracts the backend's error message. The contract uses
// {"detail": "..."}; {"error": "..."} is tolerated for odd proxies.
func decodeDetail(resp *http.Response) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if len(payload.Detail) > 0 {
			var s string
			if json.Unmarshal(payload.Detail, &s) == nil && s != "" {
				return s
			}
			// Validation errors arrive as structured lists; keep them whole.
			return string(payload.Detail)
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return http.StatusText(resp.StatusCode)
}

// Ping hits the backend's unversioned health endpoint. Used by the
// readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("upstream: build health check: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream: health check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return newAPIError(resp.StatusCode, decodeDetail(resp))
	}
	return nil
}

// --- Auth ---

func (c *Client) Login(ctx context.Context, email, password string) (ports.TokenPair, error) {
	var pair ports.TokenPair
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &pair); err != nil {
		return ports.TokenPair{}, asCredentialFailure(err)
	}
	return pair, nil
}

func (c *Client) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/auth/signup", "", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", "", body, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *Client) Logout(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", accessToken, nil, nil)
}

func (c *Client) Me(ctx context.Context, accessToken string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/users/me", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "new_password": newPassword}
	return c.do(ctx, http.MethodPost, "/auth/reset-password", "", body, nil)
}

func (c *Client) ChangePassword(ctx context.Context, accessToken, current, next string) error {
	body := map[string]string{"current_password": current, "new_password": next}
	return c.do(ctx, http.MethodPost, "/auth/change-password", accessToken, body, nil)
}

// --- Societies ---

func (c *Client) ListSocieties(ctx context.Context, accessToken string, status domain.ApprovalStatus) ([]domain.Society, error) {
	path := "/societies"
	if status != "" {
		path += "?approval_status=" + url.QueryEscape(string(status))
	}
	var societies []domain.Society
	if err := c.do(ctx, http.MethodGet, path, accessToken, nil, &societies); err != nil {
		return nil, err
	}
	return societies, nil
}

func (c *Client) GetSociety(ctx context.Context, accessToken, societyID string) (*domain.Society, error) {
	var society domain.Society
	path := "/societies/" + url.PathEscape(societyID)
	if err := c.do(ctx, http.MethodGet, path, accessToken, nil, &society); err != nil {
		return nil, err
	}
	return &society, nil
}

func (c *Client) PublicSocieties(ctx context.Context) ([]domain.Society, error) {
	var societies []domain.Society
	if err := c.do(ctx, http.MethodGet, "/societies/public", "", nil, &societies); err != nil {
		return nil, err
	}
	return societies, nil
}

func (c *Client) CreateSociety(ctx context.Context, accessToken string, in ports.SocietyInput) (*domain.Society, error) {
	var society domain.Society
	if err := c.do(ctx, http.MethodPost, "/societies", accessToken, in, &society); err != nil {
		return nil, err
	}
	return &society, nil
}

func (c *Client) ApproveSociety(ctx context.Context, accessToken, societyID string, approved bool, reason string) (*domain.Society, error) {
	body := map[string]any{"approved": approved}
	if reason != "" {
		body["rejection_reason"] = reason
	}
	var society domain.Society
	path := "/societies/" + url.PathEscape(societyID) + "/approve-society"
	if err := c.do(ctx, http.MethodPost, path, accessToken, body, &society); err != nil {
		return nil, err
	}
	return &society, nil
}

func (c *Client) SocietyMembers(ctx context.Context, accessToken, societyID string, status domain.ApprovalStatus) ([]domain.SocietyMember, error) {
	path := "/societies/" + url.PathEscape(societyID) + "/members"
	if status != "" {
		path += "?approval_status=" + url.QueryEscape(string(status))
	}
	var members []domain.SocietyMember
	if err := c.do(ctx, http.MethodGet, path, accessToken, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Client) ApproveMembership(ctx context.Context, accessToken, societyID string, decision ports.MembershipDecision) (*domain.UserSociety, error) {
	var membership domain.UserSociety
	path := "/societies/" + url.PathEscape(societyID) + "/approve"
	if err := c.do(ctx, http.MethodPost, path, accessToken, decision, &membership); err != nil {
		return nil, err
	}
	return &membership, nil
}

// --- Users ---

func (c *Client) ListUsers(ctx context.Context, accessToken string) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/users", accessToken, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUser(ctx context.Context, accessToken, userID string, in ports.UserUpdateInput) (*domain.User, error) {
	var user domain.User
	path := "/users/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodPut, path, accessToken, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
