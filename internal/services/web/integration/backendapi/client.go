// Package backendapi is the HTTP client for the identity and study-plan API.
package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultUserAgent = "studydesk-web/0.1"

// Config wires the base URL and transport for the API client.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// Client calls the backend identity and study-plan API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Error captures a structured API failure. Error() returns the server's
// message verbatim so callers can match on the documented message contract.
type Error struct {
	Status  int
	Message string
}

func (e Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend status %d", e.Status)
	}
	return e.Message
}

// User is a profile record as served by the API.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the durable session summary attached to a grant.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Grant bundles the issued token, session, and user for an auth success.
// AccessToken and Session are absent when email confirmation is pending.
type Grant struct {
	AccessToken string   `json:"access_token,omitempty"`
	Session     *Session `json:"session,omitempty"`
	User        User     `json:"user"`
}

// StudyPlan is one user-scoped study plan record.
type StudyPlan struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewClient validates the configuration and returns a ready-to-use Client.
func NewClient(cfg Config) (*Client, error) {
	normalized, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{baseURL: normalized, httpClient: httpClient, userAgent: userAgent}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("backendapi: base URL required")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("backendapi: invalid base URL: %w", err)
	}
	if u.Scheme == "" {
		return "", errors.New("backendapi: base URL missing scheme (http/https)")
	}
	if u.Host == "" {
		return "", errors.New("backendapi: base URL missing host")
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return strings.TrimSuffix(u.String(), "/"), nil
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// SignUp registers a new account and returns the issued grant.
func (c *Client) SignUp(ctx context.Context, email, password, fullName string) (Grant, error) {
	var grant Grant
	err := c.do(ctx, http.MethodPost, "/v1/auth/signup", "", credentialsRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
	}, &grant)
	return grant, err
}

// SignIn exchanges credentials for a grant.
func (c *Client) SignIn(ctx context.Context, email, password string) (Grant, error) {
	var grant Grant
	err := c.do(ctx, http.MethodPost, "/v1/auth/login", "", credentialsRequest{
		Email:    email,
		Password: password,
	}, &grant)
	return grant, err
}

// SignOut revokes the session behind the token.
func (c *Client) SignOut(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/logout", token, nil, nil)
}

// CurrentUser resolves the session token to its session and user.
func (c *Client) CurrentUser(ctx context.Context, token string) (Session, User, error) {
	var grant Grant
	if err := c.do(ctx, http.MethodGet, "/v1/auth/session", token, nil, &grant); err != nil {
		return Session{}, User{}, err
	}
	if grant.Session == nil {
		return Session{}, User{}, Error{Status: http.StatusUnauthorized, Message: "session not found"}
	}
	return *grant.Session, grant.User, nil
}

// Profile fetches the caller's own profile record.
func (c *Client) Profile(ctx context.Context, token, userID string) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/v1/profiles/"+url.PathEscape(userID), token, nil, &u)
	return u, err
}

// StudyPlans lists the caller's study plans, newest first.
func (c *Client) StudyPlans(ctx context.Context, token string) ([]StudyPlan, error) {
	var payload struct {
		Plans []StudyPlan `json:"plans"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/study-plans", token, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Plans, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := Error{Status: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	}
	return apiErr
}
