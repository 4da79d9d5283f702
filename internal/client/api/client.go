// Package api implements the HTTP client for the MedVault backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/medvault/medvault/internal/common"
)

// Client talks to the MedVault REST API. After a successful Login it keeps
// the bearer token and attaches it to every subsequent request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Token returns the bearer token acquired by Login, or "" before login.
func (c *Client) Token() string {
	return c.token
}

// Logout discards the stored bearer token.
func (c *Client) Logout() {
	c.token = ""
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	DateOfBirth string `json:"dateOfBirth"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type Patient struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	Age         int    `json:"age"`
	LoadedBy    string `json:"loadedBy,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrUnauthorized, env.Message)
	}
	if !env.Success {
		return fmt.Errorf("server error: %s", env.Message)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}

	return nil
}

// Ping checks that the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil)
}

// Register creates a new account. No token is issued; the operator logs in
// explicitly afterwards.
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login authenticates and stores the returned bearer token for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", &loginRequest{Email: email, Password: password}, &result); err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// GetProfile returns the identity claims of the logged-in operator.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreatePatient uploads a single patient record.
func (c *Client) CreatePatient(ctx context.Context, patient *Patient) (*Patient, error) {
	var created Patient
	if err := c.do(ctx, http.MethodPost, "/api/patients", patient, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListPatients returns all patient records, newest first.
func (c *Client) ListPatients(ctx context.Context) ([]*Patient, error) {
	var list []*Patient
	if err := c.do(ctx, http.MethodGet, "/api/patients/list", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// MyUploads returns the patient records uploaded by the logged-in operator.
func (c *Client) MyUploads(ctx context.Context) ([]*Patient, error) {
	var list []*Patient
	if err := c.do(ctx, http.MethodGet, "/api/patients/my-uploads", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
