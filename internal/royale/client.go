// Package royale is a thin client for the official Clash Royale player API.
// It fetches one player snapshot per call; upstream failures surface as
// typed errors and are never retried here.
package royale

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultBaseURL is the official API endpoint.
const DefaultBaseURL = "https://api.clashroyale.com/v1"

// EnvAPIKey names the environment variable holding the developer token.
const EnvAPIKey = "ROYALE_API_KEY"

const requestTimeout = 10 * time.Second

// TokenFromEnv returns the developer token from the environment, empty when
// unset.
func TokenFromEnv() string {
	return os.Getenv(EnvAPIKey)
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Reason     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("royale api: %d %s: %s", e.StatusCode, e.Reason, e.Message)
	}
	return fmt.Sprintf("royale api: %d %s", e.StatusCode, e.Reason)
}

// IsAuth reports whether the token was missing, invalid or not allowed.
func (e *APIError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether the player tag does not exist.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsRateLimited reports whether the API throttled the request.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// PlayerCard is one card in a player snapshot.
type PlayerCard struct {
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Level  int    `json:"level"`
	Count  int    `json:"count"`
}

// PlayerSnapshot is the subset of the player payload the planner consumes.
type PlayerSnapshot struct {
	Tag       string       `json:"tag"`
	Name      string       `json:"name"`
	ExpPoints int          `json:"expPoints"`
	Cards     []PlayerCard `json:"cards"`
}

// Client talks to the Clash Royale API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient builds a client for the official endpoint. An empty token is
// allowed at construction; requests will then fail with an auth error.
func NewClient(token string) *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// NewClientWith builds a client against a custom endpoint, primarily for
// tests.
func NewClientWith(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// NormalizeTag upper-cases a player tag and strips the leading '#'.
func NormalizeTag(tag string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
}

// FetchPlayer retrieves one player snapshot by tag. The tag may be given
// with or without the leading '#'.
func (c *Client) FetchPlayer(ctx context.Context, tag string) (*PlayerSnapshot, error) {
	normalized := NormalizeTag(tag)
	if normalized == "" {
		return nil, fmt.Errorf("player tag is empty")
	}

	endpoint := c.baseURL + "/players/" + url.PathEscape("#"+normalized)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build player request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch player %s: %w", normalized, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Reason: http.StatusText(resp.StatusCode)}
		var body struct {
			Reason  string `json:"reason"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
			if body.Reason != "" {
				apiErr.Reason = body.Reason
			}
			apiErr.Message = body.Message
		}
		return nil, apiErr
	}

	var snapshot PlayerSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode player %s: %w", normalized, err)
	}
	return &snapshot, nil
}
