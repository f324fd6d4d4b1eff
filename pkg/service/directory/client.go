package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/contextual-ai/tenantctl/pkg/domain/interfaces"
	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/contextual-ai/tenantctl/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
)

// Error tags for categorization
var (
	ErrTagTransport  = goerr.NewTag("transport")
	ErrTagHTTPStatus = goerr.NewTag("http_status")
	ErrTagDecode     = goerr.NewTag("decode")
)

const (
	DefaultBaseURL = "https://api.contextual.ai/v1"
	DefaultTimeout = 30 * time.Second

	usersPath       = "/users"
	maxErrorBodyLen = 512
	maxBodyBytes    = 8 << 20
)

// Config holds everything the client needs. Nothing is read from the environment.
type Config struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration // 0 disables the timeout
	UserAgent string

	// HTTPClient supplies the base transport. Optional.
	HTTPClient *http.Client
}

// Client talks to the user-management API of the tenant bound to the API key
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

var _ interfaces.Directory = (*Client)(nil)

// New creates a new directory client
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, goerr.Wrap(model.ErrMissingCredential, "API key is required for directory client")
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, goerr.Wrap(model.ErrInvalidConfig, "invalid API base URL", goerr.V("url", cfg.BaseURL))
	}

	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{}
	}

	// oauth2 wraps the base transport and attaches "Authorization: Bearer <key>"
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.APIKey,
		TokenType:   "Bearer",
	}))
	httpClient.Timeout = cfg.Timeout

	return &Client{
		baseURL:    baseURL,
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
	}, nil
}

// ListUsers returns every user of the tenant
func (c *Client) ListUsers(ctx context.Context) ([]*model.User, error) {
	var resp model.ListUsersResponse
	if err := c.do(ctx, http.MethodGet, usersPath, nil, &resp); err != nil {
		ctxlog.From(ctx).Error("Failed to list users", "error", err)
		return nil, goerr.Wrap(err, "failed to list users")
	}

	users := make([]*model.User, 0, len(resp.Users))
	for _, u := range resp.Users {
		if u != nil {
			users = append(users, u)
		}
	}
	return users, nil
}

// InviteUsers sends one invitation batch
func (c *Client) InviteUsers(ctx context.Context, req *model.InviteRequest) (*model.InviteResponse, error) {
	if req == nil {
		return nil, goerr.New("invite request is nil")
	}

	var resp model.InviteResponse
	if err := c.do(ctx, http.MethodPost, usersPath, req, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to invite users",
			goerr.V("tenant", req.TenantShortName),
			goerr.V("count", len(req.NewUsers)),
		)
	}
	if resp.Errors == nil {
		resp.Errors = map[types.Email]string{}
	}
	return &resp, nil
}

// RemoveUser removes a single user by email
func (c *Client) RemoveUser(ctx context.Context, email types.Email) error {
	body := &model.RemoveUserRequest{Email: email}
	if err := c.do(ctx, http.MethodDelete, usersPath, body, nil); err != nil {
		ctxlog.From(ctx).Warn("Failed to remove user", "email", email, "error", err)
		return goerr.Wrap(err, "failed to remove user", goerr.V("email", email))
	}
	return nil
}

// do sends one JSON request and decodes a JSON response into out when out is non-nil
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	requestID := types.NewRequestID()
	endpoint := c.baseURL + path

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return goerr.Wrap(err, "failed to encode request body")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return goerr.Wrap(err, "failed to create request",
			goerr.V("method", method),
			goerr.V("url", endpoint),
		)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("X-Request-Id", requestID.String())

	ctxlog.From(ctx).Debug("Sending API request",
		"method", method,
		"url", endpoint,
		"request_id", requestID,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "request failed",
			goerr.V("method", method),
			goerr.V("url", endpoint),
			goerr.V("request_id", requestID),
			goerr.T(ErrTagTransport),
		)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return goerr.Wrap(err, "failed to read response body",
			goerr.V("status", resp.StatusCode),
			goerr.V("request_id", requestID),
			goerr.T(ErrTagTransport),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return goerr.New(statusMessage(resp.StatusCode, raw),
			goerr.V("status", resp.StatusCode),
			goerr.V("method", method),
			goerr.V("url", endpoint),
			goerr.V("request_id", requestID),
			goerr.T(ErrTagHTTPStatus),
		)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return goerr.Wrap(err, "failed to decode response body",
			goerr.V("status", resp.StatusCode),
			goerr.V("request_id", requestID),
			goerr.T(ErrTagDecode),
		)
	}
	return nil
}

// statusMessage renders "HTTP 400 Bad Request: <body>" with the body cut short
func statusMessage(code int, body []byte) string {
	msg := fmt.Sprintf("HTTP %d %s", code, http.StatusText(code))
	text := strings.TrimSpace(string(body))
	if text == "" {
		return msg
	}
	if len(text) > maxErrorBodyLen {
		text = text[:maxErrorBodyLen] + "..."
	}
	return msg + ": " + text
}
