// Package api implements the gateway ports against the PaycheckBuddy
// HTTP API: JSON bodies, entity ids as path segments, bearer tokens.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"paycheckbuddy/internal/core"
	"paycheckbuddy/internal/gateway"
	"paycheckbuddy/internal/metrics"
)

type Client struct {
	baseURL string
	httpc   *http.Client
	creds   gateway.CredentialSource
}

// Ensure interface conformance
var (
	_ gateway.UserDataFetcher  = (*Client)(nil)
	_ gateway.TimePeriodWriter = (*Client)(nil)
	_ gateway.ExpenseStore     = (*Client)(nil)
	_ gateway.PaycheckStore    = (*Client)(nil)
	_ gateway.Authenticator    = (*Client)(nil)
)

// New creates a client for the API at baseURL. The timeout bounds every
// request end to end; pass zero to accept the default of 15 seconds.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   newHTTPClient(timeout),
	}
}

// SetCredentials attaches the token source used for the Authorization
// header and for the one-shot refresh on a 401. The auth endpoints
// themselves never consult it.
func (c *Client) SetCredentials(creds gateway.CredentialSource) {
	c.creds = creds
}

// newHTTPClient builds a pooled transport with explicit timeouts so a
// stalled server cannot wedge the UI event loop behind it.
func newHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}

func (c *Client) FetchUserData(ctx context.Context) (core.UserData, error) {
	var out core.UserData
	err := c.do(ctx, http.MethodGet, "/api/user_data", "fetch user data", nil, &out)
	return out, err
}

func (c *Client) CreateTimePeriod(ctx context.Context, draft core.TimePeriodDraft) (core.TimePeriod, error) {
	var out core.TimePeriod
	err := c.do(ctx, http.MethodPost, "/api/time_periods", "create time period", draft, &out)
	return out, err
}

func (c *Client) CreateExpense(ctx context.Context, timePeriodID int64, draft core.ExpenseDraft) (core.Expense, error) {
	var out core.Expense
	path := fmt.Sprintf("/api/time_periods/%d/expenses", timePeriodID)
	err := c.do(ctx, http.MethodPost, path, "create expense", draft, &out)
	return out, err
}

func (c *Client) UpdateExpense(ctx context.Context, timePeriodID, expenseID int64, draft core.ExpenseDraft) (core.Expense, error) {
	var out core.Expense
	path := fmt.Sprintf("/api/time_periods/%d/expenses/%d", timePeriodID, expenseID)
	err := c.do(ctx, http.MethodPut, path, "update expense", draft, &out)
	return out, err
}

func (c *Client) DeleteExpense(ctx context.Context, timePeriodID, expenseID int64) error {
	path := fmt.Sprintf("/api/time_periods/%d/expenses/%d", timePeriodID, expenseID)
	return c.do(ctx, http.MethodDelete, path, "delete expense", nil, nil)
}

func (c *Client) CreatePaycheck(ctx context.Context, timePeriodID int64, draft core.PaycheckDraft) (core.Paycheck, error) {
	var out core.Paycheck
	path := fmt.Sprintf("/api/time_periods/%d/paychecks", timePeriodID)
	err := c.do(ctx, http.MethodPost, path, "create paycheck", draft, &out)
	return out, err
}

func (c *Client) UpdatePaycheck(ctx context.Context, timePeriodID, paycheckID int64, draft core.PaycheckDraft) (core.Paycheck, error) {
	var out core.Paycheck
	path := fmt.Sprintf("/api/time_periods/%d/paychecks/%d", timePeriodID, paycheckID)
	err := c.do(ctx, http.MethodPut, path, "update paycheck", draft, &out)
	return out, err
}

func (c *Client) DeletePaycheck(ctx context.Context, timePeriodID, paycheckID int64) error {
	path := fmt.Sprintf("/api/time_periods/%d/paychecks/%d", timePeriodID, paycheckID)
	return c.do(ctx, http.MethodDelete, path, "delete paycheck", nil, nil)
}

type (
	authRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	authResponse struct {
		User         core.User `json:"user"`
		AccessToken  string    `json:"access_token"`
		RefreshToken string    `json:"refresh_token"`
	}
)

func (c *Client) Login(ctx context.Context, username, password string) (gateway.Credentials, error) {
	return c.authenticate(ctx, "/api/auth/login", "login", username, password)
}

func (c *Client) Register(ctx context.Context, username, password string) (gateway.Credentials, error) {
	return c.authenticate(ctx, "/api/auth/register", "register", username, password)
}

func (c *Client) authenticate(ctx context.Context, path, op, username, password string) (gateway.Credentials, error) {
	body, err := json.Marshal(authRequest{Username: username, Password: password})
	if err != nil {
		return gateway.Credentials{}, fmt.Errorf("encode %s request: %w", op, err)
	}
	var out authResponse
	if err := c.roundTrip(ctx, http.MethodPost, path, op, body, &out, "", false); err != nil {
		return gateway.Credentials{}, err
	}
	return gateway.Credentials{User: out.User, AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}, nil
}

// RefreshToken trades the refresh token for a new access token. The
// refresh token travels as the bearer credential of this one request.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.roundTrip(ctx, http.MethodPost, "/api/auth/refresh", "refresh token", nil, &out, refreshToken, false); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

func (c *Client) do(ctx context.Context, method, path, op string, payload, out any) error {
	var body []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		body = b
	}
	token := ""
	if c.creds != nil {
		token = c.creds.AccessToken()
	}
	return c.roundTrip(ctx, method, path, op, body, out, token, c.creds != nil)
}

// roundTrip performs one HTTP exchange. When the server answers 401 and
// allowRefresh is set, it refreshes the access token once and retries;
// the retry itself can no longer refresh.
func (c *Client) roundTrip(ctx context.Context, method, path, op string, body []byte, out any, token string, allowRefresh bool) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.GatewayRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(op, "error").Inc()
		slog.ErrorContext(ctx, "Gateway request failed", "op", op, "method", method, "path", path, "error", err)
		return gateway.NewError(op, 0, "")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(op, "error").Inc()
		return gateway.NewError(op, resp.StatusCode, "")
	}

	if resp.StatusCode == http.StatusUnauthorized && allowRefresh {
		fresh, rerr := c.creds.RefreshAccessToken(ctx)
		if rerr == nil && fresh != "" {
			slog.DebugContext(ctx, "Retrying after token refresh", "op", op)
			return c.roundTrip(ctx, method, path, op, body, out, fresh, false)
		}
	}

	if resp.StatusCode >= 400 {
		metrics.GatewayRequestsTotal.WithLabelValues(op, "error").Inc()
		return gateway.NewError(op, resp.StatusCode, errorMessage(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			metrics.GatewayRequestsTotal.WithLabelValues(op, "error").Inc()
			slog.ErrorContext(ctx, "Gateway response decode failed", "op", op, "error", err)
			return gateway.NewError(op, resp.StatusCode, "")
		}
	}
	metrics.GatewayRequestsTotal.WithLabelValues(op, "ok").Inc()
	return nil
}

// errorMessage pulls the server-supplied message from an error body.
// The server sends {"error": "..."} but validation failures may carry a
// structured object instead of a string.
func errorMessage(data []byte) string {
	var body struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Error) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(body.Error, &s); err == nil {
		return s
	}
	raw := strings.TrimSpace(string(body.Error))
	if raw == "" || raw == "null" {
		return ""
	}
	return raw
}
