package client

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

	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestIDHeader carries a fresh UUID on every backend call.
const RequestIDHeader = "X-Request-ID"

// newRequestID is a test seam.
var newRequestID = uuid.NewString

type HTTPClient struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient returns a client for the backend rooted at baseURL, e.g.
// "http://127.0.0.1:5000/api". timeout bounds each request; zero means no
// limit beyond the caller's context.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
		logger:  logger,
	}, nil
}

type loginRequest struct {
	Email string `json:"email"`
	Pin   string `json:"pin"`
}

type depositRequest struct {
	Email  string      `json:"email"`
	Amount json.Number `json:"amount"`
}

type withdrawRequest struct {
	Email  string      `json:"email"`
	Amount json.Number `json:"amount"`
	Pin    string      `json:"pin"`
}

type statusRequest struct {
	Email  string        `json:"email"`
	Status models.Status `json:"status"`
}

type balanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

type userResponse struct {
	User models.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPClient) Login(ctx context.Context, email, pin string) (*LoginResult, error) {
	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/login", loginRequest{Email: email, Pin: pin}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/register", req, nil)
}

func (c *HTTPClient) GetUser(ctx context.Context, email string) (models.User, error) {
	var res userResponse
	if err := c.do(ctx, http.MethodGet, "/user/"+url.PathEscape(email), nil, &res); err != nil {
		return models.User{}, err
	}
	return res.User, nil
}

func (c *HTTPClient) Deposit(ctx context.Context, email string, amount decimal.Decimal) (decimal.Decimal, error) {
	var res balanceResponse
	req := depositRequest{Email: email, Amount: json.Number(amount.String())}
	if err := c.do(ctx, http.MethodPost, "/deposit", req, &res); err != nil {
		return decimal.Zero, err
	}
	return res.Balance, nil
}

func (c *HTTPClient) Withdraw(ctx context.Context, email string, amount decimal.Decimal, pin string) (decimal.Decimal, error) {
	var res balanceResponse
	req := withdrawRequest{Email: email, Amount: json.Number(amount.String()), Pin: pin}
	if err := c.do(ctx, http.MethodPost, "/withdraw", req, &res); err != nil {
		return decimal.Zero, err
	}
	return res.Balance, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.RosterEntry, error) {
	var res []models.RosterEntry
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (models.Stats, error) {
	var res models.Stats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, &res); err != nil {
		return models.Stats{}, err
	}
	return res, nil
}

func (c *HTTPClient) SetUserStatus(ctx context.Context, email string, status models.Status) (string, error) {
	var res messageResponse
	if err := c.do(ctx, http.MethodPost, "/admin/user-status", statusRequest{Email: email, Status: status}, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}

// Ping reports whether the backend answers HTTP at all; any status code
// counts as reachable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// do sends body as JSON to path and decodes a 2xx reply into out (when out
// is not nil). See mapError for the failure cases.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	reqCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := newRequestID()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With("method", method, "path", path, "request_id", requestID)
	log.Debug(ctx, "backend request")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.mapError(ctx, err)
	}
	log.Debug(ctx, "backend response", "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}
	return nil
}

// mapError turns a failed round trip into ErrUnavailable unless the caller's
// own context was cancelled, in which case that error is returned as is.
func (c *HTTPClient) mapError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func newAPIError(code int, data []byte) *APIError {
	var body errorResponse
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		return &APIError{StatusCode: code, Message: http.StatusText(code)}
	}
	return &APIError{StatusCode: code, Message: body.Error}
}
