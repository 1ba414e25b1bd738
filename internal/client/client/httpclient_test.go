package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/bankclient/internal/client/banktest"
	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(baseURL, 2*time.Second, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func newBackend(t *testing.T) *banktest.Server {
	t.Helper()
	srv := banktest.New()
	t.Cleanup(srv.Close)
	return srv
}

func TestNewHTTPClient_ValidatesURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "http", url: "http://127.0.0.1:5000/api"},
		{name: "https trailing slash", url: "https://bank.example/api/"},
		{name: "no scheme", url: "127.0.0.1:5000", wantErr: true},
		{name: "grpc scheme", url: "grpc://bank:5000", wantErr: true},
		{name: "garbage", url: "http://[::1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewHTTPClient(tt.url, 0, logging.Discard())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, '/', c.baseURL[len(c.baseURL)-1])
		})
	}
}

func TestHTTPClient_Login(t *testing.T) {
	srv := newBackend(t)
	srv.AddUser(models.User{Name: "Asha", Email: "asha@x.io", Balance: decimal.NewFromInt(10)}, "1234")
	srv.SetNextOTP(482193)
	c := newTestClient(t, srv.BaseURL())

	res, err := c.Login(context.Background(), "asha@x.io", "1234")
	require.NoError(t, err)
	assert.Equal(t, models.OTP("482193"), res.OTP)
	assert.Equal(t, "Asha", res.User.Name)
	assert.True(t, decimal.NewFromInt(10).Equal(res.User.Balance))
}

func TestHTTPClient_Login_Rejected(t *testing.T) {
	srv := newBackend(t)
	srv.AddUser(models.User{Email: "b@x.io", Status: models.StatusBlocked}, "1111")
	c := newTestClient(t, srv.BaseURL())

	_, err := c.Login(context.Background(), "nobody@x.io", "0000")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Error())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrUnavailable)

	_, err = c.Login(context.Background(), "b@x.io", "1111")
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "Your account has been BLOCKED. Contact Admin.", apiErr.Message)
}

func TestHTTPClient_Register(t *testing.T) {
	srv := newBackend(t)
	c := newTestClient(t, srv.BaseURL())
	ctx := context.Background()

	err := c.Register(ctx, RegisterRequest{Name: "Rui", Age: 30, Email: "rui@x.io", Pin: "4321"})
	require.NoError(t, err)

	u, ok := srv.User("rui@x.io")
	require.True(t, ok)
	assert.Equal(t, models.StatusActive, u.Status)

	err = c.Register(ctx, RegisterRequest{Name: "Kid", Age: 12, Email: "kid@x.io", Pin: "4321"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Age must be 18 or above", apiErr.Message)
}

func TestHTTPClient_GetUser(t *testing.T) {
	srv := newBackend(t)
	srv.AddUser(models.User{
		Name:  "Asha",
		Email: "asha+1@x.io",
		Transactions: []models.Transaction{
			{Time: "t1", Type: models.TxDeposit, Amount: decimal.NewFromInt(5), BalanceAfter: decimal.NewFromInt(5)},
		},
	}, "1234")
	c := newTestClient(t, srv.BaseURL())

	u, err := c.GetUser(context.Background(), "asha+1@x.io")
	require.NoError(t, err)
	assert.Equal(t, "Asha", u.Name)
	require.Len(t, u.Transactions, 1)
	assert.Equal(t, models.TxDeposit, u.Transactions[0].Type)

	_, err = c.GetUser(context.Background(), "missing@x.io")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "User not found", err.Error())
}

func TestHTTPClient_DepositWithdraw(t *testing.T) {
	srv := newBackend(t)
	srv.AddUser(models.User{Email: "a@x.io", Balance: decimal.Zero}, "1234")
	c := newTestClient(t, srv.BaseURL())
	ctx := context.Background()

	bal, err := c.Deposit(ctx, "a@x.io", decimal.RequireFromString("100.25"))
	require.NoError(t, err)
	assert.Equal(t, "100.25", bal.String())

	bal, err = c.Withdraw(ctx, "a@x.io", decimal.NewFromInt(30), "1234")
	require.NoError(t, err)
	assert.Equal(t, "70.25", bal.String())

	_, err = c.Withdraw(ctx, "a@x.io", decimal.NewFromInt(1000), "1234")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Insufficient balance", apiErr.Message)

	_, err = c.Withdraw(ctx, "a@x.io", decimal.NewFromInt(1), "9999")
	assert.ErrorIs(t, err, ErrUnauthorized)

	u, _ := srv.User("a@x.io")
	require.Len(t, u.Transactions, 2)
	assert.Equal(t, models.TxWithdraw, u.Transactions[1].Type)
}

func TestHTTPClient_SendsAmountAsNumber(t *testing.T) {
	var got map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		_, _ = w.Write([]byte(`{"balance": 12.5}`))
	}))
	defer ts.Close()
	c := newTestClient(t, ts.URL)

	bal, err := c.Deposit(context.Background(), "a@x.io", decimal.RequireFromString("12.5"))
	require.NoError(t, err)
	assert.Equal(t, "12.5", bal.String())
	assert.Equal(t, 12.5, got["amount"])
	assert.Equal(t, "a@x.io", got["email"])
}

func TestHTTPClient_Admin(t *testing.T) {
	srv := newBackend(t)
	srv.AddUser(models.User{Name: "A", Email: "a@x.io"}, "1111")
	srv.AddUser(models.User{Name: "B", Email: "b@x.io", Status: models.StatusSuspended}, "2222")
	c := newTestClient(t, srv.BaseURL())
	ctx := context.Background()

	_, err := c.Deposit(ctx, "a@x.io", decimal.NewFromInt(50))
	require.NoError(t, err)

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, models.Status(""), users[0].Status)
	assert.Equal(t, models.StatusSuspended, users[1].Status)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCounts{Active: 1, Suspended: 1}, stats.UserStatus)
	assert.Equal(t, "50", stats.Financials.Deposits.String())

	msg, err := c.SetUserStatus(ctx, "b@x.io", models.StatusBlocked)
	require.NoError(t, err)
	assert.Equal(t, "User status updated to Blocked", msg)

	_, err = c.SetUserStatus(ctx, "ghost@x.io", models.StatusBlocked)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPClient_RequestIDHeader(t *testing.T) {
	srv := newBackend(t)
	c := newTestClient(t, srv.BaseURL())

	ids := []string{"id-1", "id-2"}
	orig := newRequestID
	newRequestID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	t.Cleanup(func() { newRequestID = orig })

	_, _ = c.ListUsers(context.Background())
	_, _ = c.Stats(context.Background())

	assert.Equal(t, []string{"id-1", "id-2"}, srv.RequestIDs())
}

func TestHTTPClient_ErrorBodyFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>boom</html>"))
	}))
	defer ts.Close()
	c := newTestClient(t, ts.URL)

	_, err := c.Stats(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), apiErr.Message)
}

func TestHTTPClient_MalformedSuccessBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer ts.Close()
	c := newTestClient(t, ts.URL)

	_, err := c.GetUser(context.Background(), "a@x.io")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()
	c := newTestClient(t, url)

	_, err := c.Login(context.Background(), "a@x.io", "1234")
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestHTTPClient_CancelledContext(t *testing.T) {
	srv := newBackend(t)
	c := newTestClient(t, srv.BaseURL())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListUsers(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestHTTPClient_Timeout(t *testing.T) {
	block := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(block)

	c, err := NewHTTPClient(ts.URL, 50*time.Millisecond, logging.Discard())
	require.NoError(t, err)

	_, err = c.Stats(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_Ping(t *testing.T) {
	srv := newBackend(t)
	c := newTestClient(t, srv.BaseURL())

	// The fake has no route for the API root; a 404 still proves reachability.
	assert.NoError(t, c.Ping(context.Background()))
}

func TestHTTPClient_InjectedFailure(t *testing.T) {
	srv := newBackend(t)
	srv.AddUser(models.User{Email: "a@x.io"}, "1234")
	srv.FailNext("/api/user/{email}", http.StatusServiceUnavailable, "maintenance")
	c := newTestClient(t, srv.BaseURL())

	_, err := c.GetUser(context.Background(), "a@x.io")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "maintenance", apiErr.Message)

	_, err = c.GetUser(context.Background(), "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Hits("/api/user/{email}"))
}
