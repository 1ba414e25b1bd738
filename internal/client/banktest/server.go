// Package banktest runs an in-memory banking backend on httptest for client
// and service tests. It serves the same JSON routes under /api as the real
// backend, including its error bodies and account status gates.
package banktest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

const (
	AdminEmail = "admin@login.com"
	AdminPin   = "admin@123"

	timeLayout = "2006-01-02 15:04:05"
)

type account struct {
	user models.User
	pin  string
}

type failure struct {
	status  int
	message string
}

// Server is a fake backend. The zero value is not usable; call New.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	accounts   []*account
	nextOTP    int
	failures   map[string]failure
	requestIDs []string
	hits       map[string]int

	// Now stamps transactions.
	Now func() time.Time
}

// New starts a fake backend. Close it when done.
func New() *Server {
	s := &Server{
		nextOTP:  100000,
		failures: map[string]failure{},
		hits:     map[string]int{},
		Now:      time.Now,
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

// BaseURL is the API root to hand to client.NewHTTPClient.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.record)

	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/user/{email}", s.handleGetUser).Methods(http.MethodGet)
	api.HandleFunc("/deposit", s.handleDeposit).Methods(http.MethodPost)
	api.HandleFunc("/withdraw", s.handleWithdraw).Methods(http.MethodPost)
	api.HandleFunc("/admin/users", s.handleListUsers).Methods(http.MethodGet)
	api.HandleFunc("/admin/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/admin/user-status", s.handleUserStatus).Methods(http.MethodPost)
	return r
}

// record keeps request ids and hit counts and injects queued failures.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := routePath(r)

		s.mu.Lock()
		s.requestIDs = append(s.requestIDs, r.Header.Get("X-Request-ID"))
		s.hits[path]++
		f, failing := s.failures[path]
		if failing {
			delete(s.failures, path)
		}
		s.mu.Unlock()

		if failing {
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

// AddUser stores an account. A zero status is stored as is, so the record is
// served without a status field.
func (s *Server) AddUser(u models.User, pin string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.AccountNumber == "" {
		u.AccountNumber = fmt.Sprintf("ACC%03d", len(s.accounts)+1)
	}
	s.accounts = append(s.accounts, &account{user: u, pin: pin})
}

// User returns the stored record for email.
func (s *Server) User(email string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a := s.find(email); a != nil {
		return a.user, true
	}
	return models.User{}, false
}

// SetNextOTP fixes the next challenge issued by /login. Later challenges
// count up from it.
func (s *Server) SetNextOTP(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextOTP = v
}

// FailNext makes the next request to route (a path template such as
// "/api/user/{email}") answer status with message as the error body.
func (s *Server) FailNext(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, message: message}
}

// Hits counts requests received for route.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// RequestIDs returns the X-Request-ID header of every request, in order.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

func (s *Server) find(email string) *account {
	for _, a := range s.accounts {
		if a.user.Email == email {
			return a
		}
	}
	return nil
}

func (s *Server) issueOTP() int {
	v := s.nextOTP
	s.nextOTP++
	return v
}

type loginBody struct {
	Email string `json:"email"`
	Pin   string `json:"pin"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Pin == "" {
		writeError(w, http.StatusBadRequest, "Email and PIN are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if body.Email == AdminEmail && body.Pin == AdminPin {
		writeJSON(w, http.StatusOK, map[string]any{
			"message":  "Credentials Valid",
			"otp":      s.issueOTP(),
			"is_admin": true,
			"user":     models.User{Name: "Admin", Email: AdminEmail},
		})
		return
	}

	a := s.find(body.Email)
	if a == nil || a.pin != body.Pin {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	switch a.user.Status {
	case models.StatusBlocked:
		writeError(w, http.StatusForbidden, "Your account has been BLOCKED. Contact Admin.")
		return
	case models.StatusSuspended:
		writeError(w, http.StatusForbidden, "Your account is SUSPENDED. Contact Admin.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Credentials Valid",
		"otp":      s.issueOTP(),
		"is_admin": false,
		"user":     a.user,
	})
}

type registerBody struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
	Pin   string `json:"pin"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil ||
		body.Name == "" || body.Age == 0 || body.Email == "" || body.Pin == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if body.Age < 18 {
		writeError(w, http.StatusBadRequest, "Age must be 18 or above")
		return
	}
	if _, err := strconv.Atoi(body.Pin); err != nil || len(body.Pin) != 4 {
		writeError(w, http.StatusBadRequest, "PIN must be 4 digits")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(body.Email) != nil {
		writeError(w, http.StatusBadRequest, "User with this email already exists")
		return
	}
	u := models.User{
		Name:          body.Name,
		Email:         body.Email,
		Age:           body.Age,
		AccountNumber: fmt.Sprintf("ACC%03d", len(s.accounts)+1),
		Balance:       decimal.Zero,
		Status:        models.StatusActive,
	}
	s.accounts = append(s.accounts, &account{user: u, pin: body.Pin})
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Account created successfully", "user": u})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(email)
	if a == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": a.user})
}

type moneyBody struct {
	Email  string           `json:"email"`
	Amount *decimal.Decimal `json:"amount"`
	Pin    string           `json:"pin"`
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var body moneyBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Amount == nil {
		writeError(w, http.StatusBadRequest, "Email and amount are required")
		return
	}
	if !body.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(body.Email)
	if a == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	a.user.Balance = a.user.Balance.Add(*body.Amount)
	s.appendTx(a, models.TxDeposit, *body.Amount)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Deposit successful", "balance": a.user.Balance})
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var body moneyBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil ||
		body.Email == "" || body.Amount == nil || body.Pin == "" {
		writeError(w, http.StatusBadRequest, "Email, amount and PIN are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(body.Email)
	if a == nil || a.pin != body.Pin {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if a.user.Status.Normalize() != models.StatusActive {
		writeError(w, http.StatusForbidden, "Transaction denied. Account is not Active.")
		return
	}
	if !body.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}
	if a.user.Balance.LessThan(*body.Amount) {
		writeError(w, http.StatusBadRequest, "Insufficient balance")
		return
	}
	a.user.Balance = a.user.Balance.Sub(*body.Amount)
	s.appendTx(a, models.TxWithdraw, *body.Amount)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Withdrawal successful", "balance": a.user.Balance})
}

func (s *Server) appendTx(a *account, typ models.TxType, amount decimal.Decimal) {
	a.user.Transactions = append(a.user.Transactions, models.Transaction{
		Time:         s.Now().Format(timeLayout),
		Type:         typ,
		Amount:       amount,
		BalanceAfter: a.user.Balance,
	})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.RosterEntry, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, models.RosterEntry{
			Name:          a.user.Name,
			Email:         a.user.Email,
			AccountNumber: a.user.AccountNumber,
			Status:        a.user.Status,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats models.Stats
	stats.Financials.Deposits = decimal.Zero
	stats.Financials.Withdrawals = decimal.Zero
	for _, a := range s.accounts {
		switch a.user.Status.Normalize() {
		case models.StatusActive:
			stats.UserStatus.Active++
		case models.StatusSuspended:
			stats.UserStatus.Suspended++
		case models.StatusBlocked:
			stats.UserStatus.Blocked++
		}
		for _, tx := range a.user.Transactions {
			switch tx.Type {
			case models.TxDeposit:
				stats.Financials.Deposits = stats.Financials.Deposits.Add(tx.Amount)
			case models.TxWithdraw:
				stats.Financials.Withdrawals = stats.Financials.Withdrawals.Add(tx.Amount)
			}
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

type statusBody struct {
	Email  string        `json:"email"`
	Status models.Status `json:"status"`
}

func (s *Server) handleUserStatus(w http.ResponseWriter, r *http.Request) {
	var body statusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Status == "" {
		writeError(w, http.StatusBadRequest, "Email and Status required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(body.Email)
	if a == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	a.user.Status = body.Status
	writeJSON(w, http.StatusOK, map[string]any{"message": fmt.Sprintf("User status updated to %s", body.Status)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
