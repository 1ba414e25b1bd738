package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
	"github.com/dmitrijs2005/bankclient/internal/client/config"
	"github.com/dmitrijs2005/bankclient/internal/client/services"
	"github.com/dmitrijs2005/bankclient/internal/client/session"
	"github.com/dmitrijs2005/bankclient/internal/client/statement"
	"github.com/dmitrijs2005/bankclient/internal/logging"
	"golang.org/x/term"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config         *config.Config
	authService    services.AuthService
	accountService services.AccountService
	adminService   services.AdminService
	sink           statement.Sink
	logger         logging.Logger
	db             *sql.DB

	reader *bufio.Reader
	out    io.Writer
	color  bool

	// drafts keeps a typed amount per operation until it succeeds.
	drafts map[string]string

	mu   sync.Mutex
	mode Mode
}

// NewApp wires the local database, the backend client and the services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sess := session.New(c.AdminEmail)

	return &App{
		config:         c,
		authService:    services.NewAuthService(apiClient, db, sess, logger),
		accountService: services.NewAccountService(apiClient, sess, logger),
		adminService:   services.NewAdminService(apiClient, sess, logger),
		sink:           statement.NewSink(c),
		logger:         logger,
		db:             db,
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
		color:          term.IsTerminal(int(os.Stdout.Fd())),
		drafts:         map[string]string{},
	}, nil
}

// Run blocks in the REPL until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	a.println("Welcome to the bank CLI (type 'help' for commands)")

	watchCtx, stop := context.WithCancel(ctx)
	defer stop()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.logger.Warn(ctx, "client close failed", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(ctx, "database close failed", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.authService.Current()
	return ok
}

func (a *App) isAdmin() bool {
	id, ok := a.authService.Current()
	return ok && id.IsAdmin()
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, fmt.Sprintf("Switched to %s mode", mode))
	}
}

// getStatus is shown in the prompt: who is logged in (or that an OTP is
// awaited) and whether the backend answers.
func (a *App) getStatus() string {
	s := ""
	if id, ok := a.authService.Current(); ok {
		s = id.User.Email + " "
	} else if a.authService.Phase() == session.AwaitingOtp {
		s = "otp pending "
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// checkOnline probes the backend once and records the result.
func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.authService.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// fail prints err in user terms and returns it unchanged.
func (a *App) fail(err error) error {
	a.println(a.paint("red", UserMessage(err)))
	return err
}
