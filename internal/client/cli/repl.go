package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Cancel(ctx context.Context) error
	Dashboard(ctx context.Context) error
	History(ctx context.Context) error
	Profile(ctx context.Context) error
	Deposit(ctx context.Context) error
	Withdraw(ctx context.Context) error
	Statement(ctx context.Context) error
	Users(ctx context.Context) error
	SetStatus(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: register, login, cancel, exit"
	helpCustomer  = "Available commands: (d)ashboard, history, profile, deposit, withdraw, statement, logout, exit"
	helpAdmin     = "Available commands: (d)ashboard, users, status, logout, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit". The prompt
// shows statusFn. Handlers report their own errors, so a failing command
// never ends the loop.
//
//	Not logged in:
//	  - register       create an account
//	  - login          enter email and PIN, then the OTP
//	  - cancel         drop a login that is waiting for its OTP
//
//	Customer:
//	  - dashboard | d  balance, totals and the last five transactions
//	  - history        every transaction, newest first
//	  - profile        account details
//	  - deposit        add money
//	  - withdraw       take money out (asks for the PIN)
//	  - statement      save a plain-text statement
//
//	Administrator:
//	  - dashboard | d  placeholder balance
//	  - users          all accounts with their status
//	  - status         change an account's status
//
//	Always: help, logout, exit | quit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("bank %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				printlnFn(helpAdmin)
			case a.isLoggedIn():
				printlnFn(helpCustomer)
			default:
				printlnFn(helpAnonymous)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "cancel":
			_ = a.Cancel(ctx)

		case "d", "dashboard":
			_ = a.Dashboard(ctx)

		case "history":
			_ = a.History(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "deposit":
			_ = a.Deposit(ctx)

		case "withdraw":
			_ = a.Withdraw(ctx)

		case "statement":
			_ = a.Statement(ctx)

		case "users":
			_ = a.Users(ctx)

		case "status":
			_ = a.SetStatus(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
