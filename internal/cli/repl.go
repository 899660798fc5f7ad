package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Balance(ctx context.Context) error
	Deposit(ctx context.Context) error
	Withdraw(ctx context.Context) error
	Transfer(ctx context.Context) error
	History(ctx context.Context) error
	Statement(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	CloseAccount(ctx context.Context) error
	Backup(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the banking console.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - signup         — open an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - balance        — show current balance
//	  - deposit        — deposit money
//	  - withdraw       — withdraw money
//	  - transfer       — transfer money to another account
//	  - history        — show recent transactions
//	  - statement      — full account statement, optionally saved to a file
//	  - passwd         — change password
//	  - backup         — back up the ledger file
//	  - close          — close the account permanently
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, w io.Writer) {
	for {
		fmt.Fprintf(w, "bank> %s > \n", statusFn())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		if !a.isLoggedIn() {
			switch cmd {
			case "help":
				fmt.Fprintln(w, "Available commands: signup, login, exit")
			case "signup":
				_ = a.Signup(ctx)
			case "login":
				_ = a.Login(ctx)
			case "exit", "quit":
				fmt.Fprintln(w, "Thank you for banking with Secure Bank. Goodbye!")
				return
			default:
				fmt.Fprintln(w, "Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "help":
			fmt.Fprintln(w, "Available commands: balance, deposit, withdraw, transfer, history, statement, passwd, backup, close, logout, exit")

		case "balance":
			_ = a.Balance(ctx)

		case "deposit":
			_ = a.Deposit(ctx)

		case "withdraw":
			_ = a.Withdraw(ctx)

		case "transfer":
			_ = a.Transfer(ctx)

		case "history":
			_ = a.History(ctx)

		case "statement":
			_ = a.Statement(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "backup":
			_ = a.Backup(ctx)

		case "close":
			_ = a.CloseAccount(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Thank you for banking with Secure Bank. Goodbye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
