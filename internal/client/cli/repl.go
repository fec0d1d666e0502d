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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Dashboard(ctx context.Context) error
	AddCredential(ctx context.Context) error
	EditCredential(ctx context.Context, id string) error
	ToggleCredential(ctx context.Context, id string) error
	DeleteCredential(ctx context.Context, id string) error
	Applications(ctx context.Context) error
	Application(ctx context.Context, number, timestamp string) error
	Admin(ctx context.Context) error
	CheckAll(ctx context.Context) error
	TestEmail(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the irccwatch CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF, when the user types
// "exit" or "quit", or when ctx is cancelled.
//
// Any errors returned by command handlers are ignored here; handlers render
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("irccwatch %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dashboard, add, edit <id>, toggle <id>, delete <id>, apps, app <number> [timestamp], passwd, admin, checkall, testemail, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "d", "dashboard":
			_ = a.Dashboard(ctx)

		case "add":
			_ = a.AddCredential(ctx)

		case "edit", "toggle", "delete":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "edit":
				_ = a.EditCredential(ctx, args[0])
			case "toggle":
				_ = a.ToggleCredential(ctx, args[0])
			default:
				_ = a.DeleteCredential(ctx, args[0])
			}

		case "apps":
			_ = a.Applications(ctx)

		case "app":
			if len(args) == 0 {
				printlnFn("Usage: app <number> [timestamp]")
				continue
			}
			ts := ""
			if len(args) > 1 {
				ts = args[1]
			}
			_ = a.Application(ctx, args[0], ts)

		case "admin":
			_ = a.Admin(ctx)

		case "checkall":
			_ = a.CheckAll(ctx)

		case "testemail":
			_ = a.TestEmail(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
