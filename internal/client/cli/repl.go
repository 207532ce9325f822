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
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Write(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	List(ctx context.Context) error
	Drafts(ctx context.Context) error
	Scheduled(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Pending(ctx context.Context) error
	Users(ctx context.Context) error
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
}

// runREPL starts the read-eval-print loop for the Everkeep CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ek> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}

		switch cmd {
		case "help":
			switch {
			case !a.isLoggedIn():
				printlnFn("Available commands: register, login, exit")
			case a.isAdmin():
				printlnFn("Available commands: (l)ist, drafts, scheduled, write, edit, show, delete, whoami, pending, users, approve, reject, logout, exit")
			default:
				printlnFn("Available commands: (l)ist, drafts, scheduled, write, edit, show, delete, whoami, logout, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "write":
			_ = a.Write(ctx)

		case "edit":
			if arg == "" {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, arg)

		case "l", "list":
			_ = a.List(ctx)

		case "drafts":
			_ = a.Drafts(ctx)

		case "scheduled":
			_ = a.Scheduled(ctx)

		case "show":
			if arg == "" {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, arg)

		case "delete":
			if arg == "" {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, arg)

		case "pending":
			_ = a.Pending(ctx)

		case "users":
			_ = a.Users(ctx)

		case "approve":
			if arg == "" {
				printlnFn("Usage: approve <id>")
				continue
			}
			_ = a.Approve(ctx, arg)

		case "reject":
			if arg == "" {
				printlnFn("Usage: reject <id>")
				continue
			}
			_ = a.Reject(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
