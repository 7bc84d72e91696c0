package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs. The real
// App type satisfies it; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	AddNote(ctx context.Context) error
	ListNotes(ctx context.Context) error
	DeleteNote(ctx context.Context) error
	Wipe(ctx context.Context) error
}

// runREPL reads a command per line and dispatches to a. Unknown commands
// are reported back; the loop exits on EOF or "exit"/"quit". Handlers
// print their own errors, so returned errors are ignored here and the
// loop stays resilient.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("lockbox %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, list, delete, whoami, logout, wipe, exit")
			} else {
				printlnFn("Available commands: register, login, whoami, wipe, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "logout":
			if !a.isLoggedIn() {
				printlnFn("Not logged in.")
				continue
			}
			_ = a.Logout(ctx)

		case "add":
			if !a.isLoggedIn() {
				printlnFn("Log in first.")
				continue
			}
			_ = a.AddNote(ctx)

		case "list":
			if !a.isLoggedIn() {
				printlnFn("Log in first.")
				continue
			}
			_ = a.ListNotes(ctx)

		case "delete":
			if !a.isLoggedIn() {
				printlnFn("Log in first.")
				continue
			}
			_ = a.DeleteNote(ctx)

		case "wipe":
			_ = a.Wipe(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
