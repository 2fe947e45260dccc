package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Whoami(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Cached(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	ResetPassword(ctx context.Context, args []string) error
	UploadImage(ctx context.Context, args []string) error
	Goto(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the support-portal CLI.
//
// It reads a line from reader, parses the first token as the command and
// passes the remaining tokens to the handler on 'a'. Unknown commands are
// reported back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help                      — show available commands
//	  - login [username]          — authenticate
//	  - register                  — create an account
//	  - goto <route>              — open /login or /register
//	  - exit | quit               — leave the program
//
//	Logged in:
//	  - help                      — show available commands
//	  - (l)ist                    — fetch all users
//	  - cached                    — show the last fetched list
//	  - add                       — create a user
//	  - update [username]         — edit a user
//	  - delete <username>         — delete a user
//	  - reset <email>             — reset a password
//	  - image <username> <file>   — upload a profile image
//	  - whoami                    — show the session
//	  - logout                    — log out
//	  - exit | quit               — leave the program
//
// Errors returned by command handlers are already reported through
// notifications, so the loop ignores them and keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("portal %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: (l)ist, cached, add, update, delete, reset, image, whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, register, goto, exit")
			}

		case "login":
			_ = a.Login(ctx, args)

		case "register":
			_ = a.Register(ctx, args)

		case "logout":
			_ = a.Logout(ctx, args)

		case "whoami":
			_ = a.Whoami(ctx, args)

		case "l", "list":
			_ = a.List(ctx, args)

		case "cached":
			_ = a.Cached(ctx, args)

		case "add":
			_ = a.Add(ctx, args)

		case "update":
			_ = a.Update(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "reset":
			_ = a.ResetPassword(ctx, args)

		case "image":
			_ = a.UploadImage(ctx, args)

		case "goto":
			_ = a.Goto(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
