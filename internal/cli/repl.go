package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/fleetcheck/internal/common"
	"github.com/dmitrijs2005/fleetcheck/internal/models"
)

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	New(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Note(ctx context.Context, args []string) error
	General(ctx context.Context, args []string) error
	Sign(ctx context.Context, args []string) error
	AutoFill(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Users(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
}

const (
	helpSignedOut = "Available commands: register, login, exit"
	helpSignedIn  = "Available commands: whoami, new, (l)ist, show <id>, status <id> <section> <item> <ok|regular|bad|->, " +
		"note <id> <section> [item], general <id>, sign <id>, autofill <id>, delete <id>, export <id> <txt|html>, " +
		"users, stats, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the FleetCheck CLI.
//
// It reads a line from in, parses the first token as the command and passes
// the rest as arguments to the matching method on a. Errors returned by
// handlers are printed and the loop continues. The loop exits on EOF, on
// "exit" or "quit", or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "fleetcheck %s> ", statusFn())
		line, err := readLine(in)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var handler func(context.Context, []string) error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpSignedIn)
			} else {
				fmt.Fprintln(w, helpSignedOut)
			}
			continue
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "register":
			handler = a.Register
		case "login":
			handler = a.Login
		case "logout":
			handler = a.Logout
		case "whoami":
			handler = a.WhoAmI
		case "new":
			handler = a.New
		case "l", "list":
			handler = a.List
		case "show":
			handler = a.Show
		case "status":
			handler = a.Status
		case "note":
			handler = a.Note
		case "general":
			handler = a.General
		case "sign":
			handler = a.Sign
		case "autofill":
			handler = a.AutoFill
		case "delete":
			handler = a.Delete
		case "export":
			handler = a.Export
		case "users":
			handler = a.Users
		case "stats":
			handler = a.Stats
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
			continue
		}

		if err := handler(ctx, args); err != nil {
			fmt.Fprintln(w, "Error:", describe(err))
		}
	}
}

// describe turns service errors into short user-facing messages.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		return "please login first"
	case errors.Is(err, common.ErrorNotFound):
		return "checklist not found"
	case errors.Is(err, common.ErrAccountNotFound):
		return "no account with this email"
	case errors.Is(err, common.ErrDuplicateAccount):
		return "an account with this email already exists"
	case errors.Is(err, models.ErrStructureMismatch):
		return "checklist does not match the catalog"
	}
	return err.Error()
}
