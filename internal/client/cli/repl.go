package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dailyjournal/internal/client/client"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. Commands get the
// words that followed the command name.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Me(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Calendar(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, help, exit"
	helpLoggedIn  = "Available commands: (l)ist [page] [size], add, show <id>, edit <id>, delete <id>, " +
		"calendar <start> <end>, me, logout, help, exit"
)

// runREPL reads commands line by line and dispatches them to a until the
// input ends or the user types exit/quit. Entry commands are refused until
// the user logs in.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		fmt.Printf("journal %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var run func(context.Context, []string) error
		needsLogin := true

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "login":
			run, needsLogin = a.Login, false
		case "logout":
			run = a.Logout
		case "me":
			run = a.Me
		case "l", "list":
			run = a.List
		case "add":
			run = a.Add
		case "show":
			run = a.Show
		case "edit":
			run = a.Edit
		case "delete", "rm":
			run = a.Delete
		case "calendar", "cal":
			run = a.Calendar
		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		if needsLogin && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}
		if err := run(ctx, args); err != nil {
			printlnFn("Error:", describeError(err))
		}
	}
}

var errUsage = errors.New("usage")

func describeError(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, errUsage):
		return err.Error()
	case errors.Is(err, client.ErrUnauthorized):
		return "not authorized, please login again"
	case errors.Is(err, client.ErrNotFound):
		return "entry not found"
	case errors.Is(err, client.ErrRateLimited):
		return "too many login attempts, try again later"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	case errors.As(err, &apiErr) && apiErr.Detail != "":
		return apiErr.Detail
	}
	return err.Error()
}
