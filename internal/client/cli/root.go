package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/datacleaner-ai/datacleaner/internal/client/api"
	"github.com/datacleaner-ai/datacleaner/internal/client/services"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	SelectFile(ctx context.Context) error
	SetMode(ctx context.Context, arg string) error
	Upload(ctx context.Context) error
	History(ctx context.Context) error
	Users(ctx context.Context) error
	SetRole(ctx context.Context, args []string) error
}

func (a *App) getStatus() string {
	sess := a.store.Current()
	if sess == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", sess.Profile.Email, sess.Profile.Role)
}

// Root restores persisted state and runs the REPL. A persisted token is
// validated before being trusted; an invalid one is purged and the app
// starts unauthenticated.
func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to DataCleaner CLI (type 'help' for commands)")

	if sess, err := a.store.Load(ctx); err != nil {
		log.Printf("Could not restore session: %s", userMessage(err))
	} else if sess != nil {
		log.Printf("Welcome back, %s!", sess.Profile.Name)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("dc %s> ", a.getStatus())
		if !scanner.Scan() {
			return
		}
		if done := dispatch(ctx, a, scanner.Text()); done {
			return
		}
	}
}

// dispatch parses one REPL line and runs the matching command. It returns
// true when the user asked to exit. Command errors are reported by the
// handlers themselves; a forced logout is the only error the loop inspects.
func dispatch(ctx context.Context, a execIface, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := parts[0]
	args := parts[1:]

	var err error

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn("Available commands: whoami, select, mode <blur|pixelate|none>, upload, history, users, setrole <id> <role>, logout, exit")
		} else {
			printlnFn("Available commands: register, login, exit")
		}

	case "register":
		err = a.Register(ctx)
	case "login":
		err = a.Login(ctx)
	case "logout":
		err = a.Logout(ctx)
	case "whoami":
		err = a.Whoami(ctx)
	case "select":
		err = a.SelectFile(ctx)
	case "mode":
		if len(args) != 1 {
			printlnFn("Usage: mode <blur|pixelate|none>")
			return false
		}
		err = a.SetMode(ctx, args[0])
	case "upload":
		err = a.Upload(ctx)
	case "history", "l", "list":
		err = a.History(ctx)
	case "users":
		err = a.Users(ctx)
	case "setrole":
		err = a.SetRole(ctx, args)
	case "exit", "quit":
		printlnFn("Bye!")
		return true
	default:
		printlnFn("Unknown command:", cmd)
	}

	if errors.Is(err, api.ErrUnauthorized) {
		printlnFn("You have been logged out.")
	}
	return false
}

// Whoami prints the live profile and the derived upload quota.
func (a *App) Whoami(ctx context.Context) error {
	sess := a.store.Current()
	if sess == nil {
		log.Println("Not logged in")
		return nil
	}

	p := sess.Profile
	log.Printf("%s <%s> role=%s", p.Name, p.Email, p.Role)
	if remaining, limited := a.submission.Remaining(); limited {
		log.Printf("Uploads remaining: %d/%d", remaining, services.FreeUserLimit)
	} else {
		log.Println("Uploads: unlimited")
	}
	return nil
}
