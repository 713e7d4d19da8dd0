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
	Verify(ctx context.Context, key string) error
	Resend(ctx context.Context) error
	Login(ctx context.Context) error
	Passwd(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Users(ctx context.Context) error
	Ping(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the accountctl CLI.
//
// It reads a line from the scanner, parses the first token as the command
// and dispatches to methods on a. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
//	Not logged in:
//	  register, verify [key], resend, login, users, ping, help, exit
//
//	Logged in:
//	  profile, edit, passwd, users, ping, logout, help, exit
//
// Command handlers report their own errors, so the returned errors are
// dropped here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("acc %s> ", statusFn()))
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

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, edit, passwd, users, ping, logout, exit")
			} else {
				printlnFn("Available commands: register, verify [key], resend, login, users, ping, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "verify":
			key := ""
			if len(args) > 0 {
				key = args[0]
			}
			_ = a.Verify(ctx, key)

		case "resend":
			_ = a.Resend(ctx)

		case "login":
			_ = a.Login(ctx)

		case "passwd":
			_ = a.Passwd(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "users":
			_ = a.Users(ctx)

		case "ping":
			_ = a.Ping(ctx)

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
