package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/gophaccounts/internal/client/client"
	"github.com/dmitrijs2005/gophaccounts/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// report prints err for the user and returns it unchanged.
func report(err error) error {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("Server unavailable, try again later")
	case errors.As(err, &apiErr) && len(apiErr.Fields) > 0:
		for field, msgs := range apiErr.Fields {
			for _, m := range msgs {
				printlnFn(" ", field+":", m)
			}
		}
	default:
		printlnFn("Error:", err.Error())
	}
	return err
}

// Register prompts for the account fields and creates an inactive account.
// The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	firstName, err := getSimpleText(a.reader, "First name (optional)", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name (optional)", os.Stdout)
	if err != nil {
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	acc, err := a.api.Register(ctx, email, password, firstName, lastName)
	if err != nil {
		return report(err)
	}

	printlnFn("Registered", acc.Email+". Check your inbox for the verification key, then run: verify <key>")
	return nil
}

// Verify submits a verification key, prompting for it when key is empty.
func (a *App) Verify(ctx context.Context, key string) error {
	if key == "" {
		var err error
		if key, err = getSimpleText(a.reader, "Enter verification key", os.Stdout); err != nil {
			return err
		}
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	acc, err := a.api.VerifyEmail(ctx, key)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			printlnFn("Unknown, used or expired key")
			return err
		}
		return report(err)
	}

	printlnFn("E-mail verified for", acc.Email)
	return nil
}

func (a *App) Resend(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.api.ResendVerification(ctx, email); err != nil {
		return report(err)
	}

	printlnFn("If the account is waiting for verification, a new key has been sent")
	return nil
}

// Login prompts for credentials and authenticates. The password is wiped
// before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.api.Login(ctx, userName, password); err != nil {
		return report(err)
	}

	a.userName = userName
	printlnFn("Login successful")
	return nil
}

// Passwd changes the password of the logged-in account.
func (a *App) Passwd(ctx context.Context) error {
	oldPassword, err := getPassword(os.Stdout, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPassword)

	newPassword, err := getPassword(os.Stdout, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.api.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return report(err)
	}

	printlnFn("Password changed")
	return nil
}

// Logout forgets the access token.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.userName = ""
	printlnFn("Logged out")
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return report(err)
	}
	a.setMode(ModeOnline)
	printlnFn("OK")
	return nil
}
