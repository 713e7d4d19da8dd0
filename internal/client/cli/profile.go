package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophaccounts/internal/rpc"
)

func printAccount(acc *rpc.Account) {
	printlnFn(fmt.Sprintf("email: %s\nfirst name: %s\nlast name: %s", acc.Email, acc.FirstName, acc.LastName))
}

func (a *App) Profile(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	acc, err := a.api.Profile(ctx)
	if err != nil {
		return report(err)
	}
	printAccount(acc)
	return nil
}

// EditProfile prompts for each field; empty answers leave the field unchanged.
func (a *App) EditProfile(ctx context.Context) error {
	req := &rpc.UpdateProfileRequest{Partial: true}

	fields := []struct {
		prompt string
		dst    **string
	}{
		{"New email (empty to keep)", &req.Email},
		{"New first name (empty to keep)", &req.FirstName},
		{"New last name (empty to keep)", &req.LastName},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = &v
		}
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	acc, err := a.api.UpdateProfile(ctx, req)
	if err != nil {
		return report(err)
	}
	if req.Email != nil {
		a.userName = acc.Email
	}
	printAccount(acc)
	return nil
}

// Users lists every account; identities are shown only when logged in.
func (a *App) Users(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	resp, err := a.api.ListUsers(ctx)
	if err != nil {
		return report(err)
	}

	for _, u := range resp.Users {
		if resp.Full && u.Email != nil && u.LastName != nil {
			printlnFn(fmt.Sprintf("%s\t%s %s", *u.Email, u.FirstName, *u.LastName))
			continue
		}
		printlnFn(u.FirstName)
	}
	printlnFn(fmt.Sprintf("%d user(s)", len(resp.Users)))
	return nil
}
