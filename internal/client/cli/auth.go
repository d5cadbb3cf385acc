package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dailyjournal/internal/common"
)

// getSimpleText, getMultiline and getPassword point to the interactive input
// helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getPassword   = GetPassword
)

// Login asks for credentials (the user name may be given as an argument) and
// keeps the issued token in the client. The password buffer is wiped.
func (a *App) Login(ctx context.Context, args []string) error {
	var (
		userName string
		err      error
	)
	if len(args) > 0 {
		userName = args[0]
	} else {
		userName, err = getSimpleText(a.reader, "Enter username", a.out)
		if err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Login(ctx, userName, password); err != nil {
		return err
	}

	a.userName = userName
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(_ context.Context, _ []string) error {
	a.client.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context, _ []string) error {
	u, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	status := "active"
	if !u.IsActive {
		status = "inactive"
	}
	fmt.Fprintf(a.out, "%s (%s), since %s\n", u.UserName, status, u.CreatedAt)
	return nil
}
