package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/agrilink/internal/client/services"
	"github.com/dmitrijs2005/agrilink/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account fields and creates the account. It does
// not log the user in; on success the login view is next.
func (a *App) Register(ctx context.Context) error {
	var r services.Registration

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Full name", &r.Name},
		{"Email", &r.Email},
		{"Phone", &r.Phone},
		{"Role (farmer or buyer)", &r.Role},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	r.Password = password

	if err := a.auth.Register(ctx, r); err != nil {
		return a.fail(ctx, err)
	}

	a.toast(msgRegistered)
	a.navigate(common.EntryLogin)
	return nil
}

// Login prompts for credentials and opens the dashboard on success.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	session, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return a.fail(ctx, err)
	}

	a.session = session
	a.toast("Welcome " + session.FirstName())
	a.navigate(common.EntryDashboard)
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	session, err := a.auth.CurrentSession(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.session = session

	if session == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s • %s\n", session.Name, strings.ToUpper(session.Role))
	return nil
}

// Logout clears the stored session and returns to the home view.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return a.fail(ctx, err)
	}
	a.session = nil
	a.toast(msgLoggedOut)
	a.navigate(common.EntryHome)
	return nil
}

// dashboard gates the product commands. It reports false when the user was
// sent to the login view instead.
func (a *App) dashboard(ctx context.Context) (bool, error) {
	session, err := a.auth.RequireSession(ctx, common.EntryDashboard)
	if err != nil {
		a.session = nil
		return false, a.fail(ctx, err)
	}
	a.session = session
	a.navigate(common.EntryDashboard)
	return true, nil
}
