package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/agrilink/internal/common"
)

// Short notices shown after an action.
const (
	msgFillAllFields  = "Please fill all fields"
	msgEmailTaken     = "Email already registered"
	msgRegistered     = "Registration successful"
	msgInvalidCreds   = "Invalid credentials"
	msgProductAdded   = "Product added"
	msgDeleted        = "Deleted"
	msgNotFound       = "Product not found"
	msgLoginRequired  = "Please log in first"
	msgLoggedOut      = "Logged out"
	msgBadPrice       = "Price must be a number"
	msgUnsupportedLng = "Unsupported language"
	msgSomethingWrong = "Something went wrong"
)

// toast prints a one-line notice.
func (a *App) toast(msg string) {
	fmt.Fprintf(a.out, "» %s\n", msg)
}

// fail turns err into a notice. Errors the user can act on are consumed;
// anything else is logged and returned.
func (a *App) fail(ctx context.Context, err error) error {
	var verr *common.ValidationError
	var redirect *common.RedirectError

	switch {
	case errors.As(err, &redirect):
		a.toast(msgLoginRequired)
		a.navigate(redirect.Location)
		return nil
	case errors.As(err, &verr):
		a.toast(validationMessage(verr))
		return nil
	case errors.Is(err, common.ErrDuplicateEmail):
		a.toast(msgEmailTaken)
		return nil
	case errors.Is(err, common.ErrInvalidCredentials):
		a.toast(msgInvalidCreds)
		return nil
	case errors.Is(err, common.ErrAuthRequired):
		a.toast(msgLoginRequired)
		a.navigate(common.EntryLogin)
		return nil
	}

	a.logger.Error(ctx, "command failed", "error", err)
	a.toast(msgSomethingWrong)
	return err
}

func validationMessage(verr *common.ValidationError) string {
	for _, msg := range verr.Fields {
		if msg != "is required" {
			return verr.Error()
		}
	}
	return msgFillAllFields
}
