package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/agrilink/internal/common"
)

// Lang shows the current language or switches to args[0].
func (a *App) Lang(ctx context.Context, args []string) error {
	if len(args) == 0 {
		lang, err := a.locale.Get(ctx)
		if err != nil {
			return a.fail(ctx, err)
		}
		a.lang = lang
		fmt.Fprintln(a.out, "Language:", lang)
		return nil
	}

	lang, err := a.locale.Set(ctx, args[0])
	if errors.Is(err, common.ErrValidation) {
		a.toast(msgUnsupportedLng)
		return nil
	}
	if err != nil {
		return a.fail(ctx, err)
	}

	a.lang = lang
	a.toast("Language set to " + lang)
	return nil
}
