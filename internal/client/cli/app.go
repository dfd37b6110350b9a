package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/agrilink/internal/client/config"
	"github.com/dmitrijs2005/agrilink/internal/client/models"
	"github.com/dmitrijs2005/agrilink/internal/client/services"
	"github.com/dmitrijs2005/agrilink/internal/client/state"
	"github.com/dmitrijs2005/agrilink/internal/client/storage"
	"github.com/dmitrijs2005/agrilink/internal/common"
	"github.com/dmitrijs2005/agrilink/internal/logging"
)

type App struct {
	config   *config.Config
	auth     services.AuthService
	products services.ProductService
	locale   services.LocaleService
	logger   logging.Logger

	session *models.Session
	view    string
	lang    string

	reader  *bufio.Reader
	out     io.Writer
	closeFn func() error
}

// NewApp opens the configured storage backend and builds the services on
// top of it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repo, closeFn, err := storage.Open(ctx, c)
	if err != nil {
		logger.Error(ctx, "error opening storage", "backend", c.Backend, "error", err)
		return nil, err
	}

	store := state.NewStore(repo, logger)

	a := newApp(c, store, logger, os.Stdin, os.Stdout)
	a.closeFn = closeFn
	return a, nil
}

func newApp(c *config.Config, store *state.Store, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config:   c,
		auth:     services.NewAuthService(store, services.WithAuthLogger(logger)),
		products: services.NewProductService(store, logger),
		locale:   services.NewLocaleService(store),
		logger:   logger,
		view:     common.EntryHome,
		lang:     state.DefaultLang,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run restores the stored session and locale, then serves the REPL until
// the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	if err := a.restore(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Welcome to AgriLink (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) restore(ctx context.Context) error {
	session, err := a.auth.CurrentSession(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	a.session = session
	if session != nil {
		a.view = common.EntryDashboard
	}

	lang, err := a.locale.Get(ctx)
	if err != nil {
		return fmt.Errorf("restore locale: %w", err)
	}
	a.lang = lang

	if lang == state.DefaultLang && a.config != nil && a.config.Lang != "" && a.config.Lang != lang {
		lang, err := a.locale.Set(ctx, a.config.Lang)
		if err != nil {
			a.logger.Warn(ctx, "default language ignored", "lang", a.config.Lang, "error", err)
			return nil
		}
		a.lang = lang
	}
	return nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

// navigate records the view the user was sent to; it is shown in the prompt.
func (a *App) navigate(location string) {
	a.view = location
}

func (a *App) getStatus() string {
	s := a.lang + " " + a.view
	if a.session != nil {
		s = a.session.Email + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}
