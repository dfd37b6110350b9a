// Package shell runs the AgriLink shell server: it installs the offline
// cache at start-up and serves every request through it until SIGINT or
// SIGTERM.
package shell

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/agrilink/internal/dbx"
	"github.com/dmitrijs2005/agrilink/internal/filex"
	"github.com/dmitrijs2005/agrilink/internal/logging"
	"github.com/dmitrijs2005/agrilink/internal/offline"
	"github.com/dmitrijs2005/agrilink/internal/offline/cachestore"
	"github.com/dmitrijs2005/agrilink/internal/offline/origin"
	"github.com/dmitrijs2005/agrilink/internal/shell/config"
	"github.com/dmitrijs2005/agrilink/internal/shell/httpserver"
	"github.com/dmitrijs2005/agrilink/internal/shell/migrations"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	registration *offline.Registration
	listener     net.Listener
	server       *http.Server
}

// NewApp opens the cache database, builds the origin and binds the listen
// address. The cache itself is installed by Run.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	network, err := newNetwork(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("origin init error: %w", err)
	}

	if err := filex.EnsureParentDir(c.CacheDBPath); err != nil {
		return nil, fmt.Errorf("cache db dir: %w", err)
	}

	db, err := dbx.OpenSQLite(ctx, c.CacheDBPath, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	ln, err := net.Listen("tcp", c.ListenAddr)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("listen %s: %w", c.ListenAddr, err)
	}

	reg := offline.NewRegistration(cachestore.NewSQLiteStorage(db), network, offline.Manifest(c.Assets), logger)

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		registration: reg,
		listener:     ln,
		server:       &http.Server{Handler: httpserver.NewRouter(reg, logger)},
	}, nil
}

// newNetwork picks the S3 bucket when one is configured, the HTTP origin
// otherwise.
func newNetwork(ctx context.Context, c *config.Config) (http.RoundTripper, error) {
	if !c.UseS3() {
		return origin.NewHTTPOrigin(c.OriginURL, nil)
	}

	client, err := origin.NewS3Client(ctx, origin.S3Config{
		Bucket:       c.S3Bucket,
		Prefix:       c.S3Prefix,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
	})
	if err != nil {
		return nil, err
	}
	return origin.NewS3Origin(client, c.S3Bucket, c.S3Prefix), nil
}

// Addr is the bound listen address.
func (app *App) Addr() net.Addr {
	return app.listener.Addr()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run puts the cache stored by a previous run back in control, installs
// the configured cache version and serves until ctx is cancelled or a
// signal arrives. A failed install is logged and the server keeps answering
// from the stored cache, or from the network when there is none.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	version := offline.CacheVersion(app.config.CacheVersion)
	app.logger.Info(ctx, "Starting shell...", "addr", app.Addr().String(), "version", version)

	if restored, ok, err := app.registration.Restore(ctx, version); err != nil {
		app.logger.Error(ctx, "cache restore failed", "error", err)
	} else if ok {
		app.logger.Info(ctx, "serving stored cache", "version", restored)
	}

	if err := app.registration.Update(ctx, version); err != nil {
		app.logger.Error(ctx, "cache update failed", "version", version, "error", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.server.Serve(app.listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the listener and the cache database.
func (app *App) Close() error {
	_ = app.listener.Close()
	return app.db.Close()
}
