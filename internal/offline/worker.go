package offline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/agrilink/internal/common"
	"github.com/dmitrijs2005/agrilink/internal/logging"
	"golang.org/x/sync/errgroup"
)

// CacheHeader tells clients whether a response came from the cache.
const CacheHeader = "X-Cache"

// maxParallelFetches bounds concurrent asset downloads during install.
const maxParallelFetches = 4

type WorkerState int

const (
	StateUninstalled WorkerState = iota
	StateInstalling
	StateInstalled
	StateActivating
	StateActive
	StateRedundant
)

func (s WorkerState) String() string {
	switch s {
	case StateUninstalled:
		return "uninstalled"
	case StateInstalling:
		return "installing"
	case StateInstalled:
		return "installed"
	case StateActivating:
		return "activating"
	case StateActive:
		return "active"
	case StateRedundant:
		return "redundant"
	default:
		return fmt.Sprintf("WorkerState(%d)", int(s))
	}
}

// Worker serves requests for one cache version.
type Worker struct {
	version  CacheVersion
	manifest Manifest
	storage  Storage
	network  http.RoundTripper
	logger   logging.Logger

	mu    sync.RWMutex
	state WorkerState
}

func NewWorker(version CacheVersion, manifest Manifest, storage Storage, network http.RoundTripper, logger logging.Logger) *Worker {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Worker{
		version:  version,
		manifest: manifest,
		storage:  storage,
		network:  network,
		logger:   logger.With("cache", string(version)),
	}
}

func (w *Worker) Version() CacheVersion { return w.version }

func (w *Worker) State() WorkerState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

func (w *Worker) transition(from, to WorkerState) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != from {
		return fmt.Errorf("%w: %s worker cannot become %s", common.ErrInvalidTransition, w.state, to)
	}
	w.state = to
	return nil
}

func (w *Worker) setState(s WorkerState) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

// Install fetches every manifest asset and stores them in the worker's
// cache in one step. Any failed asset fails the whole install, leaves the
// cache untouched and makes the worker redundant.
func (w *Worker) Install(ctx context.Context) error {
	if err := w.transition(StateUninstalled, StateInstalling); err != nil {
		return err
	}

	entries, err := w.fetchAll(ctx)
	if err != nil {
		w.setState(StateRedundant)
		w.logger.Warn(ctx, "cache install failed", "error", err)
		return err
	}

	if err := w.storage.PutAll(ctx, string(w.version), entries); err != nil {
		w.setState(StateRedundant)
		w.logger.Error(ctx, "cache install failed", "error", err)
		return fmt.Errorf("%w: %s: store: %w", common.ErrCacheInstall, w.version, err)
	}

	w.setState(StateInstalled)
	w.logger.Info(ctx, "cache installed", "assets", len(entries))
	return nil
}

func (w *Worker) fetchAll(ctx context.Context) ([]Entry, error) {
	seen := make(map[string]struct{}, len(w.manifest))
	var paths []string
	for _, p := range w.manifest.Paths() {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	entries := make([]Entry, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)

	for i, p := range paths {
		g.Go(func() error {
			e, err := w.fetchAsset(gctx, p)
			if err != nil {
				return &CacheInstallError{Version: w.version, Asset: p, Err: err}
			}
			entries[i] = e
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (w *Worker) fetchAsset(ctx context.Context, assetPath string) (Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetPath, nil)
	if err != nil {
		return Entry{}, err
	}

	resp, err := w.network.RoundTrip(req)
	if err != nil {
		return Entry{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Entry{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Entry{}, fmt.Errorf("read body: %w", err)
	}

	return Entry{
		Key:    KeyOf(req),
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   body,
	}, nil
}

// Activate deletes every cache that is not this worker's version. If a
// deletion fails the worker stays installed and can be activated again.
func (w *Worker) Activate(ctx context.Context) error {
	if err := w.transition(StateInstalled, StateActivating); err != nil {
		return err
	}

	if err := w.evict(ctx); err != nil {
		w.setState(StateInstalled)
		w.logger.Error(ctx, "cache eviction failed", "error", err)
		return err
	}

	w.setState(StateActive)
	w.logger.Info(ctx, "worker activated")
	return nil
}

func (w *Worker) evict(ctx context.Context) error {
	names, err := w.storage.Keys(ctx)
	if err != nil {
		return fmt.Errorf("list caches: %w", err)
	}

	for _, name := range names {
		if w.version.Classify(name) == CacheCurrent {
			continue
		}
		if _, err := w.storage.Delete(ctx, name); err != nil {
			return fmt.Errorf("delete cache %s: %w", name, err)
		}
		w.logger.Info(ctx, "stale cache deleted", "stale", name)
	}
	return nil
}

// retire makes the worker redundant once a newer one has taken over.
func (w *Worker) retire() {
	w.setState(StateRedundant)
}

// Fetch answers req from the cache or, on a miss, from the network. hit
// reports which one. Network responses are returned as they are and never
// stored.
func (w *Worker) Fetch(ctx context.Context, req *http.Request) (resp *http.Response, hit bool, err error) {
	if s := w.State(); s != StateActive {
		return nil, false, fmt.Errorf("%w: %s worker cannot fetch", common.ErrInvalidTransition, s)
	}

	if req.Method == http.MethodGet {
		entry, err := w.storage.Match(ctx, string(w.version), KeyOf(req))
		switch {
		case err == nil:
			return entry.Response(req), true, nil
		case !errors.Is(err, common.ErrNotFound):
			w.logger.Warn(ctx, "cache lookup failed", "key", KeyOf(req), "error", err)
		}
	}

	resp, err = w.network.RoundTrip(req.WithContext(ctx))
	if err != nil {
		return nil, false, err
	}
	return resp, false, nil
}

// ServeHTTP writes the result of Fetch. Network failures become
// 502 Bad Gateway.
func (w *Worker) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	resp, hit, err := w.Fetch(r.Context(), r)
	if err != nil {
		w.logger.Warn(r.Context(), "fetch failed", "path", r.URL.Path, "error", err)
		http.Error(rw, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	writeResponse(rw, resp, hit)
}

func writeResponse(rw http.ResponseWriter, resp *http.Response, hit bool) {
	defer resp.Body.Close()

	header := rw.Header()
	for k, vs := range resp.Header {
		for _, v := range vs {
			header.Add(k, v)
		}
	}
	if hit {
		header.Set(CacheHeader, "HIT")
	} else {
		header.Set(CacheHeader, "MISS")
	}

	rw.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(rw, resp.Body)
}
