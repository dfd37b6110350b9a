package offline

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/agrilink/internal/logging"
)

// Registration owns the active and the waiting worker.
//
// A newly installed worker takes control at once when nothing is active;
// otherwise it waits until Activate is called. A failed install never
// disturbs the active worker.
type Registration struct {
	storage  Storage
	network  http.RoundTripper
	manifest Manifest
	logger   logging.Logger

	// serialises Register and Activate
	lifecycle sync.Mutex

	mu      sync.RWMutex
	active  *Worker
	waiting *Worker
}

func NewRegistration(storage Storage, network http.RoundTripper, manifest Manifest, logger logging.Logger) *Registration {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Registration{storage: storage, network: network, manifest: manifest, logger: logger}
}

// WorkerStatus describes one worker.
type WorkerStatus struct {
	Version CacheVersion `json:"version"`
	State   string       `json:"state"`
}

// Status is a snapshot of the registration.
type Status struct {
	Active  *WorkerStatus `json:"active"`
	Waiting *WorkerStatus `json:"waiting"`
	Caches  []string      `json:"caches"`
}

func workerStatus(w *Worker) *WorkerStatus {
	if w == nil {
		return nil
	}
	return &WorkerStatus{Version: w.Version(), State: w.State().String()}
}

// Register installs version unless the active or waiting worker already
// has it.
func (r *Registration) Register(ctx context.Context, version CacheVersion) error {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()

	r.mu.RLock()
	active, waiting := r.active, r.waiting
	r.mu.RUnlock()

	if active != nil && active.Version() == version {
		return nil
	}
	if waiting != nil && waiting.Version() == version {
		return nil
	}

	w := NewWorker(version, r.manifest, r.storage, r.network, r.logger)
	if err := w.Install(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	replaced := r.waiting
	r.waiting = w
	hasActive := r.active != nil
	r.mu.Unlock()

	if replaced != nil {
		replaced.retire()
	}

	if hasActive {
		r.logger.Info(ctx, "worker waiting", "version", string(version))
		return nil
	}
	return r.activate(ctx)
}

// Activate promotes the waiting worker. It is a no-op when none waits.
func (r *Registration) Activate(ctx context.Context) error {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()
	return r.activate(ctx)
}

func (r *Registration) activate(ctx context.Context) error {
	r.mu.RLock()
	w := r.waiting
	r.mu.RUnlock()

	if w == nil {
		return nil
	}

	if err := w.Activate(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	old := r.active
	r.active = w
	r.waiting = nil
	r.mu.Unlock()

	if old != nil {
		old.retire()
	}
	return nil
}

// Update registers version and activates it right away.
func (r *Registration) Update(ctx context.Context, version CacheVersion) error {
	if err := r.Register(ctx, version); err != nil {
		return err
	}
	return r.Activate(ctx)
}

// Restore puts a cache that is already in storage back in control, so a
// restarted host answers from disk before any install runs. The cache named
// version is preferred; otherwise the most recently created one is used.
// It reports the restored version and is a no-op when a worker is already
// active or storage holds no cache.
func (r *Registration) Restore(ctx context.Context, version CacheVersion) (CacheVersion, bool, error) {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()

	if r.Active() != nil {
		return "", false, nil
	}

	names, err := r.storage.Keys(ctx)
	if err != nil {
		return "", false, fmt.Errorf("list caches: %w", err)
	}
	if len(names) == 0 {
		return "", false, nil
	}

	restored := CacheVersion(names[len(names)-1])
	for _, name := range names {
		if version.Classify(name) == CacheCurrent {
			restored = version
			break
		}
	}

	w := NewWorker(restored, r.manifest, r.storage, r.network, r.logger)
	w.setState(StateActive)

	r.mu.Lock()
	r.active = w
	r.mu.Unlock()

	r.logger.Info(ctx, "cache restored", "version", string(restored))
	return restored, true, nil
}

// Active returns the worker in control, or nil.
func (r *Registration) Active() *Worker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Waiting returns the installed worker waiting for activation, or nil.
func (r *Registration) Waiting() *Worker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.waiting
}

func (r *Registration) Status(ctx context.Context) (Status, error) {
	r.mu.RLock()
	st := Status{Active: workerStatus(r.active), Waiting: workerStatus(r.waiting)}
	r.mu.RUnlock()

	caches, err := r.storage.Keys(ctx)
	if err != nil {
		return st, err
	}
	st.Caches = caches
	return st, nil
}

// ServeHTTP routes through the active worker. Without one every request
// goes to the network unchanged.
func (r *Registration) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	if w := r.Active(); w != nil {
		w.ServeHTTP(rw, req)
		return
	}

	resp, err := r.network.RoundTrip(req)
	if err != nil {
		r.logger.Warn(req.Context(), "fetch failed", "path", req.URL.Path, "error", err)
		http.Error(rw, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	writeResponse(rw, resp, false)
}
