package offline_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/agrilink/internal/common"
	"github.com/dmitrijs2005/agrilink/internal/offline"
	"github.com/dmitrijs2005/agrilink/internal/offline/cachestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistration_FirstInstallActivatesImmediately(t *testing.T) {
	ctx := context.Background()
	reg := offline.NewRegistration(cachestore.NewMemoryStorage(), newFakeNetwork(shellAssets("v1")), testManifest, nil)

	require.NoError(t, reg.Register(ctx, "v1"))

	require.NotNil(t, reg.Active())
	assert.Equal(t, offline.CacheVersion("v1"), reg.Active().Version())
	assert.Equal(t, offline.StateActive, reg.Active().State())
	assert.Nil(t, reg.Waiting())
}

func TestRegistration_RegisterSameVersionIsNoop(t *testing.T) {
	ctx := context.Background()
	net := newFakeNetwork(shellAssets("v1"))
	reg := offline.NewRegistration(cachestore.NewMemoryStorage(), net, testManifest, nil)

	require.NoError(t, reg.Register(ctx, "v1"))
	calls := net.callCount()
	first := reg.Active()

	require.NoError(t, reg.Register(ctx, "v1"))
	assert.Equal(t, calls, net.callCount(), "no refetch")
	assert.Same(t, first, reg.Active())
}

func TestRegistration_NewVersionWaitsThenActivates(t *testing.T) {
	ctx := context.Background()
	store := cachestore.NewMemoryStorage()
	net := newFakeNetwork(shellAssets("v1"))
	reg := offline.NewRegistration(store, net, testManifest, nil)
	require.NoError(t, reg.Register(ctx, "v1"))
	old := reg.Active()

	net.assets = shellAssets("v2")
	require.NoError(t, reg.Register(ctx, "v2"))

	require.NotNil(t, reg.Waiting())
	assert.Equal(t, offline.StateInstalled, reg.Waiting().State())
	assert.Same(t, old, reg.Active(), "old worker keeps control until activation")
	assert.Equal(t, "index v1", get(t, reg, "/index.html").Body.String())

	require.NoError(t, reg.Register(ctx, "v2"), "waiting version is not reinstalled")

	require.NoError(t, reg.Activate(ctx))
	assert.Equal(t, offline.CacheVersion("v2"), reg.Active().Version())
	assert.Nil(t, reg.Waiting())
	assert.Equal(t, offline.StateRedundant, old.State())

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, keys, "{v1, v2} becomes {v2}")

	net.setOffline(true)
	rec := get(t, reg, "/index.html")
	assert.Equal(t, "index v2", rec.Body.String())
	assert.Equal(t, "HIT", rec.Header().Get(offline.CacheHeader))
}

func TestRegistration_FailedInstallKeepsActiveWorker(t *testing.T) {
	ctx := context.Background()
	store := cachestore.NewMemoryStorage()
	net := newFakeNetwork(shellAssets("v1"))
	reg := offline.NewRegistration(store, net, testManifest, nil)
	require.NoError(t, reg.Register(ctx, "v1"))

	net.status["/style.css"] = http.StatusServiceUnavailable
	err := reg.Register(ctx, "v2")
	require.ErrorIs(t, err, common.ErrCacheInstall)

	assert.Equal(t, offline.CacheVersion("v1"), reg.Active().Version())
	assert.Equal(t, offline.StateActive, reg.Active().State())
	assert.Nil(t, reg.Waiting())

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, keys)

	net.setOffline(true)
	assert.Equal(t, "index v1", get(t, reg, "/index.html").Body.String())
}

func TestRegistration_NewerWaitingReplacesOlderWaiting(t *testing.T) {
	ctx := context.Background()
	reg := offline.NewRegistration(cachestore.NewMemoryStorage(), newFakeNetwork(shellAssets("x")), testManifest, nil)
	require.NoError(t, reg.Register(ctx, "v1"))
	require.NoError(t, reg.Register(ctx, "v2"))
	v2 := reg.Waiting()

	require.NoError(t, reg.Register(ctx, "v3"))
	assert.Equal(t, offline.StateRedundant, v2.State())
	assert.Equal(t, offline.CacheVersion("v3"), reg.Waiting().Version())
}

func TestRegistration_Update(t *testing.T) {
	ctx := context.Background()
	store := cachestore.NewMemoryStorage()
	reg := offline.NewRegistration(store, newFakeNetwork(shellAssets("x")), testManifest, nil)

	require.NoError(t, reg.Update(ctx, "v1"))
	require.NoError(t, reg.Update(ctx, "v2"))

	assert.Equal(t, offline.CacheVersion("v2"), reg.Active().Version())
	assert.Nil(t, reg.Waiting())
	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, keys)

	require.NoError(t, reg.Activate(ctx), "nothing waiting")
}

func TestRegistration_WithoutActiveWorkerUsesNetwork(t *testing.T) {
	net := newFakeNetwork(shellAssets("v1"))
	reg := offline.NewRegistration(cachestore.NewMemoryStorage(), net, testManifest, nil)

	rec := get(t, reg, "/index.html")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get(offline.CacheHeader))

	net.setOffline(true)
	assert.Equal(t, http.StatusBadGateway, get(t, reg, "/index.html").Code)
}

func TestRegistration_Status(t *testing.T) {
	ctx := context.Background()
	reg := offline.NewRegistration(cachestore.NewMemoryStorage(), newFakeNetwork(shellAssets("x")), testManifest, nil)

	st, err := reg.Status(ctx)
	require.NoError(t, err)
	assert.Nil(t, st.Active)
	assert.Nil(t, st.Waiting)
	assert.Empty(t, st.Caches)

	require.NoError(t, reg.Register(ctx, "v1"))
	require.NoError(t, reg.Register(ctx, "v2"))

	st, err = reg.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, &offline.WorkerStatus{Version: "v1", State: "active"}, st.Active)
	assert.Equal(t, &offline.WorkerStatus{Version: "v2", State: "installed"}, st.Waiting)
	assert.Equal(t, []string{"v1", "v2"}, st.Caches)

	b, err := json.Marshal(st)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"active": {"version": "v1", "state": "active"},
		"waiting": {"version": "v2", "state": "installed"},
		"caches": ["v1", "v2"]
	}`, string(b))
}

func TestRegistration_RestoreServesStoredCacheOffline(t *testing.T) {
	ctx := context.Background()
	store := cachestore.NewMemoryStorage()
	net := newFakeNetwork(shellAssets("v1"))
	require.NoError(t, offline.NewRegistration(store, net, testManifest, nil).Update(ctx, "v1"))

	net.setOffline(true)
	restarted := offline.NewRegistration(store, net, testManifest, nil)

	version, ok, err := restarted.Restore(ctx, "v1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, offline.CacheVersion("v1"), version)
	assert.Equal(t, offline.StateActive, restarted.Active().State())

	require.NoError(t, restarted.Update(ctx, "v1"), "stored version is not reinstalled")

	rec := get(t, restarted, "/index.html")
	assert.Equal(t, "index v1", rec.Body.String())
	assert.Equal(t, "HIT", rec.Header().Get(offline.CacheHeader))
}

func TestRegistration_RestoreKeepsOlderCacheWhenNewInstallFails(t *testing.T) {
	ctx := context.Background()
	store := cachestore.NewMemoryStorage()
	net := newFakeNetwork(shellAssets("v1"))
	require.NoError(t, offline.NewRegistration(store, net, testManifest, nil).Update(ctx, "v1"))

	net.setOffline(true)
	restarted := offline.NewRegistration(store, net, testManifest, nil)

	version, ok, err := restarted.Restore(ctx, "v2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, offline.CacheVersion("v1"), version)

	require.ErrorIs(t, restarted.Update(ctx, "v2"), common.ErrCacheInstall)
	assert.Equal(t, offline.CacheVersion("v1"), restarted.Active().Version())
	assert.Equal(t, "index v1", get(t, restarted, "/index.html").Body.String())

	net.setOffline(false)
	net.assets = shellAssets("v2")
	require.NoError(t, restarted.Update(ctx, "v2"))
	assert.Equal(t, "index v2", get(t, restarted, "/index.html").Body.String())

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, keys)
}

func TestRegistration_RestoreWithEmptyStorage(t *testing.T) {
	reg := offline.NewRegistration(cachestore.NewMemoryStorage(), newFakeNetwork(nil), testManifest, nil)

	_, ok, err := reg.Restore(context.Background(), "v1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, reg.Active())
}
