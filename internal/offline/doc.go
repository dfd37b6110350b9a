// Package offline keeps the application shell available without a network.
//
// A Worker owns one generation of cached assets, named by a CacheVersion.
// Installing a worker fetches every asset of its Manifest and stores them
// together; a single failed asset aborts the install and nothing is stored.
// Activating it deletes every cache of another version. An active worker
// answers GET requests for cached assets from the cache and sends everything
// else to the network without caching the response.
//
// Registration plays the host runtime: it keeps the active worker, installs
// new versions next to it and promotes them.
package offline
