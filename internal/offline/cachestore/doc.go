// Package cachestore implements offline.Storage.
//
// SQLiteStorage keeps caches in the caches and cache_entries tables and
// survives restarts of the shell. MemoryStorage is process-local.
package cachestore
