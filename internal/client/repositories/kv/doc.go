// Package kv provides the key/value persistence the local state store is
// built on: one string key per table, the table's JSON document as value.
//
// Implementations
//
//   - SQLiteRepository: the default, a single `kv` table over dbx.DBTX
//   - MemoryRepository: process-local map, used by tests and -s memory
//   - RedisRepository: keys under a prefix in a Redis database
//
// Get on a missing key returns (nil, nil); the caller decides what absent
// means. Errors are only returned for backend failures.
package kv
