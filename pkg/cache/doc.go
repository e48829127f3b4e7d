// Package cache stores computed solutions between runs.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//
// All backends implement [Cache]. A miss is reported by the boolean result
// of [Cache.Get], never as an error.
//
// # Keys
//
// A [Keyer] derives keys from everything that determines a solution: the
// dataset hash, the problem and the preferred set. [ScopedKeyer] prefixes
// keys for isolation between tenants or environments.
package cache
