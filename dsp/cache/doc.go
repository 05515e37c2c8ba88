// Package cache provides the content-addressable store that lets a voice
// reuse rendered buffers whenever their parameters repeat.
//
// Entries are keyed by canonical strings from package cachekey and are never
// evicted; the owner drops everything with [Cache.Reset]. Concurrent misses on
// one key converge on a single render through golang.org/x/sync/singleflight,
// and later callers receive the first render's buffer.
package cache
