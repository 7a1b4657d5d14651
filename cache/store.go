// Package cache provides the short-lived in-process result cache used to
// memoize the calendar connection handle and each week's computed openings.
package cache

import "time"

// Store is a key-value cache with per-key expiry. Get reports a miss once a
// key has expired or was never set.
//
// Consistency is deliberately relaxed: concurrent requests missing the same
// key may both populate it, and the last writer wins. Racing computations
// are pure functions of the same inputs, so duplication only costs wasted
// external calls. Callers that need stricter behavior (e.g. single-flight
// per key) can substitute their own implementation.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
}
