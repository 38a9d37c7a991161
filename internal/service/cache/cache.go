package cache

import "time"

// BytesCache is a minimal cache API storing raw bytes with TTL. Handlers use
// it to cache rendered responses without caring whether memory or Redis backs
// the store.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
