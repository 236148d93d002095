package common

import (
	"strconv"
	"sync"
	"time"
)

// NonceSource produces strictly increasing nonces for request signing.
// Venues reject non-monotonic or stale nonces as authentication failures,
// so the value is the current millisecond clock bumped past the previous
// nonce whenever the clock stalls or moves backwards.
type NonceSource struct {
	mu   sync.Mutex
	last int64
}

// NewNonceSource returns a nonce source seeded from the wall clock.
func NewNonceSource() *NonceSource {
	return &NonceSource{last: time.Now().UnixMilli() - 1}
}

// Next returns the next nonce. Safe for concurrent use.
func (n *NonceSource) Next() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := time.Now().UnixMilli()
	if now <= n.last {
		now = n.last + 1
	}
	n.last = now
	return now
}

// NextString returns the next nonce formatted for a transport header.
func (n *NonceSource) NextString() string {
	return strconv.FormatInt(n.Next(), 10)
}
