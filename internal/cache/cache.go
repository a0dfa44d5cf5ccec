package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Memo remembers translations for the duration of a run so identical
// strings (a title that doubles as its fallback description, repeated
// boilerplate meta tags) are translated once.
type Memo struct {
	lru    *expirable.LRU[string, string]
	hits   atomic.Int64
	misses atomic.Int64
}

func New(size int, ttl time.Duration) *Memo {
	if size <= 0 {
		size = 512
	}
	return &Memo{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

func (m *Memo) Get(key string) (string, bool) {
	v, ok := m.lru.Get(key)
	if ok {
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}
	return v, ok
}

func (m *Memo) Set(key, value string) {
	m.lru.Add(key, value)
}

func (m *Memo) Stats() (hits, misses int64) {
	return m.hits.Load(), m.misses.Load()
}

// Key builds a stable key for text translated into locale.
func Key(locale, text string) string {
	h := sha256.New()
	h.Write([]byte(locale + "\x00" + text))
	return hex.EncodeToString(h.Sum(nil))
}
