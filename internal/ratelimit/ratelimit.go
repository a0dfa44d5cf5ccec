package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/deusflow/ainexus/internal/logger"
	"golang.org/x/time/rate"
)

var ErrQuotaExceeded = errors.New("translation quota exceeded")

// Limiter caps translation requests per provider and per run, and paces them.
type Limiter struct {
	mu       sync.Mutex
	counts   map[string]int
	limits   map[string]int
	total    int
	maxTotal int
	denied   int
	pacer    *rate.Limiter
}

// New creates a limiter. maxTotal <= 0 means unlimited; rps <= 0 disables pacing.
func New(maxTotal int, rps float64) *Limiter {
	l := &Limiter{
		counts:   make(map[string]int),
		limits:   make(map[string]int),
		maxTotal: maxTotal,
	}
	if rps > 0 {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		l.pacer = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return l
}

// SetLimit caps a single provider. max <= 0 means unlimited.
func (l *Limiter) SetLimit(provider string, max int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limits[provider] = max
}

// CanUse reports whether a request for provider would be admitted now.
func (l *Limiter) CanUse(provider string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.checkLocked(provider) == nil
}

// Use reserves one request for provider and waits for the pacer.
func (l *Limiter) Use(ctx context.Context, provider string) error {
	l.mu.Lock()
	if err := l.checkLocked(provider); err != nil {
		l.denied++
		l.mu.Unlock()
		return err
	}
	l.counts[provider]++
	l.total++
	count, total := l.counts[provider], l.total
	l.mu.Unlock()

	logger.Debug("translation request admitted", "provider", provider, "used", count, "total", total)

	if l.pacer != nil {
		if err := l.pacer.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for %s pacer: %w", provider, err)
		}
	}
	return nil
}

func (l *Limiter) checkLocked(provider string) error {
	if max := l.limits[provider]; max > 0 && l.counts[provider] >= max {
		return fmt.Errorf("%s limit reached (%d/%d): %w", provider, l.counts[provider], max, ErrQuotaExceeded)
	}
	if l.maxTotal > 0 && l.total >= l.maxTotal {
		return fmt.Errorf("total limit reached (%d/%d): %w", l.total, l.maxTotal, ErrQuotaExceeded)
	}
	return nil
}

// Stats returns per-provider usage plus "total" and "denied".
func (l *Limiter) Stats() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := make(map[string]int, len(l.counts)+2)
	for p, c := range l.counts {
		stats[p] = c
	}
	stats["total"] = l.total
	stats["denied"] = l.denied
	return stats
}

// LogStats prints current usage.
func (l *Limiter) LogStats() {
	stats := l.Stats()
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, stats[k])
	}
	logger.Info("translation usage", args...)
}
