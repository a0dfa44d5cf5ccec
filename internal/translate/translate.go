package translate

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/deusflow/ainexus/internal/logger"
	"github.com/deusflow/ainexus/internal/ratelimit"
)

var ErrUnavailable = errors.New("no translation provider available")

// Translator is one external translation backend.
type Translator interface {
	Name() string
	Translate(ctx context.Context, text, targetLocale string) (string, error)
}

// Observer receives per-attempt results; metrics.Recorder satisfies it.
type Observer interface {
	IncTranslation(provider, result string)
}

type provider struct {
	Translator
	available bool
}

// Capability is the translation service handed to the Localizer. It is built
// once at startup; availability lives on the object and is checked per call.
type Capability struct {
	mu        sync.RWMutex
	providers []*provider
	limiter   *ratelimit.Limiter
	observer  Observer
}

// NewCapability wraps translators in priority order. limiter and observer may be nil.
func NewCapability(limiter *ratelimit.Limiter, observer Observer, translators ...Translator) *Capability {
	c := &Capability{limiter: limiter, observer: observer}
	for _, t := range translators {
		if t == nil {
			continue
		}
		c.providers = append(c.providers, &provider{Translator: t, available: true})
	}
	return c
}

const probeText = "Hello, world"

// Probe tries every provider once and disables the ones that fail.
// It does not count against the limiter.
func (c *Capability) Probe(ctx context.Context, targetLocale string, timeout time.Duration) {
	c.mu.RLock()
	providers := slices.Clone(c.providers)
	c.mu.RUnlock()

	ok := make([]bool, len(providers))
	for i, p := range providers {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		out, err := p.Translate(pctx, probeText, targetLocale)
		cancel()

		ok[i] = err == nil && strings.TrimSpace(out) != ""
		if ok[i] {
			logger.Info("translation provider ready", "provider", p.Name())
		} else {
			logger.Warn("translation provider unavailable, skipping it this run", "provider", p.Name(), "error", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range providers {
		p.available = ok[i]
	}
}

// Available reports whether any provider passed its probe and still has quota left.
func (c *Capability) Available() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.providers {
		if p.available && (c.limiter == nil || c.limiter.CanUse(p.Name())) {
			return true
		}
	}
	return false
}

// Providers lists provider names with their availability.
func (c *Capability) Providers() map[string]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]bool, len(c.providers))
	for _, p := range c.providers {
		out[p.Name()] = p.available
	}
	return out
}

// Translate walks the available providers in order and returns the first
// non-empty result along with the provider name.
func (c *Capability) Translate(ctx context.Context, text, targetLocale string) (string, string, error) {
	if c == nil {
		return "", "", ErrUnavailable
	}

	c.mu.RLock()
	providers := make([]*provider, 0, len(c.providers))
	for _, p := range c.providers {
		if p.available {
			providers = append(providers, p)
		}
	}
	c.mu.RUnlock()

	if len(providers) == 0 {
		return "", "", ErrUnavailable
	}

	var errs []error
	for _, p := range providers {
		name := p.Name()
		if c.limiter != nil {
			if err := c.limiter.Use(ctx, name); err != nil {
				c.observe(name, "quota")
				errs = append(errs, err)
				continue
			}
		}

		out, err := p.Translate(ctx, text, targetLocale)
		if err != nil {
			c.observe(name, "error")
			logger.Debug("translation failed", "provider", name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		out = strings.TrimSpace(out)
		if out == "" {
			c.observe(name, "empty")
			errs = append(errs, fmt.Errorf("%s: empty translation", name))
			continue
		}
		c.observe(name, "ok")
		return out, name, nil
	}
	return "", "", errors.Join(errs...)
}

func (c *Capability) observe(provider, result string) {
	if c.observer != nil {
		c.observer.IncTranslation(provider, result)
	}
}
