package news

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/deusflow/ainexus/internal/logger"
	"golang.org/x/sync/errgroup"
)

// StageObserver is satisfied by *metrics.Recorder.
type StageObserver interface {
	IncStage(stage, outcome string)
}

// Enricher localizes titles and resolves descriptions for a batch of raw items.
type Enricher struct {
	resolver    *Resolver
	localizer   Localizer
	observer    StageObserver
	concurrency int
	maxDeep     int
	loc         *time.Location
}

type EnricherOption func(*Enricher)

// WithConcurrency sets how many items are resolved at once. Values below 1 mean sequential.
func WithConcurrency(n int) EnricherOption {
	return func(e *Enricher) { e.concurrency = n }
}

// WithMaxDeep caps how many items may have their page fetched. Negative means no cap.
func WithMaxDeep(n int) EnricherOption {
	return func(e *Enricher) { e.maxDeep = n }
}

func WithObserver(o StageObserver) EnricherOption {
	return func(e *Enricher) { e.observer = o }
}

func NewEnricher(resolver *Resolver, localizer Localizer, loc *time.Location, opts ...EnricherOption) *Enricher {
	e := &Enricher{
		resolver:    resolver,
		localizer:   localizer,
		concurrency: 1,
		maxDeep:     -1,
		loc:         loc,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.concurrency < 1 {
		e.concurrency = 1
	}
	if e.loc == nil {
		e.loc = time.UTC
	}
	return e
}

// Enriched pairs an item with how its description was obtained.
type Enriched struct {
	Item       Item
	Resolution Resolution
}

// Enrich returns one entry per raw item, in input order regardless of completion order.
// Ids are left empty; the caller numbers the final list.
func (e *Enricher) Enrich(ctx context.Context, raws []RawItem, now time.Time) []Enriched {
	noFetch := e.deepBudget(raws)
	out := make([]Enriched, len(raws))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i := range raws {
		g.Go(func() error {
			out[i] = e.safely(raws[i], now, func() Enriched {
				return e.enrichOne(ctx, raws[i], noFetch[i], now)
			})
			return nil
		})
	}
	_ = g.Wait()

	if e.observer != nil {
		for _, en := range out {
			for _, s := range en.Resolution.Trail {
				e.observer.IncStage(string(s.Stage), string(s.Outcome))
			}
		}
	}
	return out
}

// deepBudget decides up front which items may not fetch their page, so the
// outcome does not depend on goroutine scheduling. Items with no summary at
// all (Hacker News stories) are served first, then short summaries, each tier
// in discovery order.
func (e *Enricher) deepBudget(raws []RawItem) []bool {
	noFetch := make([]bool, len(raws))
	if e.maxDeep < 0 {
		return noFetch
	}
	left := e.maxDeep
	for _, blank := range []bool{true, false} {
		for i, raw := range raws {
			if !needsPage(raw) || (strings.TrimSpace(raw.Summary) == "") != blank {
				continue
			}
			if left == 0 {
				noFetch[i] = true
				continue
			}
			left--
		}
	}
	return noFetch
}

func needsPage(raw RawItem) bool {
	summary := strings.Join(strings.Fields(raw.Summary), " ")
	return utf8.RuneCountInString(summary) < MinStructuredRunes && strings.TrimSpace(raw.Link) != ""
}

// safely runs fn and turns a panic into an item that keeps its source title
// as both title and description.
func (e *Enricher) safely(raw RawItem, now time.Time, fn func() Enriched) (out Enriched) {
	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("panic: %v", p)
			logger.Error("item enrichment failed, keeping source title", "title", raw.Title, "url", raw.Link, "error", err)
			title := strings.TrimSpace(raw.Title)
			desc := title
			if desc == "" {
				desc = Placeholder
			}
			out = Enriched{
				Item: e.item(raw, title, desc, now),
				Resolution: Resolution{
					Description: desc,
					Stage:       StageFallback,
					Trail:       []StageResult{{Stage: StageFallback, Outcome: OutcomeParseError, Err: err}},
				},
			}
		}
	}()
	return fn()
}

func (e *Enricher) enrichOne(ctx context.Context, raw RawItem, noFetch bool, now time.Time) Enriched {
	title := e.localizeTitle(ctx, raw)

	res := e.resolver.Resolve(ctx, Input{
		Summary:       raw.Summary,
		URL:           raw.Link,
		FallbackTitle: title,
		NoFetch:       noFetch,
	})
	if title == "" {
		title = res.Description
	}

	logger.Debug("item enriched", "source", raw.Origin.String(), "stage", res.Stage, "url", raw.Link)

	return Enriched{Item: e.item(raw, title, res.Description, now), Resolution: res}
}

// localizeTitle falls back to the source title when the localizer fails or panics.
func (e *Enricher) localizeTitle(ctx context.Context, raw RawItem) (title string) {
	title = strings.TrimSpace(raw.Title)
	if e.localizer == nil || title == "" {
		return title
	}
	defer func() {
		if p := recover(); p != nil {
			logger.Warn("title localization failed", "title", title, "error", p)
		}
	}()
	if localized := e.localizer.Localize(ctx, title); localized != "" {
		title = localized
	}
	return title
}

func (e *Enricher) item(raw RawItem, title, desc string, now time.Time) Item {
	return Item{
		Source:      raw.Origin.DisplayName(),
		Category:    raw.Category,
		Title:       title,
		Description: desc,
		URL:         raw.Link,
		PublishedAt: FormatTimestamp(raw.PublishedRaw, e.loc, now),
		Origin:      raw.Origin,
	}
}
