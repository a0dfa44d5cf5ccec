package news

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/deusflow/ainexus/internal/logger"
	"github.com/deusflow/ainexus/internal/scraper"
)

const (
	// MinStructuredRunes: a feed summary at least this long is used without fetching the page.
	MinStructuredRunes = 30
	// MaxDescriptionRunes caps descriptions from the feed or page metadata.
	MaxDescriptionRunes = 400
	// Placeholder stands in when an item has no usable title either.
	Placeholder = "社区讨论"
)

type Stage string

const (
	StageStructured Stage = "structured"
	StageFetch      Stage = "fetch"
	StageMeta       Stage = "meta"
	StageBody       Stage = "body"
	StageFallback   Stage = "fallback"
)

type Outcome string

const (
	OutcomeFound          Outcome = "found"
	OutcomeNoData         Outcome = "no_data"
	OutcomeTransportError Outcome = "transport_error"
	OutcomeParseError     Outcome = "parse_error"
	OutcomeSkipped        Outcome = "skipped"
)

// StageResult is the outcome of one cascade step.
type StageResult struct {
	Stage   Stage
	Outcome Outcome
	Err     error
}

// Resolution is the final description plus the trail of every stage attempted.
type Resolution struct {
	Description string
	Stage       Stage
	Trail       []StageResult
}

// Outcome returns the recorded outcome for stage, or "" when it was not reached.
func (r Resolution) Outcome(stage Stage) Outcome {
	for _, s := range r.Trail {
		if s.Stage == stage {
			return s.Outcome
		}
	}
	return ""
}

// PageFetcher is satisfied by *scraper.Fetcher.
type PageFetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) (*scraper.Page, error)
}

// Localizer is satisfied by *translate.Localizer.
type Localizer interface {
	Localize(ctx context.Context, text string) string
}

// Input is what the resolver knows about an item.
type Input struct {
	Summary string
	URL     string
	// FallbackTitle is already localized by the caller.
	FallbackTitle string
	// NoFetch skips the page stages, e.g. when the deep-enrichment budget is spent.
	NoFetch bool
}

// Resolver runs the description cascade: feed summary, page metadata, page body, title.
type Resolver struct {
	fetcher   PageFetcher
	localizer Localizer
	timeout   time.Duration
}

func NewResolver(fetcher PageFetcher, localizer Localizer, timeout time.Duration) *Resolver {
	return &Resolver{fetcher: fetcher, localizer: localizer, timeout: timeout}
}

// Resolve never fails; the worst case is the fallback title.
func (r *Resolver) Resolve(ctx context.Context, in Input) Resolution {
	var res Resolution
	record := func(s StageResult) {
		res.Trail = append(res.Trail, s)
		logger.Debug("summary stage", "stage", s.Stage, "outcome", s.Outcome, "url", in.URL, "error", s.Err)
	}

	result := r.runStage(StageStructured, func() (string, StageResult) {
		return r.structured(ctx, in.Summary)
	})
	record(result.StageResult)
	if result.Outcome == OutcomeFound {
		return res.finish(StageStructured, result.text)
	}

	page, fetchResult := r.fetch(ctx, in)
	record(fetchResult)

	if page != nil {
		var doc *goquery.Document
		metaResult := r.runStage(StageMeta, func() (string, StageResult) {
			d, err := scraper.ParseDocument(page.Text())
			if err != nil {
				return "", StageResult{Stage: StageMeta, Outcome: OutcomeParseError, Err: err}
			}
			doc = d
			content, _ := scraper.ExtractMetaDescription(doc)
			if content == "" {
				return "", StageResult{Stage: StageMeta, Outcome: OutcomeNoData}
			}
			return r.localize(ctx, content, MaxDescriptionRunes), StageResult{Stage: StageMeta, Outcome: OutcomeFound}
		})
		record(metaResult.StageResult)
		if metaResult.Outcome == OutcomeFound {
			return res.finish(StageMeta, metaResult.text)
		}

		bodyResult := r.runStage(StageBody, func() (string, StageResult) {
			var text string
			if doc != nil {
				text = scraper.ExtractBodyFromDocument(doc)
			} else {
				text = scraper.ExtractBody(page.Text())
			}
			if text == "" {
				return "", StageResult{Stage: StageBody, Outcome: OutcomeNoData}
			}
			return r.localize(ctx, text, scraper.MaxBodyRunes), StageResult{Stage: StageBody, Outcome: OutcomeFound}
		})
		record(bodyResult.StageResult)
		if bodyResult.Outcome == OutcomeFound {
			return res.finish(StageBody, bodyResult.text)
		}
	}

	fallback := strings.TrimSpace(in.FallbackTitle)
	if fallback == "" {
		fallback = Placeholder
	}
	record(StageResult{Stage: StageFallback, Outcome: OutcomeFound})
	return res.finish(StageFallback, fallback)
}

// stageText carries a found stage's text alongside its result.
type stageText struct {
	StageResult
	text string
}

func (r Resolution) finish(stage Stage, text string) Resolution {
	r.Description = text
	r.Stage = stage
	return r
}

// runStage isolates a stage: a panic inside it becomes a parse error for that stage only.
func (r *Resolver) runStage(stage Stage, fn func() (string, StageResult)) (out stageText) {
	defer func() {
		if p := recover(); p != nil {
			out = stageText{StageResult: StageResult{Stage: stage, Outcome: OutcomeParseError, Err: fmt.Errorf("panic: %v", p)}}
		}
	}()
	text, result := fn()
	if result.Outcome == OutcomeFound && strings.TrimSpace(text) == "" {
		result.Outcome = OutcomeNoData
	}
	return stageText{StageResult: result, text: text}
}

func (r *Resolver) structured(ctx context.Context, summary string) (string, StageResult) {
	summary = strings.Join(strings.Fields(summary), " ")
	if utf8.RuneCountInString(summary) < MinStructuredRunes {
		return "", StageResult{Stage: StageStructured, Outcome: OutcomeNoData}
	}
	return r.localize(ctx, summary, MaxDescriptionRunes), StageResult{Stage: StageStructured, Outcome: OutcomeFound}
}

// fetch reports a panicking fetcher as a transport error.
func (r *Resolver) fetch(ctx context.Context, in Input) (page *scraper.Page, result StageResult) {
	defer func() {
		if p := recover(); p != nil {
			page = nil
			result = StageResult{Stage: StageFetch, Outcome: OutcomeTransportError, Err: fmt.Errorf("panic: %v", p)}
		}
	}()
	if in.NoFetch || strings.TrimSpace(in.URL) == "" || r.fetcher == nil {
		return nil, StageResult{Stage: StageFetch, Outcome: OutcomeSkipped}
	}
	page, err := r.fetcher.Fetch(ctx, in.URL, r.timeout)
	if err != nil {
		return nil, StageResult{Stage: StageFetch, Outcome: OutcomeTransportError, Err: err}
	}
	if page == nil {
		return nil, StageResult{Stage: StageFetch, Outcome: OutcomeNoData, Err: errors.New("empty page")}
	}
	return page, StageResult{Stage: StageFetch, Outcome: OutcomeFound}
}

// localize translates text and bounds the result to max runes plus the truncation marker.
func (r *Resolver) localize(ctx context.Context, text string, max int) string {
	out := text
	if r.localizer != nil {
		out = r.localizer.Localize(ctx, text)
	}
	if strings.TrimSpace(out) == "" {
		out = text
	}
	if utf8.RuneCountInString(out) > max+utf8.RuneCountInString(scraper.TruncationMarker) {
		out = scraper.Truncate(out, max)
	}
	return out
}
