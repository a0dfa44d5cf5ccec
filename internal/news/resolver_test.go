package news

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/deusflow/ainexus/internal/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu     sync.Mutex
	pages  map[string]string
	errs   map[string]error
	delay  map[string]time.Duration
	calls  []string
	budget time.Duration
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{pages: map[string]string{}, errs: map[string]error{}, delay: map[string]time.Duration{}}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string, timeout time.Duration) (*scraper.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.budget = timeout
	html, ok := f.pages[url]
	err := f.errs[url]
	d := f.delay[url]
	f.mu.Unlock()

	if d > 0 {
		time.Sleep(d)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &scraper.FetchError{Kind: scraper.ErrStatus, URL: url, Status: 404}
	}
	return &scraper.Page{URL: url, Status: 200, Body: []byte(html)}, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// tagLocalizer marks localized text so tests can tell it apart.
type tagLocalizer struct {
	mu    sync.Mutex
	calls int
}

func (l *tagLocalizer) Localize(_ context.Context, text string) string {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	if strings.Contains(text, "boom") {
		panic("translator exploded")
	}
	return "zh:" + text
}

const (
	pageURL = "https://example.com/post"
	lede    = "This paragraph is the real lede of the article, comfortably over fifty characters long."
)

func TestResolve_StructuredSummarySkipsFetch(t *testing.T) {
	f := newFakeFetcher()
	r := NewResolver(f, &tagLocalizer{}, 6*time.Second)

	res := r.Resolve(context.Background(), Input{
		Summary:       "A structured summary that is longer than thirty characters.",
		URL:           pageURL,
		FallbackTitle: "Title",
	})

	assert.Equal(t, "zh:A structured summary that is longer than thirty characters.", res.Description)
	assert.Equal(t, StageStructured, res.Stage)
	assert.Zero(t, f.callCount())
	assert.Equal(t, Outcome(""), res.Outcome(StageFetch))
}

func TestResolve_ShortSummaryFetchesPage(t *testing.T) {
	f := newFakeFetcher()
	f.pages[pageURL] = `<html><head><meta name="description" content="A description from the page head tag."></head></html>`
	r := NewResolver(f, &tagLocalizer{}, 6*time.Second)

	res := r.Resolve(context.Background(), Input{Summary: "too short", URL: pageURL, FallbackTitle: "Title"})

	assert.Equal(t, "zh:A description from the page head tag.", res.Description)
	assert.Equal(t, OutcomeNoData, res.Outcome(StageStructured))
	assert.Equal(t, 1, f.callCount())
	assert.Equal(t, 6*time.Second, f.budget)
}

func TestResolve_OpenGraphStopsBeforeBody(t *testing.T) {
	f := newFakeFetcher()
	f.pages[pageURL] = `<html><head><meta property="og:description" content="Twenty-five chars exactly"></head>
<body><p>` + lede + `</p></body></html>`
	r := NewResolver(f, &tagLocalizer{}, time.Second)

	res := r.Resolve(context.Background(), Input{URL: pageURL, FallbackTitle: "Title"})

	assert.Equal(t, "zh:Twenty-five chars exactly", res.Description)
	assert.Equal(t, StageMeta, res.Stage)
	assert.Equal(t, Outcome(""), res.Outcome(StageBody))
}

func TestResolve_BodySecondParagraph(t *testing.T) {
	f := newFakeFetcher()
	f.pages[pageURL] = `<html><body><p>Short one.</p><p>` + lede + `</p></body></html>`
	r := NewResolver(f, &tagLocalizer{}, time.Second)

	res := r.Resolve(context.Background(), Input{URL: pageURL, FallbackTitle: "Title"})

	assert.Equal(t, "zh:"+lede, res.Description)
	assert.Equal(t, StageBody, res.Stage)
	assert.Equal(t, OutcomeNoData, res.Outcome(StageMeta))
}

func TestResolve_TransportErrorFallsBackToTitle(t *testing.T) {
	f := newFakeFetcher()
	f.errs[pageURL] = &scraper.FetchError{Kind: scraper.ErrTransport, URL: pageURL, Err: errors.New("dial tcp: i/o timeout")}
	loc := &tagLocalizer{}
	r := NewResolver(f, loc, time.Second)

	res := r.Resolve(context.Background(), Input{URL: pageURL, FallbackTitle: "已本地化的标题"})

	assert.Equal(t, "已本地化的标题", res.Description)
	assert.Equal(t, StageFallback, res.Stage)
	assert.Equal(t, OutcomeTransportError, res.Outcome(StageFetch))
	assert.ErrorIs(t, res.Trail[1].Err, scraper.ErrTransport)
	assert.Equal(t, Outcome(""), res.Outcome(StageMeta))
	assert.Zero(t, loc.calls, "fallback title is not localized again")
}

func TestResolve_NonOKStatusAbortsCascade(t *testing.T) {
	f := newFakeFetcher()
	r := NewResolver(f, &tagLocalizer{}, time.Second)

	res := r.Resolve(context.Background(), Input{URL: "https://example.com/missing", FallbackTitle: "Title"})

	assert.Equal(t, "Title", res.Description)
	require.Len(t, res.Trail, 3)
	assert.ErrorIs(t, res.Trail[1].Err, scraper.ErrStatus)
}

func TestResolve_PanicOnlyFailsThatStage(t *testing.T) {
	f := newFakeFetcher()
	f.pages[pageURL] = `<html><head><meta property="og:description" content="This boom description crashes the translator"></head>
<body><p>` + lede + `</p></body></html>`
	r := NewResolver(f, &tagLocalizer{}, time.Second)

	res := r.Resolve(context.Background(), Input{URL: pageURL, FallbackTitle: "Title"})

	assert.Equal(t, OutcomeParseError, res.Outcome(StageMeta))
	assert.Equal(t, StageBody, res.Stage)
	assert.Equal(t, "zh:"+lede, res.Description)
}

func TestResolve_NoFetchAndPlaceholder(t *testing.T) {
	f := newFakeFetcher()
	r := NewResolver(f, &tagLocalizer{}, time.Second)

	res := r.Resolve(context.Background(), Input{URL: pageURL, NoFetch: true})

	assert.Equal(t, Placeholder, res.Description)
	assert.Equal(t, OutcomeSkipped, res.Outcome(StageFetch))
	assert.Zero(t, f.callCount())
}

func TestResolve_DescriptionsAreBounded(t *testing.T) {
	f := newFakeFetcher()
	f.pages[pageURL] = `<html><body><p>` + strings.Repeat("word ", 200) + `</p></body></html>`
	r := NewResolver(f, nil, time.Second)

	body := r.Resolve(context.Background(), Input{URL: pageURL, FallbackTitle: "Title"})
	assert.Equal(t, StageBody, body.Stage)
	assert.LessOrEqual(t, utf8.RuneCountInString(body.Description), scraper.MaxBodyRunes+len(scraper.TruncationMarker))
	assert.True(t, strings.HasSuffix(body.Description, scraper.TruncationMarker))

	structured := r.Resolve(context.Background(), Input{Summary: strings.Repeat("summary ", 200), FallbackTitle: "Title"})
	assert.LessOrEqual(t, utf8.RuneCountInString(structured.Description), MaxDescriptionRunes+len(scraper.TruncationMarker))
}
