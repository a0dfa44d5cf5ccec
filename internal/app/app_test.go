package app

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/deusflow/ainexus/internal/config"
	"github.com/deusflow/ainexus/internal/news"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var runTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func testConfig(t *testing.T, feedURL, apiBase string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	sources := filepath.Join(dir, "sources.yaml")
	yaml := fmt.Sprintf(`producthunt:
  feed_url: %s
  limit: 15
hackernews:
  api_base: %s
  scan: 60
  limit: 15
  keywords: [Show HN, Launch, Tool, App, Open Source, GPT, LLM]
`, feedURL, apiBase)
	require.NoError(t, os.WriteFile(sources, []byte(yaml), 0o644))

	return &config.Config{
		OutputFile:          filepath.Join(dir, "data.js"),
		OutputVariable:      "window.AI_DATA",
		SourcesConfigPath:   sources,
		TargetNewsCount:     40,
		FetchTimeout:        2 * time.Second,
		EnrichTimeout:       2 * time.Second,
		MaxDeepEnrich:       20,
		EnrichConcurrency:   4,
		TargetLocale:        "zh-CN",
		TimezoneOffsetHours: 8,
		TranslateRPS:        0,
		MetricsTextfile:     filepath.Join(dir, "ainexus.prom"),
	}
}

type written struct {
	News    []news.Item                 `json:"news"`
	Ranks   map[string][]map[string]any `json:"ranks"`
	Prompts []map[string]string         `json:"prompts"`
}

func readSnapshot(t *testing.T, path string) written {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	require.True(t, strings.HasPrefix(text, "window.AI_DATA = "))
	body := strings.TrimSuffix(strings.TrimPrefix(text, "window.AI_DATA = "), ";\n")

	var w written
	require.NoError(t, json.Unmarshal([]byte(body), &w))
	return w
}

func TestRun_NoReachableSources(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	cfg := testConfig(t, deadURL+"/feed", deadURL+"/v0")
	a := New(context.Background(), cfg, WithClock(func() time.Time { return runTime }))
	defer a.Close()

	report, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Complete())

	want := min(cfg.TargetNewsCount, len(news.FillerCatalogue))
	assert.Equal(t, want, report.Total)
	assert.Equal(t, want, report.Fillers)
	assert.Equal(t, map[string]int{"producthunt": 0, "hackernews": 0}, report.Sources)

	snap := readSnapshot(t, cfg.OutputFile)
	require.Len(t, snap.News, want)
	for i, it := range snap.News {
		assert.Equal(t, strconv.Itoa(i), it.ID)
		assert.Equal(t, "05-01 18:00", it.PublishedAt)
		assert.NotEmpty(t, it.Description)
	}
	assert.Len(t, snap.Ranks, 4)
	assert.Len(t, snap.Prompts, 12)

	prom, err := os.ReadFile(cfg.MetricsTextfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), fmt.Sprintf("ainexus_fillers_added %d", want))
}

type prefixTranslator struct{}

func (prefixTranslator) Name() string { return "fake" }

func (prefixTranslator) Translate(_ context.Context, text, _ string) (string, error) {
	return "译:" + text, nil
}

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>AI</title>
  <entry>
    <title>Clipwise</title>
    <link rel="alternate" href="%[1]s/products/clipwise"/>
    <published>2024-05-01T03:00:00-07:00</published>
    <summary>Turn long videos into short clips with one click</summary>
  </entry>
  <entry>
    <title>Show HN: Pager for LLM agents</title>
    <link rel="alternate" href="%[1]s/products/pager"/>
    <published>2024-05-01T03:00:00-07:00</published>
    <summary>Tiny</summary>
  </entry>
</feed>`, srv.URL)
	})
	mux.HandleFunc("/products/pager", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><body><p>Menu</p><p>Pager wakes your agents up when a long running task finally needs a human decision.</p></body></html>`)
	})
	mux.HandleFunc("/v0/topstories.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[1,2,3]`)
	})
	mux.HandleFunc("/v0/item/1.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":1,"title":"Show HN: Pager for LLM agents","url":"https://elsewhere.invalid"}`)
	})
	mux.HandleFunc("/v0/item/2.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id":2,"title":"Launch: GPT notebook","url":"%s/article","time":1714557600}`, srv.URL)
	})
	mux.HandleFunc("/v0/item/3.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":3,"title":"My weekend garden"}`)
	})
	mux.HandleFunc("/article", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><meta property="og:description" content="A notebook that drafts code with GPT."></head></html>`)
	})

	srv = httptest.NewServer(mux)
	return srv
}

func TestRun_LiveSourcesThenFillers(t *testing.T) {
	srv := newUpstream(t)
	defer srv.Close()

	cfg := testConfig(t, srv.URL+"/feed", srv.URL+"/v0")
	cfg.TargetNewsCount = 5
	a := New(context.Background(), cfg,
		WithClock(func() time.Time { return runTime }),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithTranslators(prefixTranslator{}),
	)
	defer a.Close()

	report, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"producthunt": 2, "hackernews": 1}, report.Sources)
	assert.Equal(t, 2, report.Fillers)
	assert.Equal(t, 1, report.Stages["structured/found"])
	assert.Equal(t, 1, report.Stages["body/found"])
	assert.Equal(t, 1, report.Stages["meta/found"])
	assert.Equal(t, map[string]bool{"fake": true}, report.Providers)

	snap := readSnapshot(t, cfg.OutputFile)
	require.Len(t, snap.News, 5)

	ph := snap.News[0]
	assert.Equal(t, "0", ph.ID)
	assert.Equal(t, "Product Hunt", ph.Source)
	assert.Equal(t, news.CategoryApp, ph.Category)
	assert.Equal(t, "译:Clipwise", ph.Title)
	assert.Equal(t, "译:Turn long videos into short clips with one click", ph.Description)
	assert.Equal(t, "05-01 18:00", ph.PublishedAt)

	assert.Equal(t, "译:Pager wakes your agents up when a long running task finally needs a human decision.", snap.News[1].Description)

	hn := snap.News[2]
	assert.Equal(t, "Hacker News", hn.Source)
	assert.Equal(t, news.CategoryDev, hn.Category)
	assert.Equal(t, "译:Launch: GPT notebook", hn.Title)
	assert.Equal(t, "译:A notebook that drafts code with GPT.", hn.Description)

	assert.Equal(t, news.FillerCatalogue[0].Title, snap.News[3].Title)
	assert.Equal(t, "4", snap.News[4].ID)
}

func TestRun_PersistenceFailureIsReported(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	cfg := testConfig(t, dead.URL+"/feed", dead.URL+"/v0")
	cfg.OutputFile = t.TempDir() // a directory cannot be written as a file
	cfg.TargetNewsCount = 1

	a := New(context.Background(), cfg)
	defer a.Close()

	report, err := a.Run(context.Background())
	require.Error(t, err)
	assert.False(t, report.Complete())
	assert.Equal(t, 1, report.Total)
	assert.NotEmpty(t, a.Recorder().LastError())
}

func TestRun_MalformedSourcesFileStillWritesSnapshot(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1/feed", "http://127.0.0.1:1/v0")
	require.NoError(t, os.WriteFile(cfg.SourcesConfigPath, []byte("producthunt: [oops"), 0o644))

	a := New(context.Background(), cfg, WithClock(func() time.Time { return runTime }))
	defer a.Close()

	// Built-in sources point at the public internet; a cancelled context keeps
	// them from being reached.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := a.Run(ctx)
	require.NoError(t, err)
	assert.True(t, report.Complete())
	assert.Equal(t, len(news.FillerCatalogue), report.Fillers)
	assert.Zero(t, report.FillersLeft)

	snap := readSnapshot(t, cfg.OutputFile)
	assert.Len(t, snap.News, len(news.FillerCatalogue))
}

func TestNew_ProviderRequestLimits(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1/feed", "http://127.0.0.1:1/v0")
	cfg.ProviderRequestLimits = map[string]int{"fake": 1}

	a := New(context.Background(), cfg, WithTranslators(prefixTranslator{}))
	defer a.Close()

	assert.Equal(t, "译:Open Source launch", a.localizer.Localize(context.Background(), "Open Source launch"))
	assert.Equal(t, "开源 发布 again", a.localizer.Localize(context.Background(), "Open Source launch again"))
	assert.Equal(t, 1, a.limiter.Stats()["fake"])
}
