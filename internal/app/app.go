package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime/debug"
	"time"

	"github.com/deusflow/ainexus/internal/cache"
	"github.com/deusflow/ainexus/internal/catalog"
	"github.com/deusflow/ainexus/internal/config"
	"github.com/deusflow/ainexus/internal/gemini"
	"github.com/deusflow/ainexus/internal/logger"
	"github.com/deusflow/ainexus/internal/metrics"
	"github.com/deusflow/ainexus/internal/news"
	"github.com/deusflow/ainexus/internal/ratelimit"
	"github.com/deusflow/ainexus/internal/rss"
	"github.com/deusflow/ainexus/internal/scraper"
	"github.com/deusflow/ainexus/internal/snapshot"
	"github.com/deusflow/ainexus/internal/storage"
	"github.com/deusflow/ainexus/internal/translate"
)

// Report summarizes one run.
type Report struct {
	StartedAt   time.Time
	Duration    time.Duration
	Sources     map[string]int
	Stages      map[string]int // "stage/outcome" -> count
	Fillers     int
	FillersLeft int // catalogue entries still unused after top-up
	Total       int
	OutputPath  string
	Providers   map[string]bool
	PersistErr  error
}

// Complete reports whether the snapshot reached disk.
func (r *Report) Complete() bool { return r.PersistErr == nil }

// App runs the pipeline once: fetch sources, enrich, top up, assemble, persist.
type App struct {
	cfg        *config.Config
	sources    []rss.Source
	capability *translate.Capability
	limiter    *ratelimit.Limiter
	memo       *cache.Memo
	localizer  *translate.Localizer
	enricher   *news.Enricher
	filler     *news.Filler
	writer     *storage.SnapshotFile
	recorder   *metrics.Recorder
	loc        *time.Location
	now        func() time.Time
	rng        *rand.Rand
	closers    []func()
}

type Option func(*App)

// WithClock overrides the run clock.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithRand seeds rank score jitter.
func WithRand(rng *rand.Rand) Option {
	return func(a *App) { a.rng = rng }
}

// WithSources replaces the configured source adapters.
func WithSources(sources ...rss.Source) Option {
	return func(a *App) { a.sources = sources }
}

// WithTranslators replaces the providers built from configuration.
func WithTranslators(translators ...translate.Translator) Option {
	return func(a *App) {
		a.capability = translate.NewCapability(a.limiter, a.recorder, translators...)
	}
}

// New wires every component from cfg. It does not fail: an unreadable sources
// file falls back to the built-in sources. Call Close when done.
func New(ctx context.Context, cfg *config.Config, opts ...Option) *App {
	a := &App{
		cfg:      cfg,
		limiter:  ratelimit.New(cfg.MaxTranslateRequests, cfg.TranslateRPS),
		memo:     cache.New(1024, time.Hour),
		filler:   news.NewFiller(nil, news.FillerReplicas),
		writer:   storage.NewSnapshotFile(cfg.OutputFile, cfg.OutputVariable),
		recorder: metrics.New(),
		loc:      cfg.Zone(),
		now:      time.Now,
	}

	for provider, n := range cfg.ProviderRequestLimits {
		a.limiter.SetLimit(provider, n)
	}

	fetcher := scraper.NewFetcher()

	sourcesCfg, err := rss.LoadSources(cfg.SourcesConfigPath)
	if err != nil {
		logger.Error("sources file unusable, using built-in sources", "path", cfg.SourcesConfigPath, "error", err)
		sourcesCfg = rss.DefaultSources()
	}
	a.sources = []rss.Source{
		rss.NewProductHunt(sourcesCfg.ProductHunt, fetcher, cfg.FetchTimeout),
		rss.NewHackerNews(sourcesCfg.HackerNews, fetcher, cfg.FetchTimeout),
	}

	a.capability = a.buildCapability(ctx)

	for _, opt := range opts {
		opt(a)
	}

	if cfg.TranslateProbe && a.capability != nil {
		a.capability.Probe(ctx, cfg.TargetLocale, cfg.EnrichTimeout)
	}
	if !a.capability.Available() {
		logger.Warn("no translation provider available, using dictionary substitution", "locale", cfg.TargetLocale)
	}

	a.localizer = translate.NewLocalizer(a.capability, cfg.TargetLocale,
		translate.WithDictionary(translate.DictionaryFor(cfg.TargetLocale)),
		translate.WithMemo(a.memo),
		translate.WithTimeout(cfg.EnrichTimeout),
	)
	a.enricher = news.NewEnricher(
		news.NewResolver(fetcher, a.localizer, cfg.EnrichTimeout),
		a.localizer,
		a.loc,
		news.WithConcurrency(cfg.EnrichConcurrency),
		news.WithMaxDeep(cfg.MaxDeepEnrich),
		news.WithObserver(a.recorder),
	)
	return a
}

func (a *App) buildCapability(ctx context.Context) *translate.Capability {
	var translators []translate.Translator
	for _, name := range a.cfg.TranslateProviders {
		switch name {
		case "google":
			translators = append(translators, translate.NewGoogleTranslator())
		case "gemini":
			if a.cfg.GeminiAPIKey == "" {
				logger.Debug("GEMINI_API_KEY not set, skipping gemini")
				continue
			}
			client, err := gemini.NewClient(ctx, a.cfg.GeminiAPIKey, a.cfg.GeminiModel)
			if err != nil {
				logger.Warn("gemini unavailable", "error", err)
				continue
			}
			a.closers = append(a.closers, client.Close)
			translators = append(translators, client)
		case "openai":
			if a.cfg.OpenAIAPIKey == "" {
				logger.Debug("OPENAI_API_KEY not set, skipping openai")
				continue
			}
			translators = append(translators, translate.NewOpenAITranslator(a.cfg.OpenAIAPIKey, a.cfg.OpenAIModel, ""))
		}
	}
	if len(translators) == 0 {
		return nil
	}
	return translate.NewCapability(a.limiter, a.recorder, translators...)
}

// Close releases provider clients.
func (a *App) Close() {
	for _, c := range a.closers {
		c()
	}
}

// Recorder exposes the run metrics.
func (a *App) Recorder() *metrics.Recorder { return a.recorder }

// Run executes the pipeline. Item-level failures only degrade descriptions;
// the returned error is non-nil when the snapshot could not be persisted or
// the run panicked.
func (a *App) Run(ctx context.Context) (report *Report, err error) {
	wall := time.Now()
	started := a.now()
	report = &Report{
		StartedAt:  started,
		Stages:     map[string]int{},
		OutputPath: a.writer.Path(),
	}
	if a.capability != nil {
		report.Providers = a.capability.Providers()
	}

	defer func() {
		if p := recover(); p != nil {
			logger.Error("run aborted by unexpected failure", "panic", p, "stack", string(debug.Stack()))
			err = fmt.Errorf("run panicked: %v", p)
			a.recorder.SetError(err.Error())
		}
		report.Duration = time.Since(wall)
	}()

	seen := news.NewSeenSet()
	raws, counts := rss.FetchAll(ctx, a.sources, seen)
	report.Sources = counts
	for name, n := range counts {
		a.recorder.IncItems(name, n)
	}

	enriched := a.enricher.Enrich(ctx, raws, started)
	items := make([]news.Item, 0, max(len(enriched), a.cfg.TargetNewsCount))
	for _, en := range enriched {
		items = append(items, en.Item)
		for _, s := range en.Resolution.Trail {
			report.Stages[string(s.Stage)+"/"+string(s.Outcome)]++
		}
	}

	if missing := a.cfg.TargetNewsCount - len(items); missing > 0 {
		fillers := a.filler.TopUp(items, seen, missing, news.Stamp(started, a.loc))
		items = append(items, fillers...)
		report.Fillers = len(fillers)
		a.recorder.IncItems(news.SourceFiller.String(), len(fillers))
		a.recorder.AddFillers(len(fillers))
		logger.Info("topped up with fillers", "added", len(fillers), "wanted", missing)
	}
	report.FillersLeft = a.filler.Remaining(seen)
	report.Total = len(items)
	if report.Total < a.cfg.TargetNewsCount {
		logger.Warn("filler catalogue exhausted, snapshot below target", "total", report.Total, "target", a.cfg.TargetNewsCount)
	}
	news.Renumber(items)

	snap := snapshot.Assemble(items, catalog.BuildRanks(a.rng), catalog.Prompts())
	if saveErr := a.writer.Save(snap); saveErr != nil {
		report.PersistErr = saveErr
		a.recorder.SetError(saveErr.Error())
		logger.Error("snapshot not written, run incomplete", "path", a.writer.Path(), "error", saveErr)
	} else {
		logger.Info("snapshot written",
			"path", a.writer.Path(),
			"news", len(snap.News),
			"prompts", len(snap.Prompts),
			"time", news.Stamp(a.now(), a.loc))
	}

	a.limiter.LogStats()
	hits, misses := a.memo.Stats()
	logger.Debug("translation memo", "hits", hits, "misses", misses)

	a.recorder.RecordRun(wall)
	if a.cfg.MetricsTextfile != "" {
		if werr := a.recorder.WriteTextfile(a.cfg.MetricsTextfile); werr != nil {
			logger.Warn("failed to write metrics textfile", "path", a.cfg.MetricsTextfile, "error", werr)
		}
	}

	return report, report.PersistErr
}
