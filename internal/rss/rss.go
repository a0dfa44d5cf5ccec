package rss

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/deusflow/ainexus/internal/logger"
	"github.com/deusflow/ainexus/internal/news"
	"gopkg.in/yaml.v3"
)

//go:embed sources.yaml
var defaultSources []byte

// SourcesConfig is the YAML sources file:
//
//	producthunt:
//	  feed_url: https://...
//	  limit: 15
//	hackernews:
//	  api_base: https://hacker-news.firebaseio.com/v0
//	  keywords: [Show HN, GPT]
type SourcesConfig struct {
	ProductHunt ProductHuntConfig `yaml:"producthunt"`
	HackerNews  HackerNewsConfig  `yaml:"hackernews"`
}

type ProductHuntConfig struct {
	FeedURL string `yaml:"feed_url"`
	Limit   int    `yaml:"limit"`
}

type HackerNewsConfig struct {
	APIBase  string   `yaml:"api_base"`
	Scan     int      `yaml:"scan"`
	Limit    int      `yaml:"limit"`
	Keywords []string `yaml:"keywords"`
}

// Source yields raw items from one upstream. seen holds titles already taken
// by earlier sources; adapters skip them before applying their own limits and
// must not modify it.
type Source interface {
	Name() string
	Fetch(ctx context.Context, seen news.SeenSet) ([]news.RawItem, error)
}

// DefaultSources returns the built-in configuration.
func DefaultSources() *SourcesConfig {
	cfg, err := parseSources(defaultSources)
	if err != nil {
		panic(fmt.Sprintf("embedded sources.yaml is invalid: %v", err))
	}
	return cfg
}

// LoadSources reads the sources file at path. A missing file (or empty path)
// yields the built-in defaults; a malformed one is an error.
func LoadSources(path string) (*SourcesConfig, error) {
	if path == "" {
		return DefaultSources(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("sources file not found, using built-in sources", "path", path)
		return DefaultSources(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}
	cfg, err := parseSources(data)
	if err != nil {
		return nil, fmt.Errorf("parsing sources file %s: %w", path, err)
	}
	return cfg, nil
}

func parseSources(data []byte) (*SourcesConfig, error) {
	var cfg SourcesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.ProductHunt.Limit <= 0 {
		cfg.ProductHunt.Limit = 15
	}
	if cfg.HackerNews.Scan <= 0 {
		cfg.HackerNews.Scan = 60
	}
	if cfg.HackerNews.Limit <= 0 {
		cfg.HackerNews.Limit = 15
	}
	return &cfg, nil
}

// FetchAll runs every source in order. A failing source contributes nothing;
// titles already seen are dropped and recorded.
func FetchAll(ctx context.Context, sources []Source, seen news.SeenSet) (items []news.RawItem, counts map[string]int) {
	counts = make(map[string]int, len(sources))
	for _, src := range sources {
		raws, err := src.Fetch(ctx, seen)
		if err != nil {
			logger.Warn("source failed, continuing without it", "source", src.Name(), "error", err)
		}
		kept := 0
		for _, raw := range raws {
			if !seen.Add(raw.Title) {
				logger.Debug("duplicate title skipped", "source", src.Name(), "title", raw.Title)
				continue
			}
			items = append(items, raw)
			kept++
		}
		counts[src.Name()] = kept
		logger.Info("source loaded", "source", src.Name(), "items", kept)
	}
	return items, counts
}
