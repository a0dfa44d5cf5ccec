package rss

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/deusflow/ainexus/internal/logger"
	"github.com/deusflow/ainexus/internal/news"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

// ProductHunt reads the AI category Atom feed.
type ProductHunt struct {
	cfg     ProductHuntConfig
	fetcher news.PageFetcher
	timeout time.Duration
	parser  *gofeed.Parser
	log     *slog.Logger
}

func NewProductHunt(cfg ProductHuntConfig, fetcher news.PageFetcher, timeout time.Duration) *ProductHunt {
	return &ProductHunt{
		cfg:     cfg,
		fetcher: fetcher,
		timeout: timeout,
		parser:  gofeed.NewParser(),
		log:     logger.With("source", news.SourceProductHunt.String()),
	}
}

func (p *ProductHunt) Name() string { return news.SourceProductHunt.String() }

func (p *ProductHunt) Fetch(ctx context.Context, seen news.SeenSet) ([]news.RawItem, error) {
	page, err := p.fetcher.Fetch(ctx, p.cfg.FeedURL, p.timeout)
	if err != nil {
		return nil, err
	}
	feed, err := p.parser.ParseString(page.Text())
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", p.cfg.FeedURL, err)
	}

	entries := feed.Items
	if p.cfg.Limit > 0 && len(entries) > p.cfg.Limit {
		entries = entries[:p.cfg.Limit]
	}

	p.log.Debug("feed parsed", "entries", len(feed.Items), "kept", len(entries))
	items := make([]news.RawItem, 0, len(entries))
	for _, entry := range entries {
		title := strings.TrimSpace(entry.Title)
		if title == "" || seen.Has(title) {
			continue
		}
		summary := entry.Description
		if strings.TrimSpace(summary) == "" {
			summary = entry.Content
		}
		items = append(items, news.RawItem{
			Origin:       news.SourceProductHunt,
			Category:     news.CategoryApp,
			Title:        title,
			Summary:      cleanSummary(summary),
			Link:         strings.TrimSpace(entry.Link),
			PublishedRaw: published(entry),
		})
	}
	return items, nil
}

var (
	textOnly     = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)
	feedLinkTail = regexp.MustCompile(`(?i)\s*Discussion\s*\|\s*Link\s*$`)
)

// cleanSummary turns a feed's HTML summary into plain text and drops the
// "Discussion | Link" footer Product Hunt appends.
func cleanSummary(s string) string {
	s = html.UnescapeString(textOnly.Sanitize(s))
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(feedLinkTail.ReplaceAllString(s, ""))
}

func published(entry *gofeed.Item) string {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed.Format(time.RFC3339)
	}
	if entry.UpdatedParsed != nil {
		return entry.UpdatedParsed.Format(time.RFC3339)
	}
	return entry.Published
}
