package rss

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/deusflow/ainexus/internal/logger"
	"github.com/deusflow/ainexus/internal/news"
)

const hnItemURL = "https://news.ycombinator.com/item?id="

// HackerNews scans the top stories and keeps launch-style posts.
type HackerNews struct {
	cfg     HackerNewsConfig
	fetcher news.PageFetcher
	timeout time.Duration
	log     *slog.Logger
}

func NewHackerNews(cfg HackerNewsConfig, fetcher news.PageFetcher, timeout time.Duration) *HackerNews {
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")
	return &HackerNews{
		cfg:     cfg,
		fetcher: fetcher,
		timeout: timeout,
		log:     logger.With("source", news.SourceHackerNews.String()),
	}
}

func (h *HackerNews) Name() string { return news.SourceHackerNews.String() }

type hnStory struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Time    int64  `json:"time"`
	Dead    bool   `json:"dead"`
	Deleted bool   `json:"deleted"`
}

func (h *HackerNews) Fetch(ctx context.Context, seen news.SeenSet) ([]news.RawItem, error) {
	var ids []int64
	if err := h.getJSON(ctx, h.cfg.APIBase+"/topstories.json", &ids); err != nil {
		return nil, err
	}
	if h.cfg.Scan > 0 && len(ids) > h.cfg.Scan {
		ids = ids[:h.cfg.Scan]
	}

	var items []news.RawItem
	taken := news.NewSeenSet()
	for _, id := range ids {
		if h.cfg.Limit > 0 && len(items) >= h.cfg.Limit {
			break
		}
		if ctx.Err() != nil {
			return items, ctx.Err()
		}

		var story *hnStory
		if err := h.getJSON(ctx, fmt.Sprintf("%s/item/%d.json", h.cfg.APIBase, id), &story); err != nil {
			h.log.Debug("item skipped", "id", id, "error", err)
			continue
		}
		if story == nil || story.Dead || story.Deleted {
			continue
		}
		title := strings.TrimSpace(story.Title)
		if !matchesKeyword(title, h.cfg.Keywords) {
			continue
		}
		if seen.Has(title) || !taken.Add(title) {
			h.log.Debug("duplicate title not counted", "id", id, "title", title)
			continue
		}

		link := strings.TrimSpace(story.URL)
		if link == "" {
			link = hnItemURL + strconv.FormatInt(id, 10)
		}
		var publishedRaw string
		if story.Time > 0 {
			publishedRaw = strconv.FormatInt(story.Time, 10)
		}
		items = append(items, news.RawItem{
			Origin:       news.SourceHackerNews,
			Category:     news.CategoryDev,
			Title:        title,
			Link:         link,
			PublishedRaw: publishedRaw,
		})
	}
	return items, nil
}

func (h *HackerNews) getJSON(ctx context.Context, url string, v any) error {
	page, err := h.fetcher.Fetch(ctx, url, h.timeout)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(page.Body, v); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

// matchesKeyword is a case-sensitive substring match, so "App" does not hit "happy".
func matchesKeyword(title string, keywords []string) bool {
	if title == "" {
		return false
	}
	for _, k := range keywords {
		if k != "" && strings.Contains(title, k) {
			return true
		}
	}
	return false
}
