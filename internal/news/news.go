package news

import (
	"strconv"
	"strings"
)

// Category is the display bucket of a news item.
type Category string

const (
	CategoryApp   Category = "APP"
	CategoryDev   Category = "DEV"
	CategoryImage Category = "IMAGE"
	CategoryVideo Category = "VIDEO"
)

// SourceKind identifies where an item came from.
type SourceKind int

const (
	SourceProductHunt SourceKind = iota
	SourceHackerNews
	SourceFiller
)

func (k SourceKind) String() string {
	switch k {
	case SourceProductHunt:
		return "producthunt"
	case SourceHackerNews:
		return "hackernews"
	case SourceFiller:
		return "filler"
	}
	return "unknown"
}

// DisplayName is what the front end shows in the "src" field for live sources.
func (k SourceKind) DisplayName() string {
	switch k {
	case SourceProductHunt:
		return "Product Hunt"
	case SourceHackerNews:
		return "Hacker News"
	}
	return ""
}

// Item is one entry of the snapshot's news list.
type Item struct {
	ID          string   `json:"id"`
	Source      string   `json:"src"`
	Category    Category `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"desc"`
	URL         string   `json:"url"`
	PublishedAt string   `json:"time"`

	Origin SourceKind `json:"-"`
}

// RawItem is what a source adapter yields before enrichment.
type RawItem struct {
	Origin   SourceKind
	Category Category
	Title    string
	Summary  string
	Link     string
	// PublishedRaw is an RFC 3339 timestamp or unix seconds.
	PublishedRaw string
}

// Renumber assigns sequential ids in list order.
func Renumber(items []Item) {
	for i := range items {
		items[i].ID = strconv.Itoa(i)
	}
}

// SeenSet tracks titles already placed in the current snapshot.
type SeenSet map[string]struct{}

func NewSeenSet(titles ...string) SeenSet {
	s := make(SeenSet, len(titles))
	for _, t := range titles {
		s.Add(t)
	}
	return s
}

// Add records title and reports whether it was new.
func (s SeenSet) Add(title string) bool {
	key := strings.TrimSpace(title)
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = struct{}{}
	return true
}

func (s SeenSet) Has(title string) bool {
	_, ok := s[strings.TrimSpace(title)]
	return ok
}
