package scraper

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	// MinMetaRunes is the length a meta description must exceed to be used.
	MinMetaRunes = 20
	// MinParagraphRunes is the length a paragraph must exceed to count as the lede.
	MinParagraphRunes = 50
	// MaxBodyRunes caps body-extracted text before the truncation marker.
	MaxBodyRunes     = 300
	TruncationMarker = "..."
)

// MetaSource tells which tag a description came from.
type MetaSource string

const (
	MetaOpenGraph   MetaSource = "og:description"
	MetaDescription MetaSource = "description"
)

// ParseDocument parses raw markup. x/net/html is tolerant, so this only fails on reader errors.
func ParseDocument(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// ExtractMetaDescription returns the og:description content, or failing that
// the name="description" content, when it is longer than MinMetaRunes.
func ExtractMetaDescription(doc *goquery.Document) (string, MetaSource) {
	candidates := []struct {
		source MetaSource
		match  func(s *goquery.Selection) bool
	}{
		{MetaOpenGraph, func(s *goquery.Selection) bool {
			return attrFold(s, "property", "og:description") || attrFold(s, "name", "og:description")
		}},
		{MetaDescription, func(s *goquery.Selection) bool {
			return attrFold(s, "name", "description")
		}},
	}

	metas := doc.Find("meta")
	for _, c := range candidates {
		// Only the first tag of each kind is considered.
		tag := metas.FilterFunction(func(_ int, s *goquery.Selection) bool { return c.match(s) }).First()
		if tag.Length() == 0 {
			continue
		}
		content := collapseSpaces(tag.AttrOr("content", ""))
		if utf8.RuneCountInString(content) > MinMetaRunes {
			return content, c.source
		}
	}
	return "", ""
}

// ExtractBody finds the first substantial paragraph of a page. Short leading
// paragraphs are usually navigation or boilerplate. Returns "" when nothing qualifies.
func ExtractBody(html string) string {
	doc, err := ParseDocument(html)
	if err != nil {
		return ""
	}
	return ExtractBodyFromDocument(doc)
}

// ExtractBodyFromDocument is ExtractBody on an already parsed page. The document is not modified.
func ExtractBodyFromDocument(doc *goquery.Document) string {
	root := doc.Selection.Clone()
	root.Find("script, style, noscript, template").Remove()

	var found string
	root.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := collapseSpaces(s.Text())
		if utf8.RuneCountInString(text) > MinParagraphRunes {
			found = Truncate(text, MaxBodyRunes)
			return false
		}
		return true
	})
	return found
}

// Truncate cuts s to max runes and appends TruncationMarker when it had to cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max])) + TruncationMarker
}

func attrFold(s *goquery.Selection, name, want string) bool {
	v, ok := s.Attr(name)
	return ok && strings.EqualFold(strings.TrimSpace(v), want)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
