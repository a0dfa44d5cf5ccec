package snapshot

import (
	"slices"

	"github.com/deusflow/ainexus/internal/catalog"
	"github.com/deusflow/ainexus/internal/news"
)

// Snapshot is the document a run produces.
type Snapshot struct {
	News    []news.Item              `json:"news"`
	Ranks   catalog.Ranks            `json:"ranks"`
	Prompts []catalog.PromptTemplate `json:"prompts"`
}

// Assemble aggregates the parts without touching them; news order is display order.
func Assemble(items []news.Item, ranks catalog.Ranks, prompts []catalog.PromptTemplate) *Snapshot {
	s := &Snapshot{
		News:    slices.Clone(items),
		Ranks:   ranks,
		Prompts: slices.Clone(prompts),
	}
	if s.News == nil {
		s.News = []news.Item{}
	}
	if s.Prompts == nil {
		s.Prompts = []catalog.PromptTemplate{}
	}
	if s.Ranks == nil {
		s.Ranks = catalog.Ranks{}
	}
	return s
}
