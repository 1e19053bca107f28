package service

import (
	"strings"

	"github.com/yourorg/stock-tracker/internal/model"
)

// dedupIndex tracks the three independent dedup key spaces for one fetch
// invocation: numeric ids, URLs, and case-folded headlines. It is never
// persisted across invocations.
type dedupIndex struct {
	ids       map[int64]struct{}
	urls      map[string]struct{}
	headlines map[string]struct{}
}

func newDedupIndex() *dedupIndex {
	return &dedupIndex{
		ids:       make(map[int64]struct{}),
		urls:      make(map[string]struct{}),
		headlines: make(map[string]struct{}),
	}
}

// Seen reports whether the article matches any previously recorded key, and
// records all three of its keys when it does not. An article matching even
// one key space is a duplicate.
func (d *dedupIndex) Seen(a model.RawNewsArticle) bool {
	headline := strings.ToLower(a.Headline)

	if _, ok := d.ids[a.ID]; ok {
		return true
	}
	if _, ok := d.urls[a.URL]; ok {
		return true
	}
	if _, ok := d.headlines[headline]; ok {
		return true
	}

	d.ids[a.ID] = struct{}{}
	d.urls[a.URL] = struct{}{}
	d.headlines[headline] = struct{}{}
	return false
}
