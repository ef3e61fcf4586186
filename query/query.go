// Package query ranks catalog questions by how often they were looked up.
package query

import (
	"strings"
	"sync"

	"github.com/babua-dev/clipper/filesystem"
	"github.com/babua-dev/clipper/key"
	"github.com/babua-dev/clipper/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

var cacher = gache.New[map[string]*queryRecord](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var (
	suggestionMu    sync.Mutex
	suggestionCache = make(map[string][]*queryRecord)
)

// Remember records a looked up question or increases its rank by weight.
func Remember(q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*queryRecord)
	}

	if record, ok := cached[q]; ok {
		record.Rank += weight
	} else {
		cached[q] = &queryRecord{Rank: weight, Query: q}
	}

	suggestionMu.Lock()
	clear(suggestionCache)
	suggestionMu.Unlock()

	return cacher.Set(cached)
}

// Suggest returns the highest ranked remembered question matching q.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns remembered questions fuzzily matching q, highest rank first.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.CatalogSuggestions) {
		return []string{}
	}

	return lo.Map(records(sanitize(q)), func(r *queryRecord, _ int) string {
		return r.Query
	})
}

// Order sorts candidates so remembered questions come first, highest rank
// first. The rest keep their relative order.
func Order(candidates []string) []string {
	ordered := slices.Clone(candidates)
	if !viper.GetBool(key.CatalogSuggestions) {
		return ordered
	}

	ranks := lo.SliceToMap(records(""), func(r *queryRecord) (string, int) {
		return r.Query, r.Rank
	})

	slices.SortStableFunc(ordered, func(a, b string) int {
		return ranks[sanitize(b)] - ranks[sanitize(a)]
	})
	return ordered
}

func records(q string) []*queryRecord {
	suggestionMu.Lock()
	defer suggestionMu.Unlock()

	if prev, ok := suggestionCache[q]; ok {
		return prev
	}

	cached, expired, err := cacher.Get()
	if err != nil || expired || cached == nil {
		return nil
	}

	var matched []*queryRecord
	for _, record := range cached {
		if fuzzy.Match(q, record.Query) {
			matched = append(matched, record)
		}
	}

	slices.SortFunc(matched, func(a, b *queryRecord) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Query, b.Query)
	})

	suggestionCache[q] = matched
	return matched
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
