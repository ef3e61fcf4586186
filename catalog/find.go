package catalog

import (
	"context"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Find returns the entry for pattern and question. An exact match on the
// trimmed, case-folded pair wins; otherwise the closest fuzzy match among
// entries of a matching pattern is used.
func (i *Index) Find(ctx context.Context, pattern, question string) mo.Option[Entry] {
	return Match(i.Load(ctx), pattern, question)
}

// Match is Find over an explicit list of entries.
func Match(entries []Entry, pattern, question string) mo.Option[Entry] {
	p, q := normalize(pattern), normalize(question)

	exact, ok := lo.Find(entries, func(e Entry) bool {
		return normalize(e.Pattern) == p && normalize(e.Question) == q
	})
	if ok {
		return mo.Some(exact)
	}

	if q == "" {
		return mo.None[Entry]()
	}

	candidates := lo.Filter(entries, func(e Entry, _ int) bool {
		ep := normalize(e.Pattern)
		return ep == p || (p != "" && fuzzy.MatchNormalizedFold(p, ep))
	})
	if len(candidates) == 0 {
		return mo.None[Entry]()
	}

	questions := lo.Map(candidates, func(e Entry, _ int) string {
		return normalize(e.Question)
	})

	ranks := fuzzy.RankFindNormalizedFold(q, questions)
	if len(ranks) == 0 {
		return mo.None[Entry]()
	}

	best := lo.MinBy(ranks, func(a, b fuzzy.Rank) bool {
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		return levenshtein.Distance(q, a.Target) < levenshtein.Distance(q, b.Target)
	})

	return mo.Some(candidates[best.OriginalIndex])
}

// Patterns returns the distinct patterns in entries, in first-seen order.
func Patterns(entries []Entry) []string {
	return lo.Uniq(lo.Map(entries, func(e Entry, _ int) string {
		return e.Pattern
	}))
}

// Questions returns the questions filed under pattern, or every question when
// pattern is empty.
func Questions(entries []Entry, pattern string) []string {
	p := normalize(pattern)
	return lo.FilterMap(entries, func(e Entry, _ int) (string, bool) {
		return e.Question, p == "" || normalize(e.Pattern) == p
	})
}
