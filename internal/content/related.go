package content

import (
	"sort"
	"strings"
)

// Related ranks the candidate pool by tag overlap with the current item
// and returns the top entries. The score is the count of shared tags
// (case-insensitive) divided by the larger of the two tag counts, so
// identical non-empty tag sets score exactly 1.0. Candidates sharing no
// tags are dropped, the current item is excluded by slug, and ties keep
// pool order. A limit of zero or less defaults to 3.
func Related[T Item](current T, pool []T, limit int) []T {
	if limit <= 0 {
		limit = 3
	}

	cur := current.Info()
	curTags := make(map[string]bool, len(cur.Tags))
	for _, t := range cur.Tags {
		curTags[strings.ToLower(t)] = true
	}

	type scored struct {
		item  T
		score float64
	}
	var results []scored
	for _, cand := range pool {
		m := cand.Info()
		if m.Slug == cur.Slug {
			continue
		}
		denom := len(cur.Tags)
		if len(m.Tags) > denom {
			denom = len(m.Tags)
		}
		if denom == 0 {
			// Both tag sets empty: no basis for similarity.
			continue
		}
		common := 0
		for _, t := range m.Tags {
			if curTags[strings.ToLower(t)] {
				common++
			}
		}
		score := float64(common) / float64(denom)
		if score > 0 {
			results = append(results, scored{item: cand, score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	out := make([]T, len(results))
	for i, r := range results {
		out[i] = r.item
	}
	return out
}
