package content

import (
	"fmt"
	"sort"
	"strings"
)

// Index operations: pure views over an already-materialized list. None
// of them touch storage.

// BySlug finds the item with an exact slug match. With duplicate slugs
// the first match wins.
func BySlug[T Item](items []T, slug string) (T, error) {
	for _, it := range items {
		if it.Info().Slug == slug {
			return it, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("slug %q: %w", slug, ErrNotFound)
}

// Filter keeps the items the predicate accepts, preserving input order.
func Filter[T Item](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Featured returns up to limit featured items in input order. A limit of
// zero or less means no truncation.
func Featured[T Item](items []T, limit int) []T {
	out := Filter(items, func(it T) bool { return it.Info().Featured })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// UniqueValues collects the extracted values across all items into a
// deduplicated, lexicographically sorted list.
func UniqueValues[T any](items []T, extract func(T) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		for _, v := range extract(it) {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// UniqueTags collects every tag used by the items, sorted.
func UniqueTags[T Item](items []T) []string {
	return UniqueValues(items, func(it T) []string { return it.Info().Tags })
}

// Search scores items against a whitespace-tokenized, case-insensitive
// query. Per token: an exact title match scores 10, a title substring 5,
// a description substring 3, and each tag containing the token 2. Items
// scoring zero are dropped; ties keep input order.
func Search[T Item](items []T, query string, limit int) []T {
	if limit <= 0 {
		limit = 10
	}
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil
	}

	type scored struct {
		item  T
		score int
	}
	var results []scored
	for _, it := range items {
		m := it.Info()
		title := strings.ToLower(m.Title)
		desc := strings.ToLower(m.Description)
		tags := make([]string, len(m.Tags))
		for i, t := range m.Tags {
			tags[i] = strings.ToLower(t)
		}

		score := 0
		for _, tok := range tokens {
			if title == tok {
				score += 10
			} else if strings.Contains(title, tok) {
				score += 5
			}
			if strings.Contains(desc, tok) {
				score += 3
			}
			for _, tag := range tags {
				if strings.Contains(tag, tok) {
					score += 2
				}
			}
		}
		if score > 0 {
			results = append(results, scored{item: it, score: score})
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

func stableSortBy[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}
