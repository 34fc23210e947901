package inmem

import (
	"sort"
	"strings"
)

func sortedValues[V any](m map[int]V, id func(V) int) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}

// window applies offset/limit; limit < 0 means all.
func window[V any](items []V, offset, limit int) []V {
	if offset >= len(items) {
		return []V{}
	}
	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
