package tags

import (
	"sort"

	"github.com/shoprates/ratings-review-api/internal/domain/entity"
)

// TagCount is one entry of a product's ranked tag list.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Rank groups a product's tag rows by exact value and returns at most
// MaxRanked entries ordered by descending count. Grouping preserves
// first-occurrence order, and the sort is stable, so tied tags keep
// that order. Empty input yields an empty list, not an error.
func Rank(rows []entity.Tag) []TagCount {
	counts := make(map[string]int, len(rows))
	order := make([]string, 0, len(rows))
	for _, row := range rows {
		if counts[row.Tag] == 0 {
			order = append(order, row.Tag)
		}
		counts[row.Tag]++
	}

	ranked := make([]TagCount, 0, len(order))
	for _, tag := range order {
		ranked = append(ranked, TagCount{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > MaxRanked {
		ranked = ranked[:MaxRanked]
	}
	return ranked
}
