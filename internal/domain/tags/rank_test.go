package tags

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shoprates/ratings-review-api/internal/domain/entity"
)

func tagRows(values ...string) []entity.Tag {
	rows := make([]entity.Tag, 0, len(values))
	for _, v := range values {
		rows = append(rows, entity.Tag{Tag: v})
	}
	return rows
}

func TestRank(t *testing.T) {
	tests := []struct {
		name string
		rows []entity.Tag
		want []TagCount
	}{
		{
			name: "empty input",
			rows: nil,
			want: []TagCount{},
		},
		{
			name: "counts descending",
			rows: tagRows("fast", "fast", "cheap"),
			want: []TagCount{{Tag: "fast", Count: 2}, {Tag: "cheap", Count: 1}},
		},
		{
			name: "ties keep first-occurrence order",
			rows: tagRows("zebra", "apple", "zebra", "apple", "mango"),
			want: []TagCount{
				{Tag: "zebra", Count: 2},
				{Tag: "apple", Count: 2},
				{Tag: "mango", Count: 1},
			},
		},
		{
			name: "later heavy hitter still ranks first",
			rows: tagRows("cheap", "fast", "fast", "fast"),
			want: []TagCount{{Tag: "fast", Count: 3}, {Tag: "cheap", Count: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rank(tt.rows))
		})
	}
}

func TestRankTruncatesAtTen(t *testing.T) {
	var rows []entity.Tag
	for i := 0; i < 25; i++ {
		rows = append(rows, entity.Tag{Tag: fmt.Sprintf("tag%02d", i)})
	}
	ranked := Rank(rows)
	assert.Len(t, ranked, MaxRanked)
	// All counts equal, so first-occurrence order decides the cut.
	assert.Equal(t, "tag00", ranked[0].Tag)
	assert.Equal(t, "tag09", ranked[len(ranked)-1].Tag)
}

func TestRankIdempotent(t *testing.T) {
	rows := tagRows("battery", "screen", "battery", "camera", "screen", "battery")
	assert.Equal(t, Rank(rows), Rank(rows))
}
