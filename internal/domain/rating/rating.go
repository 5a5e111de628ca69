// Package rating turns raw review rows into the summary a product page
// displays. Summaries are derived views: they are recomputed from rows
// on every read and never cached or stored.
package rating

import "github.com/shoprates/ratings-review-api/internal/domain/entity"

// Summary is a product's aggregated rating.
// Average carries full float precision; rounding for display (one
// decimal for star widgets) is the presentation layer's business.
type Summary struct {
	Average float64 `json:"average_rating"`
	Count   int     `json:"review_count"`
}

// Aggregate computes the rating summary over a product's reviews.
// Count is the number of rows, whether or not they carry a rating.
// Average is the arithmetic mean of the non-nil ratings only; when
// every rating is nil (or there are no rows) it is 0.0, never NaN.
func Aggregate(reviews []entity.Review) Summary {
	s := Summary{Count: len(reviews)}
	sum, rated := 0, 0
	for _, r := range reviews {
		if r.Rating != nil {
			sum += *r.Rating
			rated++
		}
	}
	if rated > 0 {
		s.Average = float64(sum) / float64(rated)
	}
	return s
}
