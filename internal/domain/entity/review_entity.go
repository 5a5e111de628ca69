package entity

import "time"

// Review is a single user's take on a product. Rating is optional so a
// text-only review stays representable; a review carrying neither a
// rating nor text is rejected before it ever reaches the store.
// A (user, product) pair has at most one review, enforced by a unique
// constraint in Postgres.
type Review struct {
	ID        string
	UserID    string
	ProductID string
	Rating    *int
	Text      string
	Images    []string
	CreatedAt time.Time

	// Username is populated on joined reads for display; it is not a
	// column of the reviews table.
	Username string
}
