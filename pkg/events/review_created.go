// Package events defines the payloads exchanged over RabbitMQ between
// the API and the background workers.
package events

import "time"

// ReviewCreated is published after a review and its extracted tags are
// persisted. The indexer worker consumes it to refresh the product's
// search document; the store stays the single source of truth, the
// message only names what changed.
type ReviewCreated struct {
	ReviewID  string    `json:"review_id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Rating    *int      `json:"rating,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
