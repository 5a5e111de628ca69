package entity

import "time"

// Tag associates a review with one keyword derived from its text.
// Duplicates within a review are possible input but are suppressed in
// practice by extraction.
type Tag struct {
	ID        int64 // serial; orders tags within one review's insert batch
	ReviewID  string
	Tag       string
	CreatedAt time.Time
}
