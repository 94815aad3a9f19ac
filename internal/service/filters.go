package service

import "time"

// ActivityFilter supports history filtering by time range and event type.
type ActivityFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "BOOK_ADDED", "BOOK_UPDATED", "BOOK_DELETED"
}
