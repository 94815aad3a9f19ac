package models

import "time"

// Book activity event types.
const (
	EventBookAdded   = "BOOK_ADDED"
	EventBookUpdated = "BOOK_UPDATED"
	EventBookDeleted = "BOOK_DELETED"
)

// BookEvent is a single entry of a user's reading activity log.
type BookEvent struct {
	EventID     string    `json:"event_id"`
	UserID      int       `json:"-"`
	BookID      int       `json:"book_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // BOOK_ADDED | BOOK_UPDATED | BOOK_DELETED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
