package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookshelf/internal/logger"
	"bookshelf/internal/models"
	"bookshelf/internal/repository"
)

// Domain errors for book flows.
var (
	ErrMissingBookFields = errors.New("title, author, and status are required")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrDuplicateBook     = errors.New("book already exists in your collection")
	ErrBookNotFound      = errors.New("book not found")
)

const (
	minRating = 1
	maxRating = 5
)

type BookService struct {
	books  repository.BookRepo
	events repository.EventRepo
	covers CoverLookup
	log    *logger.Logger
}

func NewBookService(books repository.BookRepo, events repository.EventRepo, covers CoverLookup, log *logger.Logger) *BookService {
	if log == nil {
		log = logger.Nop()
	}
	return &BookService{books: books, events: events, covers: covers, log: log}
}

// normalizeBookInput trims the required fields and validates them.
func normalizeBookInput(in models.BookInput) (models.BookInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Status = strings.TrimSpace(in.Status)
	if in.Title == "" || in.Author == "" || in.Status == "" {
		return in, ErrMissingBookFields
	}
	if in.Rating != nil && (*in.Rating < minRating || *in.Rating > maxRating) {
		return in, ErrInvalidRating
	}
	return in, nil
}

// List returns the caller's books in storage order.
func (s *BookService) List(ctx context.Context, userID int) ([]models.Book, error) {
	return s.books.ListByUser(ctx, userID)
}

// Add validates the input, rejects a duplicate (title, author) for this user,
// enriches the cover image (best effort) and stores the book.
func (s *BookService) Add(ctx context.Context, userID int, in models.BookInput) (*models.Book, error) {
	in, err := normalizeBookInput(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.books.FindByTitleAuthor(ctx, userID, in.Title, in.Author)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateBook
	}

	b := models.Book{
		Title:  in.Title,
		Author: in.Author,
		Status: in.Status,
		Rating: in.Rating,
		Review: in.Review,
		UserID: userID,
	}
	if s.covers != nil {
		b.CoverImageURL = s.covers.LookupCover(ctx, in.Title, in.Author)
	}

	id, err := s.books.Create(ctx, b)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrDuplicateBook
	}
	if err != nil {
		return nil, err
	}
	b.ID = id

	s.record(ctx, userID, id, models.EventBookAdded, fmt.Sprintf("Added %q by %s", b.Title, b.Author), map[string]any{
		"title":  b.Title,
		"author": b.Author,
		"status": b.Status,
	})
	return &b, nil
}

// Update fully replaces the user-editable fields of an owned book. The cover
// image is kept as is.
func (s *BookService) Update(ctx context.Context, userID, bookID int, in models.BookInput) (*models.Book, error) {
	in, err := normalizeBookInput(in)
	if err != nil {
		return nil, err
	}

	current, err := s.books.GetOwned(ctx, bookID, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrBookNotFound
	}

	if in.Title != current.Title || in.Author != current.Author {
		clash, err := s.books.FindByTitleAuthor(ctx, userID, in.Title, in.Author)
		if err != nil {
			return nil, err
		}
		if clash != nil && clash.ID != bookID {
			return nil, ErrDuplicateBook
		}
	}

	updated := *current
	updated.Title = in.Title
	updated.Author = in.Author
	updated.Status = in.Status
	updated.Rating = in.Rating
	updated.Review = in.Review

	ok, err := s.books.Update(ctx, updated)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrDuplicateBook
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		// deleted between the ownership check and the update
		return nil, ErrBookNotFound
	}

	meta := map[string]any{"status": updated.Status}
	if current.Status != updated.Status {
		meta["previous_status"] = current.Status
	}
	s.record(ctx, userID, bookID, models.EventBookUpdated, fmt.Sprintf("Updated %q", updated.Title), meta)
	return &updated, nil
}

// Delete removes an owned book.
func (s *BookService) Delete(ctx context.Context, userID, bookID int) error {
	current, err := s.books.GetOwned(ctx, bookID, userID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrBookNotFound
	}

	ok, err := s.books.Delete(ctx, bookID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBookNotFound
	}

	s.record(ctx, userID, bookID, models.EventBookDeleted, fmt.Sprintf("Deleted %q", current.Title), map[string]any{
		"title":  current.Title,
		"author": current.Author,
	})
	return nil
}

// record appends an activity event. Failures are logged and never fail the caller.
func (s *BookService) record(ctx context.Context, userID, bookID int, typ, desc string, meta map[string]any) {
	if s.events == nil {
		return
	}
	err := s.events.Append(ctx, models.BookEvent{
		UserID:      userID,
		BookID:      bookID,
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
	if err != nil {
		s.log.Warnw("book_event_append_failed", "user_id", userID, "book_id", bookID, "type", typ, "err", err)
	}
}
