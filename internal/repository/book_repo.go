package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookshelf/internal/models"

	"github.com/jmoiron/sqlx"
)

type BookSQLite struct {
	db *sqlx.DB
}

func NewBookSQLite(db *sqlx.DB) *BookSQLite {
	return &BookSQLite{db: db}
}

var _ BookRepo = (*BookSQLite)(nil)

const bookColumns = `id, title, author, status, rating, review, COALESCE(cover_image_url, '') AS cover_image_url, user_id`

const (
	selectBooksByUserSQL = `SELECT ` + bookColumns + ` FROM books WHERE user_id = ? ORDER BY id`

	selectOwnedBookSQL = `SELECT ` + bookColumns + ` FROM books WHERE id = ? AND user_id = ?`

	selectBookByTitleAuthorSQL = `SELECT ` + bookColumns + ` FROM books WHERE title = ? AND author = ? AND user_id = ?`

	insertBookSQL = `
		INSERT INTO books (title, author, status, rating, review, cover_image_url, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	updateBookSQL = `
		UPDATE books
		SET title = ?, author = ?, status = ?, rating = ?, review = ?
		WHERE id = ? AND user_id = ?
	`

	deleteBookSQL = `DELETE FROM books WHERE id = ? AND user_id = ?`
)

// ListByUser returns all books of a user in insertion order.
func (r *BookSQLite) ListByUser(ctx context.Context, userID int) ([]models.Book, error) {
	books := make([]models.Book, 0)
	if err := r.db.SelectContext(ctx, &books, selectBooksByUserSQL, userID); err != nil {
		return nil, fmt.Errorf("select books for user %d: %w", userID, err)
	}
	return books, nil
}

// GetOwned returns the book only if it belongs to userID. Returns (nil, nil) otherwise.
func (r *BookSQLite) GetOwned(ctx context.Context, id, userID int) (*models.Book, error) {
	return r.getOne(ctx, selectOwnedBookSQL, id, userID)
}

// FindByTitleAuthor looks up a user's book by exact title and author. Returns (nil, nil) if absent.
func (r *BookSQLite) FindByTitleAuthor(ctx context.Context, userID int, title, author string) (*models.Book, error) {
	return r.getOne(ctx, selectBookByTitleAuthorSQL, title, author, userID)
}

func (r *BookSQLite) getOne(ctx context.Context, query string, args ...any) (*models.Book, error) {
	var b models.Book
	if err := r.db.GetContext(ctx, &b, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select book %v: %w", args, err)
	}
	return &b, nil
}

// Create inserts a book and returns its ID. A (user, title, author) collision yields ErrDuplicate.
func (r *BookSQLite) Create(ctx context.Context, b models.Book) (int, error) {
	res, err := r.db.ExecContext(ctx, insertBookSQL,
		b.Title, b.Author, b.Status, b.Rating, b.Review, b.CoverImageURL, b.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("insert book %q: %w", b.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for book %q: %w", b.Title, err)
	}
	return int(lastID), nil
}

// Update replaces title, author, status, rating and review of an owned book.
// It reports false when no owned row matched.
func (r *BookSQLite) Update(ctx context.Context, b models.Book) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateBookSQL,
		b.Title, b.Author, b.Status, b.Rating, b.Review, b.ID, b.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return false, ErrDuplicate
		}
		return false, fmt.Errorf("update book %d: %w", b.ID, err)
	}
	return affectedOne(res, "update book", b.ID)
}

// Delete removes an owned book. It reports false when no owned row matched.
func (r *BookSQLite) Delete(ctx context.Context, id, userID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteBookSQL, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete book %d: %w", id, err)
	}
	return affectedOne(res, "delete book", id)
}

func affectedOne(res sql.Result, op string, id int) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s %d rows affected: %w", op, id, err)
	}
	return n > 0, nil
}
