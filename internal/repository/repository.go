package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookshelf/internal/models"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicate is returned when an insert or update violates a unique constraint.
var ErrDuplicate = errors.New("duplicate row")

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// BookRepo scopes every lookup and mutation by the owning user.
type BookRepo interface {
	ListByUser(ctx context.Context, userID int) ([]models.Book, error)
	GetOwned(ctx context.Context, id, userID int) (*models.Book, error)
	FindByTitleAuthor(ctx context.Context, userID int, title, author string) (*models.Book, error)
	Create(ctx context.Context, b models.Book) (int, error)
	Update(ctx context.Context, b models.Book) (bool, error)
	Delete(ctx context.Context, id, userID int) (bool, error)
}

type LeaderboardRepo interface {
	TopReaders(ctx context.Context, status string, limit int) ([]models.LeaderboardEntry, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.BookEvent) error
	List(ctx context.Context, userID int, from, to time.Time, typ string) ([]models.BookEvent, error)
}

type Repository struct {
	Auth        Authorization
	Books       BookRepo
	Leaderboard LeaderboardRepo
	EventRepo   EventRepo
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Auth:        NewUserRepository(db),
		Books:       NewBookSQLite(db),
		Leaderboard: NewLeaderboardSQLite(db),
		EventRepo:   NewEventSQLite(db),
	}
}

// isUniqueViolation reports whether err is a SQLite UNIQUE/PRIMARY KEY constraint failure.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(se.Error(), "UNIQUE")
	}
	return false
}
