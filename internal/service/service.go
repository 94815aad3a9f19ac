package service

import (
	"context"

	"bookshelf/internal/logger"
	"bookshelf/internal/models"
	"bookshelf/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	SignIn(ctx context.Context, username, password string) (Session, error)
	ParseToken(accessToken string) (int, error)
	CurrentUser(ctx context.Context, userID int) (*models.User, error)
}

// Books exposes the caller-scoped book operations.
type Books interface {
	List(ctx context.Context, userID int) ([]models.Book, error)
	Add(ctx context.Context, userID int, in models.BookInput) (*models.Book, error)
	Update(ctx context.Context, userID, bookID int, in models.BookInput) (*models.Book, error)
	Delete(ctx context.Context, userID, bookID int) error
}

// Leaderboard ranks users by finished books.
type Leaderboard interface {
	Top(ctx context.Context) ([]models.LeaderboardEntry, error)
}

// ActivityLog exposes a user's append-only book history with filtering.
type ActivityLog interface {
	List(ctx context.Context, userID int, f ActivityFilter) ([]models.BookEvent, error)
}

// CoverLookup finds a cover image URL for a book; "" means none.
type CoverLookup interface {
	LookupCover(ctx context.Context, title, author string) string
}

// Service aggregates all sub-services consumed by the HTTP layer.
type Service struct {
	Authorization
	Books
	Leaderboard
	ActivityLog
}

// Deps are the non-repository collaborators built from configuration.
type Deps struct {
	Sessions *SessionManager
	Covers   CoverLookup
	Log      *logger.Logger
}

func NewService(repos *repository.Repository, deps Deps) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, deps.Sessions),
		Books:         NewBookService(repos.Books, repos.EventRepo, deps.Covers, deps.Log),
		Leaderboard:   NewLeaderboardService(repos.Leaderboard),
		ActivityLog:   NewActivityLogService(repos.EventRepo),
	}
}
