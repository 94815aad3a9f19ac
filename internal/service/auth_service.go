package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookshelf/internal/models"
	"bookshelf/internal/repository"
)

// Domain errors for auth flows.
var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// Session is the result of a successful sign-in.
type Session struct {
	Token     string
	ExpiresAt time.Time
	UserID    int
	Username  string
}

// AuthService handles user auth logic
type AuthService struct {
	authRepo repository.Authorization
	sessions *SessionManager
}

func NewAuthService(repo repository.Authorization, sessions *SessionManager) *AuthService {
	return &AuthService{authRepo: repo, sessions: sessions}
}

// SignUp checks the username is free, hashes the password and creates the user.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (int, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return 0, ErrMissingCredentials
	}

	existing, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrUsernameTaken
	}

	hash, err := hashPassword(password)
	if err != nil {
		if errors.Is(err, errEmptyPassword) {
			return 0, ErrMissingCredentials
		}
		return 0, err
	}

	id, err := s.authRepo.Create(ctx, username, hash)
	if errors.Is(err, repository.ErrDuplicate) {
		// lost a race with a concurrent sign-up
		return 0, ErrUsernameTaken
	}
	return id, err
}

// SignIn validates credentials and issues a session token.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (Session, error) {
	if username == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}
	u, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return Session{}, err
	}
	if u == nil {
		return Session{}, ErrInvalidCredentials
	}

	ok, err := verifyPassword(u.PasswordHash, password)
	if err != nil {
		return Session{}, fmt.Errorf("user %d: %w", u.ID, err)
	}
	if !ok {
		return Session{}, ErrInvalidCredentials
	}

	token, exp, err := s.sessions.Issue(u.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp, UserID: u.ID, Username: u.Username}, nil
}

// ParseToken parses a session token and returns the user id.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	return s.sessions.Parse(accessToken)
}

// CurrentUser loads the account behind a session. A user that no longer
// exists yields ErrUserNotFound.
func (s *AuthService) CurrentUser(ctx context.Context, userID int) (*models.User, error) {
	u, err := s.authRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
