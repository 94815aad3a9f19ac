package handlers

import (
	"context"
	"net/http"

	"bookshelf/internal/models"
	"bookshelf/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID  int
	signUpErr error
	session   service.Session
	signInErr error
	parseID   int
	parseErr  error
	user      *models.User
	userErr   error

	lastSignUpUsername string
	lastSignUpPassword string
	lastSignInUsername string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) SignIn(_ context.Context, username, password string) (service.Session, error) {
	m.lastSignInUsername = username
	return m.session, m.signInErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}
func (m *mockAuth) CurrentUser(_ context.Context, userID int) (*models.User, error) {
	return m.user, m.userErr
}

type mockBooks struct {
	listResp []models.Book
	listErr  error
	addResp  *models.Book
	addErr   error
	updResp  *models.Book
	updErr   error
	delErr   error

	lastUserID int
	lastBookID int
	lastInput  models.BookInput
	calls      int
}

func (m *mockBooks) List(_ context.Context, userID int) ([]models.Book, error) {
	m.calls++
	m.lastUserID = userID
	return m.listResp, m.listErr
}
func (m *mockBooks) Add(_ context.Context, userID int, in models.BookInput) (*models.Book, error) {
	m.calls++
	m.lastUserID = userID
	m.lastInput = in
	return m.addResp, m.addErr
}
func (m *mockBooks) Update(_ context.Context, userID, bookID int, in models.BookInput) (*models.Book, error) {
	m.calls++
	m.lastUserID = userID
	m.lastBookID = bookID
	m.lastInput = in
	return m.updResp, m.updErr
}
func (m *mockBooks) Delete(_ context.Context, userID, bookID int) error {
	m.calls++
	m.lastUserID = userID
	m.lastBookID = bookID
	return m.delErr
}

type mockLeaderboard struct {
	entries []models.LeaderboardEntry
	err     error
}

func (m *mockLeaderboard) Top(_ context.Context) ([]models.LeaderboardEntry, error) {
	return m.entries, m.err
}

type mockActivity struct {
	resp       []models.BookEvent
	err        error
	lastUserID int
	lastFilter service.ActivityFilter
}

func (m *mockActivity) List(_ context.Context, userID int, f service.ActivityFilter) ([]models.BookEvent, error) {
	m.lastUserID = userID
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, Options{AllowedOrigins: []string{"http://localhost:3000"}})
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withAuth(req *http.Request, token string) *http.Request {
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}

func intPtr(v int) *int { return &v }
