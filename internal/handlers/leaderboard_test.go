package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookshelf/internal/models"
	"bookshelf/internal/service"
)

func TestLeaderboardHandler_PublicAndOrdered(t *testing.T) {
	lb := &mockLeaderboard{entries: []models.LeaderboardEntry{
		{Username: "zed", BooksRead: 3},
		{Username: "amy", BooksRead: 1},
	}}
	r := newTestRouter(&service.Service{Leaderboard: lb})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var out []models.LeaderboardEntry
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[0].Username != "zed" || out[0].BooksRead != 3 {
		t.Fatalf("unexpected leaderboard %+v", out)
	}
}

func TestLeaderboardHandler_Error(t *testing.T) {
	r := newTestRouter(&service.Service{Leaderboard: &mockLeaderboard{err: errors.New("boom")}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", w.Code)
	}
}
