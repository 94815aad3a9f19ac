package service

import (
	"context"

	"bookshelf/internal/models"
	"bookshelf/internal/repository"
)

// LeaderboardSize is the number of users returned by the leaderboard.
const LeaderboardSize = 10

type LeaderboardService struct {
	repo repository.LeaderboardRepo
}

func NewLeaderboardService(repo repository.LeaderboardRepo) *LeaderboardService {
	return &LeaderboardService{repo: repo}
}

// Top returns up to LeaderboardSize users ordered by read count desc, then username asc.
func (s *LeaderboardService) Top(ctx context.Context) ([]models.LeaderboardEntry, error) {
	return s.repo.TopReaders(ctx, models.StatusRead, LeaderboardSize)
}
