package repository

import (
	"context"
	"fmt"

	"bookshelf/internal/models"

	"github.com/jmoiron/sqlx"
)

type LeaderboardSQLite struct {
	db *sqlx.DB
}

func NewLeaderboardSQLite(db *sqlx.DB) *LeaderboardSQLite {
	return &LeaderboardSQLite{db: db}
}

var _ LeaderboardRepo = (*LeaderboardSQLite)(nil)

// Users without matching books still appear with a zero count.
const selectTopReadersSQL = `
	SELECT users.username AS username, COUNT(books.id) AS books_read
	FROM users
	LEFT JOIN books ON users.id = books.user_id AND books.status = ?
	GROUP BY users.id, users.username
	ORDER BY books_read DESC, users.username ASC
	LIMIT ?
`

// TopReaders ranks users by the number of books with the given status.
func (r *LeaderboardSQLite) TopReaders(ctx context.Context, status string, limit int) ([]models.LeaderboardEntry, error) {
	out := make([]models.LeaderboardEntry, 0, limit)
	if err := r.db.SelectContext(ctx, &out, selectTopReadersSQL, status, limit); err != nil {
		return nil, fmt.Errorf("select top readers: %w", err)
	}
	return out, nil
}
