package models

// LeaderboardEntry is one row of the "books read" ranking.
type LeaderboardEntry struct {
	Username  string `db:"username" json:"username"`
	BooksRead int    `db:"books_read" json:"books_read"`
}
