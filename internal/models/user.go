package models

// User is the stored account row. It is never written to a response directly;
// handlers expose only the username.
type User struct {
	ID           int    `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"` // don't expose hash
}
