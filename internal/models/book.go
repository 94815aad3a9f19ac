package models

// StatusRead marks a book as finished; only this status counts towards the leaderboard.
const StatusRead = "Read"

// Book is a row of the books table.
type Book struct {
	ID            int     `db:"id"`
	Title         string  `db:"title"`
	Author        string  `db:"author"`
	Status        string  `db:"status"`          // To be read | Reading | Read, not enforced
	Rating        *int    `db:"rating"`          // nil when unrated
	Review        *string `db:"review"`          // nil when no review
	CoverImageURL string  `db:"cover_image_url"` // empty when enrichment found nothing
	UserID        int     `db:"user_id"`
}

// BookResponse is the JSON shape of a book returned by the API.
type BookResponse struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Status        string  `json:"status"`
	Rating        *int    `json:"rating"`
	Review        *string `json:"review"`
	CoverImageURL string  `json:"cover_image_url"`
	UserID        int     `json:"user_id"`
}

func (b *Book) ToResponse() BookResponse {
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Status:        b.Status,
		Rating:        b.Rating,
		Review:        b.Review,
		CoverImageURL: b.CoverImageURL,
		UserID:        b.UserID,
	}
}

// BookInput carries the user-editable fields of a book for add and update.
type BookInput struct {
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Status string  `json:"status"`
	Rating *int    `json:"rating"`
	Review *string `json:"review"`
}
