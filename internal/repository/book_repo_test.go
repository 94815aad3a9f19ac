package repository

import (
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"bookshelf/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var bookCols = []string{"id", "title", "author", "status", "rating", "review", "cover_image_url", "user_id"}

func TestBookSQLite_ListByUser(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewBookSQLite(db)

	rows := sqlmock.NewRows(bookCols).
		AddRow(1, "Dune", "Herbert", "Read", 5, "great", "http://img/1", 9).
		AddRow(2, "Emma", "Austen", "Reading", nil, nil, "", 9)
	mock.ExpectQuery(regexp.QuoteMeta(selectBooksByUserSQL)).
		WithArgs(9).
		WillReturnRows(rows)

	got, err := repo.ListByUser(ctx(t), 9)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 books, got %d", len(got))
	}
	if got[0].Rating == nil || *got[0].Rating != 5 || got[0].Review == nil || *got[0].Review != "great" {
		t.Fatalf("unexpected first book: %+v", got[0])
	}
	if got[1].Rating != nil || got[1].Review != nil {
		t.Fatalf("expected NULL rating/review to scan as nil, got %+v", got[1])
	}
}

func TestBookSQLite_ListByUser_EmptyIsNotNil(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewBookSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectBooksByUserSQL)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(bookCols))

	got, err := repo.ListByUser(ctx(t), 1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestBookSQLite_GetOwned(t *testing.T) {
	tests := []struct {
		name     string
		expect   func(sqlmock.Sqlmock)
		wantBook bool
		wantErr  bool
	}{
		{
			name: "owned",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectOwnedBookSQL)).
					WithArgs(4, 2).
					WillReturnRows(sqlmock.NewRows(bookCols).AddRow(4, "Dune", "Herbert", "Read", nil, nil, "", 2))
			},
			wantBook: true,
		},
		{
			name: "missing or foreign",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectOwnedBookSQL)).
					WithArgs(4, 2).
					WillReturnError(sql.ErrNoRows)
			},
		},
		{
			name: "query error",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectOwnedBookSQL)).
					WithArgs(4, 2).
					WillReturnError(errors.New("disk I/O error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newMockDB(t)
			defer cleanup()
			repo := NewBookSQLite(db)
			tt.expect(mock)

			b, err := repo.GetOwned(ctx(t), 4, 2)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "select book") {
					t.Fatalf("expected wrapped select error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (b != nil) != tt.wantBook {
				t.Fatalf("book presence: got %+v, want present=%v", b, tt.wantBook)
			}
		})
	}
}

func TestBookSQLite_FindByTitleAuthor_ArgOrder(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewBookSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectBookByTitleAuthorSQL)).
		WithArgs("Dune", "Herbert", 3).
		WillReturnRows(sqlmock.NewRows(bookCols).AddRow(8, "Dune", "Herbert", "Read", nil, nil, "", 3))

	b, err := repo.FindByTitleAuthor(ctx(t), 3, "Dune", "Herbert")
	if err != nil || b == nil || b.ID != 8 {
		t.Fatalf("FindByTitleAuthor = %+v, %v", b, err)
	}
}

func TestBookSQLite_Create(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewBookSQLite(db)

	rating := 4
	mock.ExpectExec(regexp.QuoteMeta(insertBookSQL)).
		WithArgs("Dune", "Herbert", "Read", 4, nil, "http://img", 3).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertBookSQL)).
		WillReturnError(errors.New("readonly database"))

	id, err := repo.Create(ctx(t), models.Book{
		Title: "Dune", Author: "Herbert", Status: "Read", Rating: &rating, CoverImageURL: "http://img", UserID: 3,
	})
	if err != nil || id != 11 {
		t.Fatalf("Create = %d, %v; want 11, nil", id, err)
	}

	_, err = repo.Create(ctx(t), models.Book{Title: "X", Author: "Y", Status: "Read", UserID: 3})
	if err == nil || !strings.Contains(err.Error(), "insert book") {
		t.Fatalf("expected insert error, got %v", err)
	}
}

func TestBookSQLite_UpdateAndDelete_RowsAffected(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewBookSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(updateBookSQL)).
		WithArgs("Dune", "Herbert", "Reading", nil, nil, 5, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(updateBookSQL)).
		WithArgs("Dune", "Herbert", "Reading", nil, nil, 5, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteBookSQL)).
		WithArgs(5, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteBookSQL)).
		WithArgs(5, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	b := models.Book{ID: 5, Title: "Dune", Author: "Herbert", Status: "Reading", UserID: 1}
	if ok, err := repo.Update(ctx(t), b); err != nil || !ok {
		t.Fatalf("owner update = %v, %v; want true, nil", ok, err)
	}
	b.UserID = 2
	if ok, err := repo.Update(ctx(t), b); err != nil || ok {
		t.Fatalf("foreign update = %v, %v; want false, nil", ok, err)
	}
	if ok, err := repo.Delete(ctx(t), 5, 1); err != nil || !ok {
		t.Fatalf("owner delete = %v, %v; want true, nil", ok, err)
	}
	if ok, err := repo.Delete(ctx(t), 5, 2); err != nil || ok {
		t.Fatalf("foreign delete = %v, %v; want false, nil", ok, err)
	}
}

func TestLeaderboardSQLite_TopReaders(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewLeaderboardSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectTopReadersSQL)).
		WithArgs(models.StatusRead, 10).
		WillReturnRows(sqlmock.NewRows([]string{"username", "books_read"}).
			AddRow("ann", 3).
			AddRow("ben", 1).
			AddRow("cat", 0))

	got, err := repo.TopReaders(ctx(t), models.StatusRead, 10)
	if err != nil {
		t.Fatalf("TopReaders: %v", err)
	}
	want := []models.LeaderboardEntry{{Username: "ann", BooksRead: 3}, {Username: "ben", BooksRead: 1}, {Username: "cat", BooksRead: 0}}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
