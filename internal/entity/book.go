package entity

import "time"

// Book is a catalog entry. Authors and categories are attached through
// BookAuthor and BookCategory rows, never stored on the book itself.
type Book struct {
	ID            int64      `json:"id"`
	ISBN          string     `json:"isbn" validate:"required,notblank,max=20"`
	Title         string     `json:"title" validate:"required,notblank,max=200"`
	DatePublished *time.Time `json:"date_published,omitempty"`
}

// BookAuthor is the join row between a book and one of its authors.
type BookAuthor struct {
	BookID   int64 `json:"book_id"`
	AuthorID int64 `json:"author_id"`
}

// BookCategory is the join row between a book and one of its categories.
type BookCategory struct {
	BookID     int64 `json:"book_id"`
	CategoryID int64 `json:"category_id"`
}
