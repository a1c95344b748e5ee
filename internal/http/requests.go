package http

import (
	"time"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/usecase"
)

const dateLayout = "2006-01-02"

type bookRequest struct {
	ISBN          string  `json:"isbn"`
	Title         string  `json:"title"`
	DatePublished *string `json:"date_published" validate:"omitempty,datetime=2006-01-02"`
	AuthorIDs     []int64 `json:"author_ids" validate:"dive,gt=0"`
	CategoryIDs   []int64 `json:"category_ids" validate:"dive,gt=0"`
}

func (b bookRequest) input() usecase.BookInput {
	in := usecase.BookInput{
		Book:        entity.Book{ISBN: b.ISBN, Title: b.Title},
		AuthorIDs:   b.AuthorIDs,
		CategoryIDs: b.CategoryIDs,
	}
	if b.DatePublished != nil {
		// Format already checked by the datetime tag.
		if d, err := time.Parse(dateLayout, *b.DatePublished); err == nil {
			in.Book.DatePublished = &d
		}
	}
	return in
}

// bookView is a book with the ids it is linked to.
type bookView struct {
	entity.Book
	AuthorIDs   []int64 `json:"author_ids"`
	CategoryIDs []int64 `json:"category_ids"`
}

type authorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CountryID int64  `json:"country_id"`
}

func (a authorRequest) toAuthor() entity.Author {
	return entity.Author{FirstName: a.FirstName, LastName: a.LastName, CountryID: a.CountryID}
}

type nameRequest struct {
	Name string `json:"name"`
}

type reviewerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r reviewerRequest) toReviewer() entity.Reviewer {
	return entity.Reviewer{FirstName: r.FirstName, LastName: r.LastName}
}

type reviewRequest struct {
	Headline   string `json:"headline"`
	ReviewText string `json:"review_text"`
	Rating     int    `json:"rating"`
	BookID     int64  `json:"book_id"`
	ReviewerID int64  `json:"reviewer_id"`
}

func (r reviewRequest) toReview() entity.Review {
	return entity.Review{
		Headline:   r.Headline,
		ReviewText: r.ReviewText,
		Rating:     r.Rating,
		BookID:     r.BookID,
		ReviewerID: r.ReviewerID,
	}
}
