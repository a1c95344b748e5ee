package http

import (
	"context"
	"net/http"
	"time"

	"bookcatalog/internal/httpx"
)

// ReadyFunc reports whether the backing store can serve requests.
type ReadyFunc func(ctx context.Context) error

// NewRouter registers the health checks and the /v1 catalog routes.
func NewRouter(h *CatalogHandler, ready ReadyFunc) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := ready(ctx); err != nil {
				httpx.JSONErrorWithRequest(r, w, http.StatusServiceUnavailable, "not_ready", "store not ready", nil)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /v1/books", h.ListBooks)
	router.HandleFunc("POST /v1/books", h.CreateBook)
	router.HandleFunc("GET /v1/books/{id}", h.GetBook)
	router.HandleFunc("PUT /v1/books/{id}", h.UpdateBook)
	router.HandleFunc("DELETE /v1/books/{id}", h.DeleteBook)
	router.HandleFunc("GET /v1/books/{id}/rating", h.BookRating)
	router.HandleFunc("GET /v1/books/{id}/authors", h.AuthorsOfBook)
	router.HandleFunc("GET /v1/books/{id}/categories", h.CategoriesOfBook)
	router.HandleFunc("GET /v1/books/{id}/reviews", h.ReviewsOfBook)

	// ISBN lookups sit outside /v1/books/{id} so the patterns never overlap.
	router.HandleFunc("GET /v1/isbn/{isbn}", h.GetBookByISBN)

	router.HandleFunc("GET /v1/authors", h.ListAuthors)
	router.HandleFunc("POST /v1/authors", h.CreateAuthor)
	router.HandleFunc("GET /v1/authors/{id}", h.GetAuthor)
	router.HandleFunc("PUT /v1/authors/{id}", h.UpdateAuthor)
	router.HandleFunc("DELETE /v1/authors/{id}", h.DeleteAuthor)
	router.HandleFunc("GET /v1/authors/{id}/books", h.BooksOfAuthor)
	router.HandleFunc("GET /v1/authors/{id}/country", h.CountryOfAuthor)

	router.HandleFunc("GET /v1/categories", h.ListCategories)
	router.HandleFunc("POST /v1/categories", h.CreateCategory)
	router.HandleFunc("GET /v1/categories/{id}", h.GetCategory)
	router.HandleFunc("PUT /v1/categories/{id}", h.UpdateCategory)
	router.HandleFunc("DELETE /v1/categories/{id}", h.DeleteCategory)
	router.HandleFunc("GET /v1/categories/{id}/books", h.BooksOfCategory)

	router.HandleFunc("GET /v1/countries", h.ListCountries)
	router.HandleFunc("POST /v1/countries", h.CreateCountry)
	router.HandleFunc("GET /v1/countries/{id}", h.GetCountry)
	router.HandleFunc("PUT /v1/countries/{id}", h.UpdateCountry)
	router.HandleFunc("DELETE /v1/countries/{id}", h.DeleteCountry)
	router.HandleFunc("GET /v1/countries/{id}/authors", h.AuthorsOfCountry)

	router.HandleFunc("GET /v1/reviewers", h.ListReviewers)
	router.HandleFunc("POST /v1/reviewers", h.CreateReviewer)
	router.HandleFunc("GET /v1/reviewers/{id}", h.GetReviewer)
	router.HandleFunc("PUT /v1/reviewers/{id}", h.UpdateReviewer)
	router.HandleFunc("DELETE /v1/reviewers/{id}", h.DeleteReviewer)
	router.HandleFunc("GET /v1/reviewers/{id}/reviews", h.ReviewsByReviewer)

	router.HandleFunc("GET /v1/reviews", h.ListReviews)
	router.HandleFunc("POST /v1/reviews", h.CreateReview)
	router.HandleFunc("GET /v1/reviews/{id}", h.GetReview)
	router.HandleFunc("PUT /v1/reviews/{id}", h.UpdateReview)
	router.HandleFunc("DELETE /v1/reviews/{id}", h.DeleteReview)
	router.HandleFunc("GET /v1/reviews/{id}/book", h.BookOfReview)
	router.HandleFunc("GET /v1/reviews/{id}/reviewer", h.ReviewerOfReview)

	return router
}
