package http

import (
	"context"
	"net/http"

	"bookcatalog/internal/entity"
)

func (h *CatalogHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.ListBooks(r.Context())
	writeList(w, r, books, err)
}

func (h *CatalogHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	book, err := h.svc.GetBook(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := h.bookView(r.Context(), book)
	writeOne(w, r, view, err)
}

func (h *CatalogHandler) GetBookByISBN(w http.ResponseWriter, r *http.Request) {
	book, err := h.svc.GetBookByISBN(r.Context(), r.PathValue("isbn"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := h.bookView(r.Context(), book)
	writeOne(w, r, view, err)
}

func (h *CatalogHandler) bookView(ctx context.Context, book entity.Book) (bookView, error) {
	authors, err := h.svc.AuthorsOfBook(ctx, book.ID)
	if err != nil {
		return bookView{}, err
	}
	categories, err := h.svc.CategoriesOfBook(ctx, book.ID)
	if err != nil {
		return bookView{}, err
	}
	view := bookView{
		Book:        book,
		AuthorIDs:   make([]int64, 0, len(authors)),
		CategoryIDs: make([]int64, 0, len(categories)),
	}
	for _, a := range authors {
		view.AuthorIDs = append(view.AuthorIDs, a.ID)
	}
	for _, c := range categories {
		view.CategoryIDs = append(view.CategoryIDs, c.ID)
	}
	return view, nil
}

func (h *CatalogHandler) BookRating(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	summary, err := h.svc.BookRatingSummary(r.Context(), id)
	writeOne(w, r, summary, err)
}

func (h *CatalogHandler) AuthorsOfBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	authors, err := h.svc.AuthorsOfBook(r.Context(), id)
	writeList(w, r, authors, err)
}

func (h *CatalogHandler) CategoriesOfBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	categories, err := h.svc.CategoriesOfBook(r.Context(), id)
	writeList(w, r, categories, err)
}

func (h *CatalogHandler) ReviewsOfBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	reviews, err := h.svc.ReviewsOfBook(r.Context(), id)
	writeList(w, r, reviews, err)
}

func (h *CatalogHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if !decodeBody(w, r, &req) {
		return
	}
	book, err := h.svc.CreateBook(r.Context(), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := h.bookView(r.Context(), book)
	writeCreated(w, r, view, err)
}

func (h *CatalogHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req bookRequest
	if !decodeBody(w, r, &req) {
		return
	}
	book, err := h.svc.UpdateBook(r.Context(), id, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := h.bookView(r.Context(), book)
	writeOne(w, r, view, err)
}

func (h *CatalogHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	writeDeleted(w, r, h.svc.DeleteBook(r.Context(), id))
}
