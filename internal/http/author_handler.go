package http

import "net/http"

func (h *CatalogHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.svc.ListAuthors(r.Context())
	writeList(w, r, authors, err)
}

func (h *CatalogHandler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	author, err := h.svc.GetAuthor(r.Context(), id)
	writeOne(w, r, author, err)
}

func (h *CatalogHandler) BooksOfAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	books, err := h.svc.BooksOfAuthor(r.Context(), id)
	writeList(w, r, books, err)
}

func (h *CatalogHandler) CountryOfAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	country, err := h.svc.CountryOfAuthor(r.Context(), id)
	writeOne(w, r, country, err)
}

func (h *CatalogHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	author, err := h.svc.CreateAuthor(r.Context(), req.toAuthor())
	writeCreated(w, r, author, err)
}

func (h *CatalogHandler) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req authorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	author, err := h.svc.UpdateAuthor(r.Context(), id, req.toAuthor())
	writeOne(w, r, author, err)
}

func (h *CatalogHandler) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	writeDeleted(w, r, h.svc.DeleteAuthor(r.Context(), id))
}
