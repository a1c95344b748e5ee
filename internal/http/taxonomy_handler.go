package http

import (
	"net/http"

	"bookcatalog/internal/entity"
)

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	writeList(w, r, categories, err)
}

func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	category, err := h.svc.GetCategory(r.Context(), id)
	writeOne(w, r, category, err)
}

func (h *CatalogHandler) BooksOfCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	books, err := h.svc.BooksOfCategory(r.Context(), id)
	writeList(w, r, books, err)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	category, err := h.svc.CreateCategory(r.Context(), entity.Category{Name: req.Name})
	writeCreated(w, r, category, err)
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req nameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	category, err := h.svc.UpdateCategory(r.Context(), id, entity.Category{Name: req.Name})
	writeOne(w, r, category, err)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	writeDeleted(w, r, h.svc.DeleteCategory(r.Context(), id))
}

func (h *CatalogHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.svc.ListCountries(r.Context())
	writeList(w, r, countries, err)
}

func (h *CatalogHandler) GetCountry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	country, err := h.svc.GetCountry(r.Context(), id)
	writeOne(w, r, country, err)
}

func (h *CatalogHandler) AuthorsOfCountry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	authors, err := h.svc.AuthorsOfCountry(r.Context(), id)
	writeList(w, r, authors, err)
}

func (h *CatalogHandler) CreateCountry(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	country, err := h.svc.CreateCountry(r.Context(), entity.Country{Name: req.Name})
	writeCreated(w, r, country, err)
}

func (h *CatalogHandler) UpdateCountry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req nameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	country, err := h.svc.UpdateCountry(r.Context(), id, entity.Country{Name: req.Name})
	writeOne(w, r, country, err)
}

func (h *CatalogHandler) DeleteCountry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	writeDeleted(w, r, h.svc.DeleteCountry(r.Context(), id))
}
