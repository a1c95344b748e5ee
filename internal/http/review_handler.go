package http

import "net/http"

func (h *CatalogHandler) ListReviewers(w http.ResponseWriter, r *http.Request) {
	reviewers, err := h.svc.ListReviewers(r.Context())
	writeList(w, r, reviewers, err)
}

func (h *CatalogHandler) GetReviewer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	reviewer, err := h.svc.GetReviewer(r.Context(), id)
	writeOne(w, r, reviewer, err)
}

func (h *CatalogHandler) ReviewsByReviewer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	reviews, err := h.svc.ReviewsByReviewer(r.Context(), id)
	writeList(w, r, reviews, err)
}

func (h *CatalogHandler) CreateReviewer(w http.ResponseWriter, r *http.Request) {
	var req reviewerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	reviewer, err := h.svc.CreateReviewer(r.Context(), req.toReviewer())
	writeCreated(w, r, reviewer, err)
}

func (h *CatalogHandler) UpdateReviewer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req reviewerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	reviewer, err := h.svc.UpdateReviewer(r.Context(), id, req.toReviewer())
	writeOne(w, r, reviewer, err)
}

func (h *CatalogHandler) DeleteReviewer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	writeDeleted(w, r, h.svc.DeleteReviewer(r.Context(), id))
}

func (h *CatalogHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.ListReviews(r.Context())
	writeList(w, r, reviews, err)
}

func (h *CatalogHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	review, err := h.svc.GetReview(r.Context(), id)
	writeOne(w, r, review, err)
}

func (h *CatalogHandler) BookOfReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	book, err := h.svc.BookOfReview(r.Context(), id)
	writeOne(w, r, book, err)
}

func (h *CatalogHandler) ReviewerOfReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	reviewer, err := h.svc.ReviewerOfReview(r.Context(), id)
	writeOne(w, r, reviewer, err)
}

func (h *CatalogHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	review, err := h.svc.CreateReview(r.Context(), req.toReview())
	writeCreated(w, r, review, err)
}

func (h *CatalogHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req reviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	review, err := h.svc.UpdateReview(r.Context(), id, req.toReview())
	writeOne(w, r, review, err)
}

func (h *CatalogHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	writeDeleted(w, r, h.svc.DeleteReview(r.Context(), id))
}
