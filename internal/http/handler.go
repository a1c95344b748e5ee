package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"
	"bookcatalog/internal/usecase"
)

// CatalogHandler exposes the catalog service as JSON over HTTP.
type CatalogHandler struct {
	svc *usecase.CatalogService
}

func NewCatalogHandler(svc *usecase.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// RecoveryMiddleware answers a panicking handler with the same
// internal_error envelope writeError uses for unexpected failures.
func RecoveryMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return httpx.Recoverer(logger, writeError)
}

// pathID parses the {name} wildcard as a positive id, writing a 400 when it
// is not one.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "invalid_id", name+" must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

// decodeBody reads a JSON body into dst and checks its shape.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.JSONErrorWithRequest(r, w, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body too large", nil)
			return false
		}
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "invalid_body", "Request body must be a valid JSON object", nil)
		return false
	}
	if details := ValidateStruct(dst); len(details) > 0 {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "invalid_body", "Request body failed validation", details)
		return false
	}
	return true
}

// writeError maps a catalog error onto a status code and error envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var conflict *usecase.ConflictError
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.As(err, &conflict):
		status, code := http.StatusUnprocessableEntity, "validation_conflict"
		if conflict.Violations.Has(usecase.RuleHasDependents) {
			status, code = http.StatusConflict, "has_dependents"
		}
		details := make([]httpx.ErrorDetail, 0, len(conflict.Violations))
		for _, v := range conflict.Violations {
			details = append(details, httpx.ErrorDetail{Field: v.Field, Rule: string(v.Rule), Message: v.Message})
		}
		httpx.JSONErrorWithRequest(r, w, status, code, "The request violates catalog rules", details)
	case errors.Is(err, usecase.ErrPersistence):
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "persistence_failure", "The change could not be saved", nil)
	default:
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "internal_error", "An internal error occurred", nil)
	}
}

func writeList[T any](w http.ResponseWriter, r *http.Request, items []T, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	httpx.JSONSuccessWithRequest(r, w, items, map[string]any{"count": len(items)})
}

func writeOne(w http.ResponseWriter, r *http.Request, item any, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, item, nil)
}

func writeCreated(w http.ResponseWriter, r *http.Request, item any, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccessCreatedWithRequest(r, w, item)
}

func writeDeleted(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
