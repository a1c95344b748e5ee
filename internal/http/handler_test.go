package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookcatalog/internal/httpx"
	"bookcatalog/internal/store"
	"bookcatalog/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details []httpx.ErrorDetail `json:"details"`
	} `json:"error"`
	Meta map[string]any `json:"meta"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	svc := usecase.NewCatalogService(store.NewMemoryStore(), usecase.WithLogger(log.New(io.Discard, "", 0)))
	router := NewRouter(NewCatalogHandler(svc), nil)
	return &testServer{
		t:       t,
		handler: httpx.Chain(router, httpx.RequestIDMiddleware, httpx.RequestSizeLimitMiddleware(1<<10)),
	}
}

func (s *testServer) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Code != http.StatusNoContent && rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

// create posts body and returns the id of the created row.
func (s *testServer) create(path string, body any) int64 {
	s.t.Helper()
	rec, env := s.do(http.MethodPost, path, body)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var row struct {
		ID int64 `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &row))
	return row.ID
}

type seeded struct {
	country, author, category, reviewer int64
}

func (s *testServer) seed() seeded {
	var ids seeded
	ids.country = s.create("/v1/countries", map[string]any{"name": "United Kingdom"})
	ids.author = s.create("/v1/authors", map[string]any{"first_name": "Terry", "last_name": "Pratchett", "country_id": ids.country})
	ids.category = s.create("/v1/categories", map[string]any{"name": "Fantasy"})
	ids.reviewer = s.create("/v1/reviewers", map[string]any{"first_name": "Ada", "last_name": "Critic"})
	return ids
}

func (s *testServer) createBook(ids seeded, isbn string) int64 {
	return s.create("/v1/books", map[string]any{
		"isbn":           isbn,
		"title":          "Guards! Guards!",
		"date_published": "1989-11-01",
		"author_ids":     []int64{ids.author},
		"category_ids":   []int64{ids.category},
	})
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ReadyFailure(t *testing.T) {
	router := NewRouter(NewCatalogHandler(usecase.NewCatalogService(store.NewMemoryStore())), func(ctx context.Context) error {
		return errors.New("down")
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBooks_CreateAndGet(t *testing.T) {
	s := newTestServer(t)
	ids := s.seed()
	bookID := s.createBook(ids, "978-0575042155")

	rec, env := s.do(http.MethodGet, fmt.Sprintf("/v1/books/%d", bookID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Meta["request_id"])

	var view struct {
		ISBN          string  `json:"isbn"`
		DatePublished string  `json:"date_published"`
		AuthorIDs     []int64 `json:"author_ids"`
		CategoryIDs   []int64 `json:"category_ids"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "978-0575042155", view.ISBN)
	assert.Contains(t, view.DatePublished, "1989-11-01")
	assert.Equal(t, []int64{ids.author}, view.AuthorIDs)
	assert.Equal(t, []int64{ids.category}, view.CategoryIDs)

	rec, _ = s.do(http.MethodGet, "/v1/isbn/978-0575042155", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(http.MethodGet, "/v1/books", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, env.Meta["count"])
}

func TestBooks_EmptyListIsArray(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(http.MethodGet, "/v1/books", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", string(env.Data))
	assert.EqualValues(t, 0, env.Meta["count"])
}

func TestBooks_RuleViolationsAre422(t *testing.T) {
	s := newTestServer(t)
	ids := s.seed()
	s.createBook(ids, "978-0575042155")

	rec, env := s.do(http.MethodPost, "/v1/books", map[string]any{
		"isbn":         "978-0575042155",
		"title":        "Duplicate",
		"author_ids":   []int64{},
		"category_ids": []int64{999},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_conflict", env.Error.Code)

	rules := map[string]bool{}
	for _, d := range env.Error.Details {
		rules[d.Rule] = true
	}
	assert.True(t, rules[string(usecase.RuleDuplicateISBN)])
	assert.True(t, rules[string(usecase.RuleMissingAuthors)])
	assert.True(t, rules[string(usecase.RuleUnknownCategory)])
}

func TestBooks_MalformedRequests(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"bad id", http.MethodGet, "/v1/books/abc", nil, http.StatusBadRequest, "invalid_id"},
		{"zero id", http.MethodDelete, "/v1/books/0", nil, http.StatusBadRequest, "invalid_id"},
		{"not json", http.MethodPost, "/v1/books", "{", http.StatusBadRequest, "invalid_body"},
		{"unknown field", http.MethodPost, "/v1/books", `{"isbn":"1","genre":"x"}`, http.StatusBadRequest, "invalid_body"},
		{"bad date", http.MethodPost, "/v1/books", `{"isbn":"1","title":"t","date_published":"01/11/1989"}`, http.StatusBadRequest, "invalid_body"},
		{"negative link", http.MethodPost, "/v1/books", `{"isbn":"1","title":"t","author_ids":[-1]}`, http.StatusBadRequest, "invalid_body"},
		{"missing", http.MethodGet, "/v1/books/42", nil, http.StatusNotFound, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, env.Error.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestBooks_BodyTooLarge(t *testing.T) {
	s := newTestServer(t)
	big := fmt.Sprintf(`{"isbn":"1","title":%q}`, string(bytes.Repeat([]byte("x"), 4<<10)))

	rec, env := s.do(http.MethodPost, "/v1/books", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "payload_too_large", env.Error.Code)
}

func TestBooks_RatingAndDelete(t *testing.T) {
	s := newTestServer(t)
	ids := s.seed()
	bookID := s.createBook(ids, "978-0575042155")

	for _, rating := range []int{3, 5} {
		s.create("/v1/reviews", map[string]any{
			"headline":    "Review",
			"rating":      rating,
			"book_id":     bookID,
			"reviewer_id": ids.reviewer,
		})
	}

	rec, env := s.do(http.MethodGet, fmt.Sprintf("/v1/books/%d/rating", bookID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary usecase.RatingSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 4.0, summary.Average)
	assert.Equal(t, 2, summary.Count)

	rec, _ = s.do(http.MethodDelete, fmt.Sprintf("/v1/books/%d", bookID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = s.do(http.MethodGet, "/v1/reviews", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, env.Meta["count"])

	rec, _ = s.do(http.MethodGet, fmt.Sprintf("/v1/books/%d/rating", bookID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthors_DeleteWithBooksIs409(t *testing.T) {
	s := newTestServer(t)
	ids := s.seed()
	bookID := s.createBook(ids, "978-0575042155")

	rec, env := s.do(http.MethodDelete, fmt.Sprintf("/v1/authors/%d", ids.author), nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "has_dependents", env.Error.Code)

	rec, env = s.do(http.MethodGet, fmt.Sprintf("/v1/authors/%d/books", ids.author), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, env.Meta["count"])

	rec, _ = s.do(http.MethodDelete, fmt.Sprintf("/v1/books/%d", bookID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = s.do(http.MethodDelete, fmt.Sprintf("/v1/authors/%d", ids.author), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCountries_DuplicateNameAndRelations(t *testing.T) {
	s := newTestServer(t)
	ids := s.seed()

	rec, env := s.do(http.MethodPost, "/v1/countries", map[string]any{"name": "  united kingdom "})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotEmpty(t, env.Error.Details)
	assert.Equal(t, string(usecase.RuleDuplicateName), env.Error.Details[0].Rule)

	rec, env = s.do(http.MethodGet, fmt.Sprintf("/v1/countries/%d/authors", ids.country), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, env.Meta["count"])

	rec, env = s.do(http.MethodGet, fmt.Sprintf("/v1/authors/%d/country", ids.author), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "United Kingdom")

	rec, _ = s.do(http.MethodDelete, fmt.Sprintf("/v1/countries/%d", ids.country), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestReviews_Relations(t *testing.T) {
	s := newTestServer(t)
	ids := s.seed()
	bookID := s.createBook(ids, "978-0575042155")
	reviewID := s.create("/v1/reviews", map[string]any{
		"headline":    "Wonderful",
		"rating":      5,
		"book_id":     bookID,
		"reviewer_id": ids.reviewer,
	})

	rec, env := s.do(http.MethodGet, fmt.Sprintf("/v1/reviews/%d/book", reviewID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "978-0575042155")

	rec, env = s.do(http.MethodGet, fmt.Sprintf("/v1/reviews/%d/reviewer", reviewID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Ada")

	rec, env = s.do(http.MethodPost, "/v1/reviews", map[string]any{
		"headline":    "Out of range",
		"rating":      9,
		"book_id":     bookID,
		"reviewer_id": ids.reviewer,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "rating", env.Error.Details[0].Field)

	rec, _ = s.do(http.MethodDelete, fmt.Sprintf("/v1/reviewers/%d", ids.reviewer), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = s.do(http.MethodGet, fmt.Sprintf("/v1/reviews/%d", reviewID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(http.MethodPatch, "/v1/books", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNewRouter_PatternsDoNotOverlap(t *testing.T) {
	svc := usecase.NewCatalogService(store.NewMemoryStore())
	assert.NotPanics(t, func() { NewRouter(NewCatalogHandler(svc), nil) })
}

func TestRouter_EveryRouteReachesItsHandler(t *testing.T) {
	s := newTestServer(t)
	ids := s.seed()
	bookID := s.createBook(ids, "978-0575042155")
	reviewID := s.create("/v1/reviews", map[string]any{
		"headline": "Fine", "rating": 4, "book_id": bookID, "reviewer_id": ids.reviewer,
	})

	paths := []string{
		"/v1/books",
		fmt.Sprintf("/v1/books/%d", bookID),
		fmt.Sprintf("/v1/books/%d/rating", bookID),
		fmt.Sprintf("/v1/books/%d/authors", bookID),
		fmt.Sprintf("/v1/books/%d/categories", bookID),
		fmt.Sprintf("/v1/books/%d/reviews", bookID),
		"/v1/isbn/978-0575042155",
		fmt.Sprintf("/v1/authors/%d", ids.author),
		fmt.Sprintf("/v1/authors/%d/books", ids.author),
		fmt.Sprintf("/v1/authors/%d/country", ids.author),
		fmt.Sprintf("/v1/categories/%d", ids.category),
		fmt.Sprintf("/v1/categories/%d/books", ids.category),
		fmt.Sprintf("/v1/countries/%d", ids.country),
		fmt.Sprintf("/v1/countries/%d/authors", ids.country),
		fmt.Sprintf("/v1/reviewers/%d", ids.reviewer),
		fmt.Sprintf("/v1/reviewers/%d/reviews", ids.reviewer),
		fmt.Sprintf("/v1/reviews/%d", reviewID),
		fmt.Sprintf("/v1/reviews/%d/book", reviewID),
		fmt.Sprintf("/v1/reviews/%d/reviewer", reviewID),
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec, env := s.do(http.MethodGet, path, nil)
			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.True(t, env.Success)
		})
	}
}

func TestBooks_UnknownISBNIsJSON404(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(http.MethodGet, "/v1/isbn/978-0000000000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", env.Error.Code)
}

func TestBooks_CreateReturnsStoredLinks(t *testing.T) {
	s := newTestServer(t)
	ids := s.seed()

	rec, env := s.do(http.MethodPost, "/v1/books", map[string]any{
		"isbn":         "978-0575042155",
		"title":        "Guards! Guards!",
		"author_ids":   []int64{ids.author, ids.author},
		"category_ids": []int64{ids.category, ids.category},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var view struct {
		AuthorIDs   []int64 `json:"author_ids"`
		CategoryIDs []int64 `json:"category_ids"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, []int64{ids.author}, view.AuthorIDs)
	assert.Equal(t, []int64{ids.category}, view.CategoryIDs)
}

func TestRecoveryMiddleware_UsesErrorEnvelope(t *testing.T) {
	logs := &bytes.Buffer{}
	handler := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic("nil map write") }),
		httpx.RequestIDMiddleware,
		RecoveryMiddleware(log.New(logs, "", 0)),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/books", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "internal_error", env.Error.Code)
	assert.NotEmpty(t, env.Meta["request_id"])
	assert.Contains(t, logs.String(), "nil map write")
}
