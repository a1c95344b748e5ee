package httpx

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
)

// Recoverer turns a panic in next into a logged error handed to fail.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
// When the response has already started nothing more is written.
func Recoverer(logger *log.Logger, fail func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				var err error
				if cause, ok := v.(error); ok {
					err = fmt.Errorf("%w: %w", ErrPanic, cause)
				} else {
					err = fmt.Errorf("%w: %v", ErrPanic, v)
				}
				logger.Printf("panic method=%s path=%q request_id=%s error=%q stack=%q",
					r.Method, r.URL.Path, RequestIDFrom(r), err.Error(), debug.Stack())

				if !headerWritten(w) {
					fail(w, r, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// ErrPanic marks errors built from a recovered panic.
var ErrPanic = errors.New("handler panicked")
