package httpx

import (
	"log"
	"net/http"
	"time"
)

// statusRecorder remembers the status and size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	bytes   int64
	written bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if rw.written {
		return
	}
	rw.status = code
	rw.written = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += int64(n)
	return n, err
}

func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// headerWritten reports whether w already sent a status line.
func headerWritten(w http.ResponseWriter) bool {
	rw, ok := w.(*statusRecorder)
	return ok && rw.written
}

// AccessLog writes one line per request. route is the matched ServeMux
// pattern, empty when nothing matched.
func AccessLog(logger *log.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			logger.Printf("access method=%s route=%q path=%q status=%d bytes=%d duration_ms=%d request_id=%s",
				r.Method, r.Pattern, r.URL.Path, rw.status, rw.bytes,
				time.Since(start).Milliseconds(), RequestIDFrom(r))
		})
	}
}
