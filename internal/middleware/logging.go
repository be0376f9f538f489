package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// loggedWriter records the status code and byte count a handler
// produced so the access log can report them.
type loggedWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (lw *loggedWriter) WriteHeader(status int) {
	lw.status = status
	lw.ResponseWriter.WriteHeader(status)
}

func (lw *loggedWriter) Write(b []byte) (int, error) {
	n, err := lw.ResponseWriter.Write(b)
	lw.bytes += n
	return n, err
}

// Flush implements http.Flusher when the underlying writer does
func (lw *loggedWriter) Flush() {
	if f, ok := lw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Logging emits one access-log line per request: method, path, status,
// response size and elapsed time.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lw := &loggedWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(lw, r)

			logger.Info("http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", lw.status),
				slog.Int("size", lw.bytes),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
