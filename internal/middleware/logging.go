package middleware

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIdHeader = "X-Request-ID"

type loggingWriter struct {
	http.ResponseWriter
	statusCode int
	hijacked   bool
}

func (w *loggingWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *loggingWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	w.hijacked = true
	return h.Hijack()
}

// Logging tags every request with a fresh id, echoed in the response
// headers and carried by the entry returned from [LogEntry].
func Logging(logger *logrus.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestId := uuid.NewString()
			entry := logger.WithField("request_id", requestId)
			w.Header().Set(RequestIdHeader, requestId)

			entry.Infof("--> %s %s", r.Method, r.URL.RequestURI())
			start := time.Now()

			wrapped := &loggingWriter{ResponseWriter: w, statusCode: http.StatusOK}
			ctx := context.WithValue(r.Context(), CtxLogEntry, entry)
			next.ServeHTTP(wrapped, r.WithContext(ctx))

			code := wrapped.statusCode
			entry.WithFields(logrus.Fields{
				"duration_ms": time.Since(start).Milliseconds(),
				"hijacked":    wrapped.hijacked,
				"remote_addr": r.RemoteAddr,
				"xff_header":  r.Header.Get("X-Forwarded-For"),
			}).Infof("<-- %d %s", code, http.StatusText(code))
		})
	}
}

func LogEntry(r *http.Request) (*logrus.Entry, bool) {
	entry, ok := r.Context().Value(CtxLogEntry).(*logrus.Entry)
	return entry, ok
}
