package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shopai/shopai-go/internal/metrics"
)

// slowRequestThreshold is the duration above which requests are logged at
// WARN level. AI-backed endpoints routinely exceed it; the log level makes
// them easy to pick out.
const slowRequestThreshold = 2 * time.Second

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LoggingMiddleware logs every request with timing and records it in the
// metrics collector. mc may be nil.
func LoggingMiddleware(logger *slog.Logger, mc *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			if mc != nil {
				if rec.status >= http.StatusInternalServerError {
					mc.RecordFailure(metrics.OpHTTPRequest, duration)
				} else {
					mc.RecordTiming(metrics.OpHTTPRequest, duration)
				}
			}

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", duration.Milliseconds(),
			}
			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("request failed", attrs...)
			case duration > slowRequestThreshold:
				logger.Warn("slow request", attrs...)
			default:
				logger.Debug("request completed", attrs...)
			}
		})
	}
}
