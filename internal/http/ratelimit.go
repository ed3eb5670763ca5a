package http

import (
	"fmt"
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	applog "orcamento/internal/log"
)

// newRateLimitMiddleware limits requests per client IP using an in-memory
// store. rate uses the limiter format, e.g. "60-M".
func newRateLimitMiddleware(rate string, logger *applog.Logger) (func(http.Handler) http.Handler, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("parse rate limit %q: %w", rate, err)
	}
	instance := limiter.New(memory.NewStore(), parsed)
	rlLogger := logger.WithComponent(applog.ComponentRateLimit)

	mw := stdlib.NewMiddleware(instance,
		stdlib.WithKeyGetter(extractClientIP),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			rlLogger.WarnContext(r.Context(), "Rate limit exceeded",
				applog.FieldClientIP, extractClientIP(r),
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later", nil)
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			rlLogger.ErrorContext(r.Context(), "Rate limit check failed", applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "internal error", nil)
		}),
	)
	return mw.Handler, nil
}
