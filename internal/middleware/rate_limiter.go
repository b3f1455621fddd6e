package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const (
	// DefaultSubmitsPerMinute bounds registration attempts per client IP.
	DefaultSubmitsPerMinute = 10
	// DefaultFormOpensPerMinute bounds new form sessions per client IP.
	DefaultFormOpensPerMinute = 30
)

// RateLimiter limits each client IP to perMinute requests per minute on the
// routes it is applied to, allowing a burst of the full minute's budget.
func RateLimiter(perMinute int) echo.MiddlewareFunc {
	if perMinute <= 0 {
		perMinute = DefaultSubmitsPerMinute
	}
	config := middleware.RateLimiterConfig{
		// In-memory counts are enough for a single instance.
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(perMinute) / 60),
			Burst:     perMinute,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			FromContext(c.Request().Context()).Warn("Rate limit exceeded", "client_ip", identifier)
			return c.String(http.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	}
	return middleware.RateLimiterWithConfig(config)
}
