package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/nfrund/signup/internal/registration"
)

const localizerKey = "localizer"

// Locale picks the response language from the Accept-Language header. A
// "lang" query parameter takes precedence.
func Locale(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		pref := c.Request().Header.Get("Accept-Language")
		if lang := c.QueryParam("lang"); lang != "" {
			pref = lang
		}
		c.Set(localizerKey, registration.NewLocalizer(pref))
		return next(c)
	}
}

// LocalizerFrom returns the localizer chosen by Locale, falling back to
// English when the middleware did not run.
func LocalizerFrom(c echo.Context) *registration.Localizer {
	if l, ok := c.Get(localizerKey).(*registration.Localizer); ok {
		return l
	}
	return registration.NewLocalizer("")
}
