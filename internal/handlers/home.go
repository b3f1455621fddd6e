package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/signup/internal/middleware"
	"github.com/nfrund/signup/internal/registration"
	"github.com/nfrund/signup/internal/view"
	"github.com/nfrund/signup/web/src/templates/layouts"
	"github.com/nfrund/signup/web/src/templates/pages"
)

// HomeHandler handles requests for the home page.
type HomeHandler struct {
	forms *registration.Store
}

// NewHomeHandler creates a new HomeHandler. forms is only read for the
// health report.
func NewHomeHandler(forms *registration.Store) *HomeHandler {
	return &HomeHandler{forms: forms}
}

// HomeGet renders the landing page, showing any pending flash messages
// such as the registration success notice.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	l := middleware.LocalizerFrom(c)

	// The page is built with gomponents; the layout expects a templ component.
	pageContent := view.AdaptGomponentToTempl(pages.HomeContent(l))
	flashData := view.GetFlashData(c)
	finalComponent := layouts.Base("Home", l.Tag().String(), flashData, pageContent)

	// The name is ignored by the universal renderer.
	return c.Render(http.StatusOK, "", finalComponent)
}

// HealthGet reports liveness (GET /health).
func (h *HomeHandler) HealthGet(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Forms: h.forms.Len()})
}
