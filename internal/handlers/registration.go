package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/signup/internal/domain"
	"github.com/nfrund/signup/internal/middleware"
	"github.com/nfrund/signup/internal/registration"
	"github.com/nfrund/signup/internal/rendering"
	"github.com/nfrund/signup/internal/view"
	"github.com/nfrund/signup/internal/view/dto/signup"
	"github.com/nfrund/signup/web/src/templates/layouts"
	"github.com/nfrund/signup/web/src/templates/pages"
	"github.com/nfrund/signup/web/src/templates/partials"
	g "maragu.dev/gomponents"
)

const (
	msgAccountExists = "An account with this email already exists."
	msgSubmitFailed  = "Could not create your account. Please try again."
	msgFormBusy      = "Your registration is still being processed."
)

// RegistrationHandler serves the registration form. Each visitor works on a
// server-held form session addressed by its ID; htmx requests update it
// field by field and render fragments back.
type RegistrationHandler struct {
	forms    *registration.Store
	renderer rendering.Renderer
	binder   echo.DefaultBinder
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(forms *registration.Store, renderer rendering.Renderer) *RegistrationHandler {
	return &RegistrationHandler{forms: forms, renderer: renderer}
}

// RegisterGet opens a new form session and renders the page (GET /register).
func (h *RegistrationHandler) RegisterGet(c echo.Context) error {
	form := h.forms.Open()
	l := middleware.LocalizerFrom(c)
	middleware.FromContext(c.Request().Context()).Debug("Opened registration form", "form_id", form.ID())
	return h.renderPage(c, http.StatusOK, form, l)
}

// FieldPut records the latest value of one field (PUT /register/:id/fields/:field).
func (h *RegistrationHandler) FieldPut(c echo.Context) error {
	form, field, err := h.lookupField(c)
	if err != nil {
		return err
	}
	if err := form.Set(field, c.FormValue(string(field))); err != nil {
		return fieldError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// FieldBlur validates one field and renders its helper text
// (POST /register/:id/fields/:field/blur).
func (h *RegistrationHandler) FieldBlur(c echo.Context) error {
	form, field, err := h.lookupField(c)
	if err != nil {
		return err
	}
	if err := syncField(c, form, field); err != nil {
		return fieldError(err)
	}
	if _, err := form.Blur(field); err != nil {
		return fieldError(err)
	}
	data := signup.NewFormData(form.Snapshot(), middleware.LocalizerFrom(c))
	return h.renderer.RenderPage(c, http.StatusOK, pages.HelperText(data, field))
}

// VisibilityPost toggles the masking of a password field and renders the
// field again (POST /register/:id/visibility/:field).
func (h *RegistrationHandler) VisibilityPost(c echo.Context) error {
	form, field, err := h.lookupField(c)
	if err != nil {
		return err
	}
	if err := syncField(c, form, field); err != nil {
		return fieldError(err)
	}
	if _, err := form.ToggleVisibility(field); err != nil {
		return fieldError(err)
	}
	data := signup.NewFormData(form.Snapshot(), middleware.LocalizerFrom(c))
	return h.renderer.RenderPage(c, http.StatusOK, pages.Field(data, field))
}

// SubmitPost validates the form and, when valid, registers the account
// (POST /register/:id).
func (h *RegistrationHandler) SubmitPost(c echo.Context) error {
	var p formParams
	if err := h.bindParams(c, &p); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "registration form not found")
	}
	form, ok := h.forms.Get(p.ID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "registration form not found")
	}
	l := middleware.LocalizerFrom(c)
	logger := middleware.FromContext(c.Request().Context())

	for _, f := range registration.Fields {
		if err := syncField(c, form, f); err != nil {
			if errors.Is(err, registration.ErrSubmitInProgress) {
				view.SetFlashError(c, l.Text(msgFormBusy))
				return h.renderForm(c, http.StatusConflict, form, l)
			}
			return fieldError(err)
		}
	}

	ctx := registration.ContextWithNotifier(c.Request().Context(), view.NewFlashNotifier(c, l))
	errs, err := form.Submit(ctx)
	switch {
	case errors.Is(err, registration.ErrSubmitInProgress):
		view.SetFlashError(c, l.Text(msgFormBusy))
		return h.renderForm(c, http.StatusConflict, form, l)
	case errors.Is(err, domain.ErrAccountExists):
		view.SetFlashError(c, l.Text(msgAccountExists))
		return h.renderForm(c, http.StatusConflict, form, l)
	case err != nil:
		logger.Error("Registration failed", "form_id", form.ID(), "error", err)
		view.SetFlashError(c, l.Text(msgSubmitFailed))
		return h.renderForm(c, http.StatusInternalServerError, form, l)
	case !errs.Empty():
		return h.renderForm(c, http.StatusUnprocessableEntity, form, l)
	}

	logger.Info("Registration form submitted", "form_id", form.ID())
	h.forms.Discard(form.ID())
	if isHTMX(c) {
		c.Response().Header().Set("HX-Redirect", "/")
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// RegisterAPI registers an account from a JSON body (POST /api/registrations).
// It runs through the same form lifecycle as the HTML form.
func (h *RegistrationHandler) RegisterAPI(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "bad_request", Message: "invalid JSON body"})
	}
	l := middleware.LocalizerFrom(c)

	form := h.forms.Open()
	defer h.forms.Discard(form.ID())
	in := req.input()
	for _, f := range registration.Fields {
		if err := form.Set(f, in.Get(f)); err != nil {
			return err
		}
	}

	var notices []registration.Notice
	capture := registration.NotifierFunc(func(_ context.Context, n registration.Notice) {
		notices = append(notices, n)
	})
	errs, err := form.Submit(registration.ContextWithNotifier(c.Request().Context(), capture))
	switch {
	case errors.Is(err, domain.ErrAccountExists):
		return c.JSON(http.StatusConflict, ErrorResponse{Code: "account_exists", Message: l.Text(msgAccountExists)})
	case err != nil:
		middleware.FromContext(c.Request().Context()).Error("Registration failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "internal", Message: l.Text(msgSubmitFailed)})
	case !errs.Empty():
		return c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Code: "validation_failed", Errors: l.Messages(errs)})
	}

	resp := RegisterResponse{}
	if len(notices) > 0 {
		resp.Message = l.Notice(notices[len(notices)-1])
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *RegistrationHandler) bindParams(c echo.Context, dst interface{}) error {
	if err := h.binder.BindPathParams(c, dst); err != nil {
		return err
	}
	return c.Validate(dst)
}

func (h *RegistrationHandler) lookupField(c echo.Context) (*registration.Form, registration.Field, error) {
	var p fieldParams
	if err := h.binder.BindPathParams(c, &p); err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid path")
	}
	if err := c.Validate(&p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "ID" {
			return nil, "", echo.NewHTTPError(http.StatusNotFound, "registration form not found")
		}
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "unknown field")
	}
	form, ok := h.forms.Get(p.ID)
	if !ok {
		return nil, "", echo.NewHTTPError(http.StatusNotFound, "registration form not found")
	}
	return form, p.field(), nil
}

// syncField copies a field value from the request body, when the request
// carries one.
func syncField(c echo.Context, form *registration.Form, f registration.Field) error {
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form body").SetInternal(err)
	}
	values, ok := params[string(f)]
	if !ok || len(values) == 0 {
		return nil
	}
	return form.Set(f, values[0])
}

func fieldError(err error) error {
	switch {
	case errors.Is(err, registration.ErrSubmitInProgress):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, registration.ErrNotMaskable), errors.Is(err, registration.ErrUnknownField):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// renderForm answers a submit. htmx requests get the form fragment plus the
// flash messages out of band; plain posts get the whole page.
func (h *RegistrationHandler) renderForm(c echo.Context, status int, form *registration.Form, l *registration.Localizer) error {
	if !isHTMX(c) {
		return h.renderPage(c, status, form, l)
	}
	data := signup.NewFormData(form.Snapshot(), l)
	return h.renderer.RenderPage(c, status, g.Group{
		pages.RegisterForm(data),
		partials.FlashOOB(view.GetFlashData(c)),
	})
}

func (h *RegistrationHandler) renderPage(c echo.Context, status int, form *registration.Form, l *registration.Localizer) error {
	data := signup.NewFormData(form.Snapshot(), l)
	content := view.AdaptGomponentToTempl(pages.RegisterContent(data))
	page := layouts.Base(l.Text("Register"), l.Tag().String(), view.GetFlashData(c), content)
	return h.renderer.RenderPage(c, status, page)
}
