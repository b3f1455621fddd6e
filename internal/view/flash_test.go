package view_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/signup/internal/registration"
	"github.com/nfrund/signup/internal/view"
	"github.com/stretchr/testify/assert"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

func setupTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	// Create a new session store for the test.
	store := sessions.NewCookieStore([]byte(testSessionSecret))
	// Create a middleware function that will be used to wrap our test handler.
	sessionMiddleware := session.Middleware(store)

	// Create a dummy handler that will be wrapped by the session middleware.
	// This ensures the session is properly initialized in the context.
	var c echo.Context
	handler := func(ctx echo.Context) error { c = ctx; return nil }
	sessionMiddleware(handler)(e.NewContext(req, rec))

	return c, rec
}

func TestFlashMessages(t *testing.T) {
	t.Run("Set and Get Success Flash", func(t *testing.T) {
		c, _ := setupTestContext()

		// Set a success flash
		view.SetFlashSuccess(c, "It worked!")

		// Get flashes
		flashes := view.GetFlashData(c)

		// Assert against the struct fields
		assert.NotEmpty(t, flashes.Success)
		assert.Equal(t, "It worked!", flashes.Success[0])
		assert.Empty(t, flashes.Error)

		// Get flashes again to ensure they are cleared
		flashesAfterRead := view.GetFlashData(c)
		assert.Empty(t, flashesAfterRead.Success, "Flashes should be cleared after being read")
	})

	t.Run("Set and Get Error Flash", func(t *testing.T) {
		c, _ := setupTestContext()

		// Set an error flash
		view.SetFlashError(c, "It failed!")

		// Get flashes
		flashes := view.GetFlashData(c)

		// Assert against the struct fields
		assert.NotEmpty(t, flashes.Error)
		assert.Equal(t, "It failed!", flashes.Error[0])
		assert.Empty(t, flashes.Success)
	})

	t.Run("GetFlashes with no flashes set", func(t *testing.T) {
		c, _ := setupTestContext()

		flashes := view.GetFlashData(c)
		assert.Empty(t, flashes.Success, "Success flashes should be empty")
		assert.Empty(t, flashes.Error, "Error flashes should be empty")
		assert.True(t, flashes.Empty())
	})

	t.Run("SetFlash routes by level", func(t *testing.T) {
		c, _ := setupTestContext()

		view.SetFlash(c, registration.LevelInfo, "fyi")
		view.SetFlash(c, registration.LevelWarning, "careful")
		view.SetFlash(c, registration.Level("unknown"), "defaults to success")

		flashes := view.GetFlashData(c)
		assert.Equal(t, []string{"fyi"}, flashes.Info)
		assert.Equal(t, []string{"careful"}, flashes.Warning)
		assert.Equal(t, []string{"defaults to success"}, flashes.Success)
	})
}

func TestFlashNotifier(t *testing.T) {
	t.Run("localizes the notice", func(t *testing.T) {
		c, _ := setupTestContext()
		n := view.NewFlashNotifier(c, registration.NewLocalizer("vi"))

		n.Notify(context.Background(), registration.Notice{
			Message: "Register successfully",
			Key:     "Register successfully",
			Level:   registration.LevelSuccess,
		})

		assert.Equal(t, []string{"Đăng ký thành công"}, view.GetFlashData(c).Success)
	})

	t.Run("without a localizer keeps the message", func(t *testing.T) {
		c, _ := setupTestContext()
		n := view.NewFlashNotifier(c, nil)

		n.Notify(context.Background(), registration.Notice{Message: "Something broke", Level: registration.LevelError})

		assert.Equal(t, []string{"Something broke"}, view.GetFlashData(c).Error)
	})
}
