package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/adapters/web"
	"github.com/taskboard/taskboard/internal/adapters/web/view"
	"github.com/taskboard/taskboard/internal/infrastructure/config"
	"github.com/taskboard/taskboard/internal/infrastructure/logger"
)

type notFoundPage struct {
	view.Page
	URL string
}

type errorPage struct {
	view.Page
	Status int
	// Detail carries the underlying error text and is only populated
	// outside production.
	Detail string
}

// customErrorHandler is the single place a failed request turns into a
// response. Handlers just return errors; missing tasks and unknown routes
// become the 404 page, everything else becomes the error page with
// details exposed only outside production.
func customErrorHandler(cfg *config.Config, logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}
		if web.IsNotFound(err) {
			code = http.StatusNotFound
		}

		if code == http.StatusNotFound {
			renderErr := c.Render(http.StatusNotFound, "404", notFoundPage{
				Page: view.Page{Title: "Page Not Found", CurrentPath: c.Request().URL.Path},
				URL:  c.Request().RequestURI,
			})
			if renderErr != nil {
				logger.Error("Error rendering 404 page", "error", renderErr)
				_ = c.NoContent(http.StatusNotFound)
			}
			return
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		page := errorPage{
			Page:   view.Page{Title: "Error", CurrentPath: c.Request().URL.Path},
			Status: code,
		}
		if !cfg.App.IsProduction() {
			page.Detail = err.Error()
		}

		if renderErr := c.Render(code, "error", page); renderErr != nil {
			logger.Error("Error rendering error page", "error", renderErr)
			_ = c.NoContent(code)
		}
	}
}
