package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/rotodiag/bearingkg/pkg/kg"
	"github.com/rotodiag/bearingkg/pkg/loader"
)

// App bundles the shared dependencies handlers need: the extraction
// pipeline, the format registry for uploads and the parser for remote
// documents.
type App struct {
	Extractor   *kg.Extractor
	Registry    *loader.Registry
	Web         loader.DocumentParser
	MaxChunkLen int
}

type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware wraps every request context with the shared App
// dependencies.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{c, app})
		}
	}
}
