package routes

import (
	"net/http"

	"github.com/rotodiag/bearingkg/internal/server/middleware"
	"github.com/rotodiag/bearingkg/pkg/loader"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type extractURLResponse struct {
	Message string          `json:"message"`
	Result  *documentResult `json:"result,omitempty"`
}

// ExtractURLHandler fetches a remote document and runs the extraction
// pipeline over its readable text.
func ExtractURLHandler(c echo.Context) error {
	type extractURLBody struct {
		URL string `json:"url" validate:"required,url"`
	}

	data := new(extractURLBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, extractURLResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, extractURLResponse{
			Message: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App

	id, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, extractURLResponse{
			Message: "Internal server error",
		})
	}

	file := loader.DocumentFile{
		ID:       id,
		FilePath: data.URL,
		Parser:   app.Web,
	}

	result, status, err := runExtraction(c, file, data.URL)
	if err != nil {
		return c.JSON(status, extractURLResponse{
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, extractURLResponse{
		Message: "Extraction complete",
		Result:  &result,
	})
}
