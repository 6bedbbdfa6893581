package routes

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rotodiag/bearingkg/internal/server/middleware"
	"github.com/rotodiag/bearingkg/internal/util"
	"github.com/rotodiag/bearingkg/pkg/common"
	"github.com/rotodiag/bearingkg/pkg/kg"
	"github.com/rotodiag/bearingkg/pkg/loader"
	"github.com/rotodiag/bearingkg/pkg/logger"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type documentResult struct {
	File          string                  `json:"file"`
	ChunkCount    int                     `json:"chunk_count"`
	Graphs        []common.KnowledgeGraph `json:"graphs"`
	SkippedChunks []int                   `json:"skipped_chunks"`
}

type extractDocumentsResponse struct {
	Message string           `json:"message"`
	Results []documentResult `json:"results,omitempty"`
}

// ExtractDocumentsHandler runs the extraction pipeline over uploaded
// documents from multipart/form-data.
func ExtractDocumentsHandler(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, extractDocumentsResponse{
			Message: "Invalid request body",
		})
	}
	uploads := form.File["files"]
	if len(uploads) == 0 {
		return c.JSON(http.StatusBadRequest, extractDocumentsResponse{
			Message: "No files uploaded",
		})
	}

	app := c.(*middleware.AppContext).App

	results := make([]documentResult, 0, len(uploads))
	for _, upload := range uploads {
		// Resolve the parser before writing anything to disk.
		if _, err := app.Registry.Lookup(upload.Filename); err != nil {
			if errors.Is(err, loader.ErrUnsupportedFormat) {
				return c.JSON(http.StatusBadRequest, extractDocumentsResponse{
					Message: err.Error(),
				})
			}
			logger.Error("Failed to resolve parser", "file", upload.Filename, "err", err)
			return c.JSON(http.StatusInternalServerError, extractDocumentsResponse{
				Message: "Internal server error",
			})
		}

		path, err := saveUpload(upload)
		if err != nil {
			logger.Error("Failed to store upload", "file", upload.Filename, "err", err)
			return c.JSON(http.StatusInternalServerError, extractDocumentsResponse{
				Message: "Internal server error",
			})
		}
		defer os.Remove(path)

		id, err := gonanoid.New()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, extractDocumentsResponse{
				Message: "Internal server error",
			})
		}

		file, err := app.Registry.FileFor(id, path)
		if err != nil {
			return c.JSON(http.StatusBadRequest, extractDocumentsResponse{
				Message: err.Error(),
			})
		}

		result, status, err := runExtraction(c, file, upload.Filename)
		if err != nil {
			return c.JSON(status, extractDocumentsResponse{
				Message: err.Error(),
			})
		}
		results = append(results, result)
	}

	return c.JSON(http.StatusOK, extractDocumentsResponse{
		Message: "Extraction complete",
		Results: results,
	})
}

// saveUpload writes an uploaded file to a temp path that keeps the
// original extension so the registry can dispatch on it.
func saveUpload(upload *multipart.FileHeader) (string, error) {
	src, err := upload.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "upload-*"+filepath.Ext(upload.Filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}

// runExtraction is the shared document -> chunks -> graphs pipeline used
// by the upload and URL handlers.
func runExtraction(c echo.Context, file loader.DocumentFile, name string) (documentResult, int, error) {
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	raw, err := file.GetText(ctx)
	if err != nil {
		logger.Error("Failed to read document", "file", name, "err", err)
		return documentResult{}, http.StatusBadRequest,
			errors.New("failed to read document: " + name)
	}

	text := util.SanitizeText(string(raw))
	chunks, err := kg.SplitChunks(text, app.MaxChunkLen)
	if err != nil {
		logger.Error("Failed to chunk document", "file", name, "err", err)
		return documentResult{}, http.StatusInternalServerError,
			errors.New("failed to chunk document: " + name)
	}

	res, err := app.Extractor.Run(ctx, chunks)
	if err != nil {
		var setupErr *kg.SetupError
		if errors.As(err, &setupErr) {
			return documentResult{}, http.StatusBadGateway,
				errors.New("extraction backend unavailable")
		}
		logger.Error("Extraction run failed", "file", name, "err", err)
		return documentResult{}, http.StatusInternalServerError,
			errors.New("extraction failed: " + name)
	}

	skipped := make([]int, 0, len(res.Skipped))
	for _, s := range res.Skipped {
		skipped = append(skipped, s.Index)
	}

	return documentResult{
		File:          name,
		ChunkCount:    len(chunks),
		Graphs:        res.Graphs,
		SkippedChunks: skipped,
	}, http.StatusOK, nil
}
