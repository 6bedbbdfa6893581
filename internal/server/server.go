package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "github.com/rotodiag/bearingkg/internal/server/middleware"
	"github.com/rotodiag/bearingkg/internal/util"
	"github.com/rotodiag/bearingkg/pkg/ai"
	oai "github.com/rotodiag/bearingkg/pkg/ai/ollama"
	gai "github.com/rotodiag/bearingkg/pkg/ai/openai"
	"github.com/rotodiag/bearingkg/pkg/kg"
	"github.com/rotodiag/bearingkg/pkg/loader"
	"github.com/rotodiag/bearingkg/pkg/loader/doc"
	lio "github.com/rotodiag/bearingkg/pkg/loader/io"
	"github.com/rotodiag/bearingkg/pkg/loader/web"
	"github.com/rotodiag/bearingkg/pkg/logger"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// newClientFactory builds the extraction client factory from the
// environment. Construction is deferred to the run so that a missing key
// surfaces as a setup failure of that run, not as a server crash.
func newClientFactory() kg.ClientFactory {
	adapter := util.GetEnv("AI_ADAPTER")

	switch adapter {
	case "ollama":
		return func() (ai.ExtractionClient, error) {
			return oai.NewExtractionOllamaClient(oai.NewExtractionOllamaClientParams{
				ExtractionModel: util.GetEnv("AI_EXTRACT_MODEL"),

				BaseURL: util.GetEnv("AI_CHAT_URL"),
				ApiKey:  util.GetEnv("AI_CHAT_KEY"),

				MaxConcurrentRequests: int64(util.GetEnvInt("AI_PARALLEL_REQ", 1)),
			})
		}
	default:
		return func() (ai.ExtractionClient, error) {
			return gai.NewExtractionOpenAIClient(gai.NewExtractionOpenAIClientParams{
				ExtractionModel: util.GetEnv("AI_EXTRACT_MODEL"),

				ChatURL: util.GetEnv("AI_CHAT_URL"),
				ChatKey: util.GetEnv("AI_CHAT_KEY"),
			})
		}
	}
}

func Init() {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var extractorOpts []kg.ExtractorOption
	if model := util.GetEnv("AI_EXTRACT_MODEL"); model != "" {
		extractorOpts = append(extractorOpts, kg.WithModel(model))
	}
	if temp := util.GetEnvFloat("AI_TEMPERATURE", -1); temp >= 0 {
		extractorOpts = append(extractorOpts, kg.WithTemperature(temp))
	}
	if util.GetEnvBool("AI_STRUCTURED_OUTPUT", false) {
		extractorOpts = append(extractorOpts, kg.WithStructuredOutput())
	}
	extractor := kg.NewExtractor(newClientFactory(), extractorOpts...)

	fileParser := lio.NewIODocumentParser()
	wordParser := doc.NewDocDocumentParser(fileParser)
	registry := loader.NewDefaultRegistry(fileParser, wordParser)
	webParser := web.NewWebDocumentParser()

	app := &mid.App{
		Extractor:   extractor,
		Registry:    registry,
		Web:         webParser,
		MaxChunkLen: util.GetEnvInt("MAX_CHUNK_LEN", kg.DefaultMaxChunkLen),
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1G"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
