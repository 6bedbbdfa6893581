package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotodiag/bearingkg/internal/util"
	"github.com/rotodiag/bearingkg/pkg/ai"
	oai "github.com/rotodiag/bearingkg/pkg/ai/ollama"
	gai "github.com/rotodiag/bearingkg/pkg/ai/openai"
	"github.com/rotodiag/bearingkg/pkg/kg"
	"github.com/rotodiag/bearingkg/pkg/loader"
	"github.com/rotodiag/bearingkg/pkg/loader/doc"
	lio "github.com/rotodiag/bearingkg/pkg/loader/io"
	"github.com/rotodiag/bearingkg/pkg/logger"
	"github.com/rotodiag/bearingkg/pkg/logger/console"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

func newClient() (ai.ExtractionClient, error) {
	adapter := util.GetEnv("AI_ADAPTER")

	switch adapter {
	case "ollama":
		return oai.NewExtractionOllamaClient(oai.NewExtractionOllamaClientParams{
			ExtractionModel: util.GetEnv("AI_EXTRACT_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvInt("AI_PARALLEL_REQ", 1)),
		})
	default:
		return gai.NewExtractionOpenAIClient(gai.NewExtractionOpenAIClientParams{
			ExtractionModel: util.GetEnv("AI_EXTRACT_MODEL"),

			ChatURL: util.GetEnv("AI_CHAT_URL"),
			ChatKey: util.GetEnv("AI_CHAT_KEY"),
		})
	}
}

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <document> [<document> ...]\n", os.Args[0])
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := newClient()
	if err != nil {
		logger.Fatal("Could not create extraction client", "err", err)
	}

	var extractorOpts []kg.ExtractorOption
	if model := util.GetEnv("AI_EXTRACT_MODEL"); model != "" {
		extractorOpts = append(extractorOpts, kg.WithModel(model))
	}
	if util.GetEnvBool("AI_STRUCTURED_OUTPUT", false) {
		extractorOpts = append(extractorOpts, kg.WithStructuredOutput())
	}
	extractor := kg.NewExtractor(func() (ai.ExtractionClient, error) {
		return client, nil
	}, extractorOpts...)

	fileParser := lio.NewIODocumentParser()
	wordParser := doc.NewDocDocumentParser(fileParser)
	registry := loader.NewDefaultRegistry(fileParser, wordParser)
	maxChunkLen := util.GetEnvInt("MAX_CHUNK_LEN", kg.DefaultMaxChunkLen)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, path := range os.Args[1:] {
		startTime := time.Now()

		id, err := gonanoid.New()
		if err != nil {
			logger.Fatal("Failed to generate document id", "err", err)
		}

		file, err := registry.FileFor(id, path)
		if err != nil {
			logger.Fatal("Unsupported document", "path", path, "err", err)
		}

		raw, err := file.GetText(ctx)
		if err != nil {
			logger.Fatal("Failed to read document", "path", path, "err", err)
		}

		chunks, err := kg.SplitChunks(util.SanitizeText(string(raw)), maxChunkLen)
		if err != nil {
			logger.Fatal("Failed to chunk document", "path", path, "err", err)
		}
		logger.Info("Processing document", "path", path, "chunks", len(chunks))

		result, err := extractor.Run(ctx, chunks)
		if err != nil {
			logger.Fatal("Extraction failed", "path", path, "err", err)
		}
		for _, skipped := range result.Skipped {
			logger.Warn("Chunk skipped", "path", path, "chunk", skipped.Index, "err", skipped.Err)
		}

		if err := enc.Encode(result); err != nil {
			logger.Fatal("Failed to encode result", "err", err)
		}

		metrics := client.GetMetrics()
		aiDuration := time.Duration(metrics.DurationMs) * time.Millisecond
		logger.Info(
			"AI metrics",
			"input_tokens", metrics.InputTokens,
			"output_tokens", metrics.OutputTokens,
			"total_tokens", metrics.TotalTokens,
			"tokens_per_second", fmt.Sprintf("%.1f", metrics.TokenPerSecond),
			"ai_duration", aiDuration.Round(time.Millisecond),
			"total_duration", time.Since(startTime).Round(time.Millisecond),
		)
		client.ResetMetrics()
	}
}
