package openai

import (
	"errors"
	"sync"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/rotodiag/bearingkg/pkg/ai"
)

// ErrMissingAPIKey is returned when no API key is configured. The whole
// extraction run aborts on this, unlike per-call failures which only skip
// a single chunk.
var ErrMissingAPIKey = errors.New("openai: missing API key")

// ExtractionOpenAIClient implements ai.ExtractionClient against any
// OpenAI-compatible chat completion endpoint.
//
// An ExtractionOpenAIClient should be created using NewExtractionOpenAIClient.
type ExtractionOpenAIClient struct {
	extractionModel string

	chatURL string
	chatKey string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewExtractionOpenAIClientParams defines the configuration for creating
// a new ExtractionOpenAIClient.
//
// ExtractionModel specifies the default model for extraction calls.
// ChatURL and ChatKey configure the chat completion endpoint; ChatURL may
// be empty for the official API.
type NewExtractionOpenAIClientParams struct {
	ExtractionModel string
	ChatURL         string
	ChatKey         string
}

// NewExtractionOpenAIClient creates a new client configured with the
// provided parameters. It returns ErrMissingAPIKey when no key is set.
//
// Example:
//
//	client, err := openai.NewExtractionOpenAIClient(openai.NewExtractionOpenAIClientParams{
//		ExtractionModel: "gpt-4o-mini",
//		ChatKey:         os.Getenv("AI_CHAT_KEY"),
//	})
func NewExtractionOpenAIClient(
	params NewExtractionOpenAIClientParams,
) (*ExtractionOpenAIClient, error) {
	if params.ChatKey == "" {
		return nil, ErrMissingAPIKey
	}

	options := []option.RequestOption{
		option.WithAPIKey(params.ChatKey),
	}
	if params.ChatURL != "" {
		options = append(options, option.WithBaseURL(params.ChatURL))
	}
	client := openai.NewClient(options...)

	return &ExtractionOpenAIClient{
		extractionModel: params.ExtractionModel,

		chatURL: params.ChatURL,
		chatKey: params.ChatKey,

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		ChatClient: &client,
	}, nil
}
