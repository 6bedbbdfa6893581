package kg

import (
	"context"
	"fmt"

	"github.com/rotodiag/bearingkg/pkg/ai"
	"github.com/rotodiag/bearingkg/pkg/common"
	"github.com/rotodiag/bearingkg/pkg/logger"
)

// SetupError wraps a failure to construct the extraction client. It aborts
// the whole run before any chunk-level call is attempted.
type SetupError struct {
	Err error
}

func (e *SetupError) Error() string {
	return "extraction client setup failed: " + e.Err.Error()
}

func (e *SetupError) Unwrap() error { return e.Err }

// ChunkError records a failed extraction call for a single chunk. The run
// continues with the next chunk; the failed chunk is simply absent from
// the result sequence.
type ChunkError struct {
	Index int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d extraction failed: %v", e.Index, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// ClientFactory produces the extraction client for a run. Construction may
// itself fail (e.g. missing credentials); that failure class is reported
// as a SetupError, unlike per-call failures which only skip one chunk.
type ClientFactory func() (ai.ExtractionClient, error)

// Result is the outcome of one extraction run. Graphs holds one knowledge
// graph per succeeded chunk, in chunk order; Skipped records the chunks
// whose extraction call failed.
type Result struct {
	Graphs  []common.KnowledgeGraph `json:"graphs"`
	Skipped []*ChunkError           `json:"-"`
}

// Extractor drives the sequential chunk extraction pipeline.
type Extractor struct {
	factory     ClientFactory
	model       string
	temperature float64
	structured  bool
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithModel overrides the client's default model for extraction calls.
func WithModel(model string) ExtractorOption {
	return func(e *Extractor) {
		e.model = model
	}
}

// WithTemperature sets the sampling temperature for extraction calls.
func WithTemperature(temperature float64) ExtractorOption {
	return func(e *Extractor) {
		e.temperature = temperature
	}
}

// WithStructuredOutput makes the extractor use schema-enforced structured
// output instead of parsing the schema-instructed plain completion.
func WithStructuredOutput() ExtractorOption {
	return func(e *Extractor) {
		e.structured = true
	}
}

// NewExtractor creates an extractor that obtains its client from factory
// on each run.
func NewExtractor(factory ClientFactory, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		factory:     factory,
		temperature: 0.4,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// extractState is the accumulator threaded through the chunk fold. The
// digest of the most recent successful extraction biases the next chunk's
// prompt away from re-extracting known facts; a failed chunk leaves it
// unchanged.
type extractState struct {
	graphs     []common.KnowledgeGraph
	lastDigest string
	skipped    []*ChunkError
}

// Run processes the chunk sequence strictly in order. Each chunk's prompt
// may depend on the digest derived from the immediately preceding chunk's
// result, so there is no parallelism across chunks. A failing chunk is
// logged and skipped; the run only aborts when the extraction client
// cannot be constructed at all, in which case an empty result and a
// SetupError are returned.
func (e *Extractor) Run(ctx context.Context, chunks []Chunk) (*Result, error) {
	client, err := e.factory()
	if err != nil {
		logger.Warn("Could not initialize extraction client, returning empty result", "err", err)
		return &Result{Graphs: []common.KnowledgeGraph{}}, &SetupError{Err: err}
	}

	state := extractState{
		graphs: make([]common.KnowledgeGraph, 0, len(chunks)),
	}
	for _, chunk := range chunks {
		state = e.extractChunk(ctx, client, chunk, state)
		logger.Debug("Processed text chunk", "chunk", chunk.Index+1, "total", len(chunks))
	}

	return &Result{Graphs: state.graphs, Skipped: state.skipped}, nil
}

func (e *Extractor) extractChunk(
	ctx context.Context,
	client ai.ExtractionClient,
	chunk Chunk,
	state extractState,
) extractState {
	prompt := BuildExtractionPrompt(chunk, state.lastDigest)

	var graph common.KnowledgeGraph
	var err error
	if e.structured {
		var out common.KnowledgeGraph
		err = client.GenerateCompletionWithFormat(
			ctx,
			"extract_bearing_fault_graph",
			"Extract bearing fault knowledge graph entries from a document chunk.",
			prompt,
			&out,
			e.generateOptions()...,
		)
		graph = normalized(out)
	} else {
		var raw string
		raw, err = client.GenerateCompletion(ctx, prompt, e.generateOptions()...)
		if err == nil {
			graph = ParseKnowledgeGraph(raw)
		}
	}

	if err != nil {
		logger.Warn("Chunk extraction failed, skipping", "chunk", chunk.Index, "err", err)
		state.skipped = append(state.skipped, &ChunkError{Index: chunk.Index, Err: err})
		return state
	}

	state.graphs = append(state.graphs, graph)
	state.lastDigest = SummarizeKeyInfo(graph)
	return state
}

func (e *Extractor) generateOptions() []ai.GenerateOption {
	opts := []ai.GenerateOption{ai.WithTemperature(e.temperature)}
	if e.model != "" {
		opts = append(opts, ai.WithModel(e.model))
	}
	return opts
}
