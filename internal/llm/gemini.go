package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	genai "google.golang.org/genai"
)

// ErrorPrefix marks a reply that is a failure diagnostic rather than model output.
const ErrorPrefix = "AI Error: "

// Generator sends one finished prompt and returns the reply text. It never
// fails: service errors come back as ErrorPrefix-ed diagnostics.
type Generator interface {
	Generate(ctx context.Context, prompt string) string
}

// contentGenerator is the slice of *genai.Models used for generation.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Options controls model selection and stats.
type Options struct {
	DefaultModel    string
	PreferredModels []string
	StatsWindow     time.Duration
}

// Gateway calls the Gemini API with a model chosen once at construction.
// It is safe for concurrent use and is not reconfigured after creation.
type Gateway struct {
	models contentGenerator
	model  string
	log    *slog.Logger
	stats  *LLMStats
}

// NewGemini creates the API client and selects the model. Selection problems
// fall back to opts.DefaultModel; only client construction can fail.
func NewGemini(ctx context.Context, apiKey string, opts Options, log *slog.Logger) (*Gateway, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	model := SelectModel(ctx, cli.Models, opts.PreferredModels, opts.DefaultModel, log)
	return newGateway(cli.Models, model, opts.StatsWindow, log), nil
}

func newGateway(models contentGenerator, model string, statsWindow time.Duration, log *slog.Logger) *Gateway {
	return &Gateway{
		models: models,
		model:  model,
		log:    log.With("model", model),
		stats:  NewLLMStats(statsWindow),
	}
}

// Model returns the selected model name.
func (g *Gateway) Model() string { return g.model }

// Snapshot returns latency stats for recent calls.
func (g *Gateway) Snapshot() StatsSnapshot { return g.stats.Snapshot() }

// Generate calls the model with prompt as a single user turn.
func (g *Gateway) Generate(ctx context.Context, prompt string) string {
	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		nil,
	)
	elapsed := time.Since(start).Milliseconds()
	g.stats.Record(elapsed, err != nil)

	if err != nil {
		g.log.Warn("generate failed", "error", err, "duration_ms", elapsed)
		return ErrorPrefix + err.Error()
	}
	text := responseText(resp)
	g.log.Debug("generate complete", "duration_ms", elapsed, "reply_bytes", len(text))
	return text
}

// responseText joins the text parts of the first candidate. Missing
// candidates or content give "".
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range c.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
