package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"

	"github.com/dgallion1/codementor/internal/llm"
	"github.com/dgallion1/codementor/internal/prompt"
	"github.com/dgallion1/codementor/internal/sections"
	"github.com/dgallion1/codementor/internal/source"
)

// ErrNoCode is returned when a request carries no code to analyze.
var ErrNoCode = errors.New("no code detected")

// Result keys filled by the optional secondary calls.
const (
	KeyMentorAnswer          = "mentor_answer"
	KeyBackwardCompatibility = "backward_compatibility"
)

// Request is everything one analysis needs.
type Request struct {
	Input    source.Bundle
	Docs     string
	DocsFile *source.File
	OldCode  string
	Question string
}

// Result maps section keys to their text.
type Result map[string]string

// Orchestrator runs one primary model call followed by up to two optional
// secondary calls, strictly in sequence.
type Orchestrator struct {
	gen      llm.Generator
	protocol sections.Protocol
	log      *slog.Logger
}

// NewOrchestrator creates an orchestrator using the v1 analysis layout.
func NewOrchestrator(gen llm.Generator, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		gen:      gen,
		protocol: sections.AnalysisV1,
		log:      log,
	}
}

// Analyze validates the input and performs the model calls. The only error
// is ErrNoCode, returned before any call is made; model failures appear as
// values in the Result.
func (o *Orchestrator) Analyze(ctx context.Context, req Request) (Result, error) {
	doc := source.Aggregate(req.Input)
	log := o.log.With("code_hash", contentHash(doc.Text)[:16], "files", len(doc.Files))

	if doc.ExtractErr != nil {
		log.Warn("archive extraction incomplete", "error", doc.ExtractErr)
	}
	if doc.Empty() {
		return nil, ErrNoCode
	}

	docs, err := source.DocsContext(req.Docs, req.DocsFile)
	if err != nil {
		log.Warn("docs file skipped", "error", err)
	}

	// Phase 1: primary structured analysis.
	primary := prompt.BuildAnalysis(o.protocol, doc.Text, docs)
	reply := o.call(ctx, log, "primary", primary)
	result := Result(o.protocol.Segment(reply))

	// Phase 2: mentor Q&A.
	if strings.TrimSpace(req.Question) != "" {
		result[KeyMentorAnswer] = o.call(ctx, log, "question", prompt.BuildQuestion(req.Question, doc.Text))
	}

	// Phase 3: backward compatibility.
	if strings.TrimSpace(req.OldCode) != "" {
		result[KeyBackwardCompatibility] = o.call(ctx, log, "compatibility", prompt.BuildCompatibility(req.OldCode, doc.Text))
	}

	log.Info("analysis complete", "sections", len(result))
	return result, nil
}

func (o *Orchestrator) call(ctx context.Context, log *slog.Logger, phase, p string) string {
	log.Info("calling model", "phase", phase, "prompt_tokens", prompt.EstimateTokens(p))
	reply := o.gen.Generate(ctx, p)
	if strings.HasPrefix(reply, llm.ErrorPrefix) {
		log.Warn("model call failed", "phase", phase, "reply", reply)
	}
	return reply
}

// contentHash computes SHA-256 of content and returns hex string.
func contentHash(content string) string {
	h := sha256.Sum256([]byte(content))
	return hex.EncodeToString(h[:])
}
