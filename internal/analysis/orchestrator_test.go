package analysis

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/codementor/internal/sections"
	"github.com/dgallion1/codementor/internal/source"
)

var discard = slog.New(slog.DiscardHandler)

// recordingGenerator answers each call with the next scripted reply.
type recordingGenerator struct {
	replies []string
	prompts []string
}

func (g *recordingGenerator) Generate(_ context.Context, p string) string {
	g.prompts = append(g.prompts, p)
	if len(g.replies) == 0 {
		return ""
	}
	r := g.replies[0]
	g.replies = g.replies[1:]
	return r
}

const primaryReply = "[BIG_PICTURE]\n- a\n[WHY_EXISTS]\nWhy.\n[TRAPS]\n⚠️ trap\n[MERMAID]\ngraph TD"

func TestAnalyze_EmptyCodeMakesNoCalls(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"no input", Request{}},
		{"whitespace code", Request{Input: source.Bundle{Code: "   \n"}, Question: "why?", OldCode: "old"}},
		{"corrupt zip only", Request{Input: source.Bundle{File: &source.File{Name: "a.zip", Data: []byte("bad")}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &recordingGenerator{}
			res, err := NewOrchestrator(gen, discard).Analyze(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrNoCode)
			assert.Nil(t, res)
			assert.Empty(t, gen.prompts)
		})
	}
}

func TestAnalyze_PrimaryOnly(t *testing.T) {
	gen := &recordingGenerator{replies: []string{primaryReply}}
	res, err := NewOrchestrator(gen, discard).Analyze(context.Background(), Request{
		Input: source.Bundle{Code: "print('hi')"},
		Docs:  "style guide",
	})
	require.NoError(t, err)

	assert.Equal(t, Result{
		"big_picture":     "- a",
		"why_this_exists": "Why.",
		"hidden_traps":    "⚠️ trap",
		"flow":            "graph TD",
	}, res)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "print('hi')")
	assert.Contains(t, gen.prompts[0], "style guide")
	assert.NotContains(t, res, KeyMentorAnswer)
	assert.NotContains(t, res, KeyBackwardCompatibility)
}

func TestAnalyze_QuestionAddsMentorAnswer(t *testing.T) {
	gen := &recordingGenerator{replies: []string{primaryReply, "Think of it as a cache."}}
	res, err := NewOrchestrator(gen, discard).Analyze(context.Background(), Request{
		Input:    source.Bundle{Code: "cache = {}"},
		Question: "What is this for?",
	})
	require.NoError(t, err)

	assert.Equal(t, "Think of it as a cache.", res[KeyMentorAnswer])
	require.Len(t, gen.prompts, 2)
	assert.Contains(t, gen.prompts[1], "Question: What is this for?")
}

func TestAnalyze_AllThreeCallsInOrder(t *testing.T) {
	gen := &recordingGenerator{replies: []string{primaryReply, "mentor", "Safety Score: 40"}}
	res, err := NewOrchestrator(gen, discard).Analyze(context.Background(), Request{
		Input:    source.Bundle{Code: "def f(x, y): pass"},
		Question: "why two args?",
		OldCode:  "def f(x): pass",
	})
	require.NoError(t, err)

	require.Len(t, gen.prompts, 3)
	assert.Contains(t, gen.prompts[0], "[BIG_PICTURE]")
	assert.True(t, strings.HasPrefix(gen.prompts[1], "Question: why two args?"))
	assert.Contains(t, gen.prompts[2], "OLD: def f(x): pass")
	assert.Contains(t, gen.prompts[2], "NEW: def f(x, y): pass")

	assert.Equal(t, "mentor", res[KeyMentorAnswer])
	assert.Equal(t, "Safety Score: 40", res[KeyBackwardCompatibility])
	assert.Len(t, res, 6)
}

func TestAnalyze_FailuresAreValues(t *testing.T) {
	gen := &recordingGenerator{replies: []string{
		"AI Error: quota exceeded",
		"AI Error: network unreachable",
		"Safety Score: 90",
	}}
	res, err := NewOrchestrator(gen, discard).Analyze(context.Background(), Request{
		Input:    source.Bundle{Code: "x"},
		Question: "q",
		OldCode:  "y",
	})
	require.NoError(t, err)

	for _, key := range sections.AnalysisV1.Keys() {
		assert.Equal(t, sections.NotGenerated, res[key], key)
	}
	assert.Equal(t, "AI Error: network unreachable", res[KeyMentorAnswer])
	assert.Equal(t, "Safety Score: 90", res[KeyBackwardCompatibility])
}

func TestAnalyze_CorruptZipWithPastedCode(t *testing.T) {
	gen := &recordingGenerator{replies: []string{"no tags at all"}}
	res, err := NewOrchestrator(gen, discard).Analyze(context.Background(), Request{
		Input: source.Bundle{Code: "main()", File: &source.File{Name: "broken.zip", Data: []byte("PK\x03\x04junk")}},
	})
	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)
	for _, key := range sections.AnalysisV1.Keys() {
		assert.Equal(t, sections.NotGenerated, res[key], key)
	}
}

func TestAnalyze_DocsFileAppendedToContext(t *testing.T) {
	gen := &recordingGenerator{replies: []string{primaryReply}}
	_, err := NewOrchestrator(gen, discard).Analyze(context.Background(), Request{
		Input:    source.Bundle{Code: "run()"},
		Docs:     "inline",
		DocsFile: &source.File{Name: "guide.md", Data: []byte("# Guide\n\nCall run once.")},
	})
	require.NoError(t, err)
	assert.Contains(t, gen.prompts[0], "context: inline\n\n# Guide\n\nCall run once.")
}

func TestAnalyze_BadDocsFileIsSkipped(t *testing.T) {
	gen := &recordingGenerator{replies: []string{primaryReply}}
	res, err := NewOrchestrator(gen, discard).Analyze(context.Background(), Request{
		Input:    source.Bundle{Code: "run()"},
		DocsFile: &source.File{Name: "manual.pdf", Data: []byte("not a pdf")},
	})
	require.NoError(t, err)
	assert.Equal(t, "- a", res["big_picture"])
}

func TestContentHash(t *testing.T) {
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	assert.Equal(t, want, contentHash("hello world"))
}
