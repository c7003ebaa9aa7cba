package prompt

import (
	"fmt"
	"strings"

	"github.com/dgallion1/codementor/internal/sections"
)

const analysisIntro = `Analyze this code using these docs as context: %s

CODE:
%s

Provide the following sections EXACTLY in this format with the tags:`

const questionTemplate = `Question: %s
Context: %s
Answer in one short mentor-like paragraph.`

const compatibilityTemplate = `Compare OLD vs NEW for breaking changes.
OLD: %s
NEW: %s
Output Safety Score 0-100 and list breaks.`

// BuildAnalysis creates the primary prompt. Every section of p is listed with
// its marker and content constraint, in protocol order.
func BuildAnalysis(p sections.Protocol, code, docs string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(analysisIntro, docs, code))
	for _, s := range p.Sections {
		sb.WriteString("\n")
		sb.WriteString(s.Marker)
		sb.WriteString("\n")
		sb.WriteString(s.Instruction)
		sb.WriteString("\n")
	}
	return sb.String()
}

// BuildQuestion creates the mentor Q&A prompt.
func BuildQuestion(question, code string) string {
	return fmt.Sprintf(questionTemplate, question, code)
}

// BuildCompatibility creates the old-versus-new comparison prompt.
func BuildCompatibility(oldCode, newCode string) string {
	return fmt.Sprintf(compatibilityTemplate, oldCode, newCode)
}

// EstimateTokens gives a rough token count using a words-based heuristic.
// Only used for logging prompt sizes.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	// Roughly 0.75 tokens per word for English text.
	tokens := int(float64(words) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
