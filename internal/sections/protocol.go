// Package sections defines the tag protocol shared by the analysis prompt and
// the parser that splits the model's reply back into named sections.
package sections

// Terminal is the end marker of the last tag: read to the end of the text.
const Terminal = "END"

// Section is one named portion of the model's reply.
type Section struct {
	Key         string // Result key, e.g. "big_picture".
	Marker      string // Literal start marker the model must emit, e.g. "[BIG_PICTURE]".
	Instruction string // Content constraint shown to the model under the marker.
}

// Protocol is an ordered list of sections. Each section ends where the next
// one's marker begins; the last one runs to Terminal.
type Protocol struct {
	Version  string
	Sections []Section
}

// Tag is a (key, start, end) triple used to slice a reply.
type Tag struct {
	Key   string
	Start string
	End   string
}

// Tags derives the slicing triples from the section order.
func (p Protocol) Tags() []Tag {
	tags := make([]Tag, len(p.Sections))
	for i, s := range p.Sections {
		end := Terminal
		if i+1 < len(p.Sections) {
			end = p.Sections[i+1].Marker
		}
		tags[i] = Tag{Key: s.Key, Start: s.Marker, End: end}
	}
	return tags
}

// Keys returns the result keys in protocol order.
func (p Protocol) Keys() []string {
	keys := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		keys[i] = s.Key
	}
	return keys
}

const mermaidInstruction = `graph TD
  %% Define Styles
  classDef logic fill:#eff6ff,stroke:#2563eb,stroke-width:2px,color:#1e40af;
  classDef UI fill:#fff7ed,stroke:#ea580c,stroke-width:2px,color:#9a3412;
  classDef data fill:#f0fdf4,stroke:#16a34a,stroke-width:2px,color:#166534;
  classDef alert fill:#fef2f2,stroke:#dc2626,stroke-width:2px,color:#991b1b;

  %% CRITICAL RULES FOR VISUAL CLARITY:
  %% 1. Use double quotes for ALL labels: ID["Label Text"]
  %% 2. MANDATORY: Break long text with <br/> inside quotes. Example: A["User clicks<br/>Submit Button"]
  %% 3. Keep node labels under 4 words per line.
  %% 4. Use subgraphs to group related functions.
  %% 5. Avoid crossing lines where possible.

  (Insert Colorful Mermaid Logic Here)`

// AnalysisV1 is the four-section layout of the primary code analysis.
var AnalysisV1 = Protocol{
	Version: "v1",
	Sections: []Section{
		{Key: "big_picture", Marker: "[BIG_PICTURE]", Instruction: "(Exactly 3 bullet points)"},
		{Key: "why_this_exists", Marker: "[WHY_EXISTS]", Instruction: "(Exactly 2 sentences)"},
		{Key: "hidden_traps", Marker: "[TRAPS]", Instruction: "(Top 3 risks with ⚠️)"},
		{Key: "flow", Marker: "[MERMAID]", Instruction: mermaidInstruction},
	},
}
