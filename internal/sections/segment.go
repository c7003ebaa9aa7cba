package sections

import (
	"errors"
	"strings"
)

// Placeholders returned in place of section content.
const (
	NotGenerated = "Content not generated."
	ParsingError = "Parsing error."
)

var errEmptyMarker = errors.New("sections: empty start marker")

// Extract returns the trimmed text between start and end. A missing start
// marker yields NotGenerated; an end marker that is Terminal or absent after
// the start runs the slice to the end of text. A malformed tag yields
// ParsingError.
func Extract(text string, tag Tag) string {
	out, found, err := slice(text, tag)
	switch {
	case err != nil:
		return ParsingError
	case !found:
		return NotGenerated
	}
	return out
}

func slice(text string, tag Tag) (string, bool, error) {
	if tag.Start == "" {
		return "", false, errEmptyMarker
	}
	i := strings.Index(text, tag.Start)
	if i < 0 {
		return "", false, nil
	}
	rest := text[i+len(tag.Start):]
	if tag.End != Terminal && tag.End != "" {
		if j := strings.Index(rest, tag.End); j >= 0 {
			rest = rest[:j]
		}
	}
	return strings.TrimSpace(rest), true, nil
}

// Segment splits a raw reply into one entry per protocol section.
func (p Protocol) Segment(text string) map[string]string {
	out := make(map[string]string, len(p.Sections))
	for _, tag := range p.Tags() {
		out[tag.Key] = Extract(text, tag)
	}
	return out
}
