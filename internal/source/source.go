// Package source combines pasted code, uploaded files and documentation into
// the text documents that are embedded in prompts.
package source

import (
	"fmt"
	"strings"

	"github.com/dgallion1/codementor/internal/archive"
	"github.com/dgallion1/codementor/internal/parser"
)

// File is an uploaded file.
type File struct {
	Name string
	Data []byte
}

// Bundle is the code input of one request.
type Bundle struct {
	Code string // Pasted text.
	File *File  // Optional upload: a single source file or a .zip archive.
}

// Document is the aggregated code under analysis.
type Document struct {
	Text  string
	Files []string // Uploaded file names included in Text, in order.
	// ExtractErr records an archive failure that was tolerated.
	ExtractErr error
}

// Empty reports whether the document has no non-whitespace content.
func (d Document) Empty() bool {
	return strings.TrimSpace(d.Text) == ""
}

// Aggregate appends the extracted upload to the pasted code. No
// deduplication is done.
func Aggregate(b Bundle) Document {
	doc := Document{Text: b.Code}
	if b.File == nil {
		return doc
	}
	res := archive.Extract(b.File.Data, b.File.Name)
	doc.Text += res.Text
	doc.Files = res.Files
	doc.ExtractErr = res.Err
	return doc
}

// DocsContext returns the docs text with the parsed contents of an optional
// documentation file appended. On a parse failure the plain docs text is
// returned together with the error.
func DocsContext(docs string, f *File) (string, error) {
	if f == nil || f.Name == "" {
		return docs, nil
	}
	text, err := parser.ParseText(f.Data, f.Name)
	if err != nil {
		return docs, fmt.Errorf("docs file %s: %w", f.Name, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return docs, nil
	}
	if strings.TrimSpace(docs) == "" {
		return text, nil
	}
	return docs + "\n\n" + text, nil
}
