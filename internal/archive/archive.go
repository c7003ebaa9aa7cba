// Package archive turns an uploaded source file or zip archive into a single
// text document with a header line marking where each file begins.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// FileHeader formats the boundary line written before each file's content.
const FileHeader = "--- FILE: %s ---"

// SourceExtensions lists the archive entry suffixes that are extracted.
// Everything else inside a zip is skipped.
var SourceExtensions = []string{".py", ".js", ".ts", ".java", ".html", ".css"}

// Result is the outcome of an extraction. Text always holds whatever was
// collected, even when Err is set.
type Result struct {
	Text  string
	Files []string // Entry names in the order they were appended.
	Err   error    // Failure that cut extraction short, if any.
}

// Extract converts data into tagged text. A name ending in ".zip" is read as
// an archive; any other non-empty name is treated as one source file whatever
// its extension. An empty name yields an empty Result.
//
// Extract never returns a hard failure: a corrupt archive leaves Text holding
// the entries read before the failure and records the cause in Err.
func Extract(data []byte, name string) Result {
	switch {
	case name == "":
		return Result{}
	case IsArchive(name):
		return extractZip(data)
	default:
		var sb strings.Builder
		appendFile(&sb, name, data)
		return Result{Text: sb.String(), Files: []string{name}}
	}
}

// IsArchive reports whether name selects zip extraction.
func IsArchive(name string) bool {
	return strings.HasSuffix(name, ".zip")
}

// IsSourceFile reports whether an archive entry should be extracted.
func IsSourceFile(name string) bool {
	if strings.HasSuffix(name, "/") {
		return false
	}
	for _, ext := range SourceExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func extractZip(data []byte) Result {
	var res Result
	var sb strings.Builder

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		res.Err = fmt.Errorf("open zip: %w", err)
		return res
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !IsSourceFile(f.Name) {
			continue
		}
		content, err := readEntry(f)
		if err != nil {
			res.Err = fmt.Errorf("read %s: %w", f.Name, err)
			break
		}
		appendFile(&sb, f.Name, content)
		res.Files = append(res.Files, f.Name)
	}

	res.Text = sb.String()
	return res
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func appendFile(sb *strings.Builder, name string, content []byte) {
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf(FileHeader, name))
	sb.WriteString("\n")
	sb.WriteString(Decode(content))
}

// Decode interprets b as UTF-8, dropping invalid byte sequences.
func Decode(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}
