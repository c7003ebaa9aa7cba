package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/codementor/internal/doctree"
)

// TextParser handles plain text files. Each blank-line separated paragraph
// becomes its own node.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	tree := &doctree.DocTree{Title: titleFromFilename(filename)}
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tree.Children = append(tree.Children, &doctree.DocNode{Text: current.String()})
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := strings.ToValidUTF8(strings.TrimRight(scanner.Text(), "\r"), "")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	return tree, nil
}
