package doctree

import "strings"

// DocTree is the root of a parsed documentation file.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for leaf text)
	Text     string     // Text content of this node (may be empty for container nodes)
	Page     int        // Source page (0 if N/A)
	Children []*DocNode // Subsections
}

// Builder assembles a tree from a flat stream of headings and paragraphs,
// nesting each heading under the nearest preceding heading of lower level.
type Builder struct {
	root    *DocNode
	stack   []stackEntry
	pending strings.Builder
}

type stackEntry struct {
	node  *DocNode
	level int
}

func NewBuilder() *Builder {
	root := &DocNode{}
	return &Builder{root: root, stack: []stackEntry{{node: root, level: 0}}}
}

// Heading opens a new section at level (1 = top). Empty titles are ignored.
func (b *Builder) Heading(level int, title string) {
	if level <= 0 || title == "" {
		return
	}
	b.flush()
	node := &DocNode{Title: title}
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	parent := b.stack[len(b.stack)-1].node
	parent.Children = append(parent.Children, node)
	b.stack = append(b.stack, stackEntry{node: node, level: level})
}

// Paragraph appends body text to the current section.
func (b *Builder) Paragraph(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if b.pending.Len() > 0 {
		b.pending.WriteString("\n\n")
	}
	b.pending.WriteString(text)
}

// Build finishes the tree. Text that precedes the first heading becomes a
// leading untitled child.
func (b *Builder) Build(title string) *DocTree {
	b.flush()
	tree := &DocTree{Title: title, Children: b.root.Children}
	if b.root.Text != "" {
		tree.Children = append([]*DocNode{{Text: b.root.Text}}, tree.Children...)
	}
	return tree
}

func (b *Builder) flush() {
	t := strings.TrimSpace(b.pending.String())
	if t != "" {
		top := b.stack[len(b.stack)-1].node
		if top.Text != "" {
			top.Text += "\n\n" + t
		} else {
			top.Text = t
		}
	}
	b.pending.Reset()
}

// Text renders the tree as plain text with markdown-style headings, suitable
// for embedding in a prompt.
func (t *DocTree) Text() string {
	var sb strings.Builder
	var walk func(nodes []*DocNode, depth int)
	walk = func(nodes []*DocNode, depth int) {
		for _, n := range nodes {
			if n.Title != "" {
				writeBlock(&sb, strings.Repeat("#", min(depth, 6))+" "+n.Title)
			}
			if n.Text != "" {
				writeBlock(&sb, n.Text)
			}
			walk(n.Children, depth+1)
		}
	}
	walk(t.Children, 1)
	return sb.String()
}

func writeBlock(sb *strings.Builder, s string) {
	if sb.Len() > 0 {
		sb.WriteString("\n\n")
	}
	sb.WriteString(s)
}
