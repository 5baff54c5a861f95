package statement

import (
	"fmt"
	"io"
	"strings"

	"github.com/ghamerly/problem-style-check/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser reads Markdown statements using goldmark. Blocks become
// groups, inline $...$ runs become math environments, and code blocks become
// generic constructs whose content is not prose.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	root := doctree.NewGeneric("document")
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		root.Append(convertBlock(n, src))
	}
	return root, nil
}

func convertBlock(n ast.Node, src []byte) *doctree.Node {
	switch n.(type) {
	case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
		group := doctree.NewGroup()
		inl := &inlineState{parent: group}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			inl.walk(c, src)
		}
		return group
	case *ast.List, *ast.ListItem, *ast.Blockquote:
		group := doctree.NewGroup()
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			group.Append(convertBlock(c, src))
		}
		return group
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return doctree.NewGeneric("codeblock")
	case *ast.HTMLBlock:
		return doctree.NewGeneric("html")
	case *ast.ThematicBreak:
		return doctree.NewGeneric("hr")
	default:
		node := doctree.NewGeneric(n.Kind().String())
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			node.Append(convertBlock(c, src))
		}
		return node
	}
}

// inlineState converts a block's inline content, carrying the $-delimited
// math toggle across sibling inline nodes. The toggle never leaks across
// blocks: an unbalanced $ ends with its paragraph.
type inlineState struct {
	parent *doctree.Node
	math   *doctree.Node // non-nil while inside $...$
}

func (s *inlineState) target() *doctree.Node {
	if s.math != nil {
		return s.math
	}
	return s.parent
}

func (s *inlineState) walk(n ast.Node, src []byte) {
	switch t := n.(type) {
	case *ast.Text:
		s.text(string(t.Segment.Value(src)))
		if t.SoftLineBreak() || t.HardLineBreak() {
			s.text(" ")
		}
	case *ast.String:
		s.text(string(t.Value))
	case *ast.CodeSpan:
		s.target().Append(doctree.NewGeneric("code"))
	case *ast.Image:
		s.target().Append(doctree.NewGeneric("image"))
	case *ast.AutoLink:
		s.target().Append(doctree.NewGeneric("link"))
	case *ast.RawHTML:
		s.target().Append(doctree.NewGeneric("html"))
	default:
		// Emphasis, links and the rest are transparent for analysis.
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			s.walk(c, src)
		}
	}
}

// text appends a text run, toggling math mode at every unescaped $ ($$ counts
// as a single toggle).
func (s *inlineState) text(txt string) {
	for {
		i := indexUnescapedDollar(txt)
		if i < 0 {
			break
		}
		if seg := txt[:i]; seg != "" {
			s.target().Append(doctree.NewText(seg))
		}
		txt = txt[i+1:]
		if strings.HasPrefix(txt, "$") {
			txt = txt[1:]
		}
		if s.math == nil {
			s.math = doctree.NewMath()
			s.parent.Append(s.math)
		} else {
			s.math = nil
		}
	}
	if txt != "" {
		s.target().Append(doctree.NewText(txt))
	}
}

func indexUnescapedDollar(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '$' && (i == 0 || s[i-1] != '\\') {
			return i
		}
	}
	return -1
}
