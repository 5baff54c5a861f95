// Package statement parses problem-statement sources into the doctree form
// the classifier consumes. Markdown statements go through goldmark; legacy
// LaTeX statements go through a minimal reader that preserves the group and
// math-mode structure the analysis needs.
package statement

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ghamerly/problem-style-check/internal/doctree"
)

// Parser converts raw statement bytes into a doctree.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Node, error)
}

// statementFileRe matches statement filenames and captures the optional
// language tag, e.g. problem.tex, problem.sv.tex, problem.en.md.
var statementFileRe = regexp.MustCompile(`^problem(?:\.([a-z][a-z]))?\.(tex|md)$`)

// IsStatementFile reports whether the basename is a recognized statement
// source.
func IsStatementFile(filename string) bool {
	return statementFileRe.MatchString(filepath.Base(filename))
}

// Language returns the statement's language tag, defaulting to "en" when the
// filename carries none.
func Language(filename string) string {
	m := statementFileRe.FindStringSubmatch(filepath.Base(filename))
	if m == nil || m[1] == "" {
		return "en"
	}
	return m[1]
}

// ForFile returns the parser for a statement filename.
func ForFile(filename string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tex":
		return &LaTeXParser{}, nil
	case ".md":
		return &MarkdownParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported statement extension: %s", filepath.Ext(filename))
	}
}

// SplitLines breaks raw statement source into lines for the line-level
// stylistic checks.
func SplitLines(src []byte) []string {
	return strings.Split(strings.ReplaceAll(string(src), "\r\n", "\n"), "\n")
}
