package statement

import (
	"fmt"
	"io"
	"strings"

	"github.com/ghamerly/problem-style-check/internal/doctree"
)

// LaTeXParser reads legacy LaTeX statements. It is not a TeX implementation:
// it only recovers the structure the analysis depends on — text runs, {...}
// groups, math-mode scopes, and command constructs. Comments are stripped.
type LaTeXParser struct{}

// mathEnvironments open math mode when entered via \begin{...}.
var mathEnvironments = map[string]bool{
	"math":        true,
	"displaymath": true,
	"equation":    true,
	"equation*":   true,
	"align":       true,
	"align*":      true,
	"eqnarray":    true,
	"eqnarray*":   true,
}

// spacingCommands render as horizontal space, so they contribute a space to
// the surrounding text stream. This keeps digit runs split the way they are
// typeset: 20\,000 must not read back as 20000.
var spacingCommands = map[string]bool{
	",":         true,
	";":         true,
	"!":         true,
	" ":         true,
	"quad":      true,
	"qquad":     true,
	"enspace":   true,
	"thinspace": true,
}

func (p *LaTeXParser) Parse(r io.Reader, filename string) (*doctree.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return parseLaTeX(string(src)), nil
}

type texScope struct {
	node   *doctree.Node
	opener string // "{", "$", "\\(", "\\[", or an environment name
}

type texReader struct {
	src   string
	pos   int
	stack []texScope
	buf   strings.Builder
}

func parseLaTeX(src string) *doctree.Node {
	root := doctree.NewGeneric("document")
	t := &texReader{src: src, stack: []texScope{{node: root}}}
	t.run()
	t.flush()
	return root
}

func (t *texReader) top() *doctree.Node {
	return t.stack[len(t.stack)-1].node
}

func (t *texReader) flush() {
	if t.buf.Len() > 0 {
		t.top().Append(doctree.NewText(t.buf.String()))
		t.buf.Reset()
	}
}

func (t *texReader) push(node *doctree.Node, opener string) {
	t.top().Append(node)
	t.stack = append(t.stack, texScope{node: node, opener: opener})
}

// pop closes the innermost scope with the given opener. A stray closer with
// no matching scope is ignored; malformed input degrades, it does not fail.
func (t *texReader) pop(opener string) {
	for i := len(t.stack) - 1; i > 0; i-- {
		if t.stack[i].opener == opener {
			t.stack = t.stack[:i]
			return
		}
	}
}

func (t *texReader) run() {
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		switch c {
		case '%':
			t.flush()
			t.skipToLineEnd()
		case '\\':
			t.command()
		case '$':
			t.flush()
			t.pos++
			if t.pos < len(t.src) && t.src[t.pos] == '$' {
				t.pos++
			}
			t.toggleDollarMath()
		case '{':
			t.flush()
			t.push(doctree.NewGroup(), "{")
			t.pos++
		case '}':
			t.flush()
			t.pop("{")
			t.pos++
		default:
			t.buf.WriteByte(c)
			t.pos++
		}
	}
}

func (t *texReader) skipToLineEnd() {
	for t.pos < len(t.src) && t.src[t.pos] != '\n' {
		t.pos++
	}
}

func (t *texReader) toggleDollarMath() {
	if t.stack[len(t.stack)-1].opener == "$" {
		t.stack = t.stack[:len(t.stack)-1]
		return
	}
	t.push(doctree.NewMath(), "$")
}

func (t *texReader) command() {
	t.pos++ // consume the backslash
	if t.pos >= len(t.src) {
		return
	}

	c := t.src[t.pos]
	if !isLetter(c) {
		t.pos++
		t.symbolCommand(c)
		return
	}

	start := t.pos
	for t.pos < len(t.src) && isLetter(t.src[t.pos]) {
		t.pos++
	}
	if t.pos < len(t.src) && t.src[t.pos] == '*' {
		t.pos++
	}
	name := t.src[start:t.pos]

	t.flush()
	switch name {
	case "begin":
		if env, ok := t.braceArg(); ok {
			if mathEnvironments[env] {
				t.push(doctree.NewMath(), env)
			} else {
				t.push(doctree.NewGeneric(env), env)
			}
			return
		}
		t.top().Append(doctree.NewGeneric(name))
	case "end":
		if env, ok := t.braceArg(); ok {
			t.pop(env)
			return
		}
		t.top().Append(doctree.NewGeneric(name))
	default:
		node := doctree.NewGeneric(name)
		if spacingCommands[name] {
			node.Append(doctree.NewText(" "))
		}
		t.top().Append(node)
	}
}

// symbolCommand handles a backslash followed by a non-letter: escaped
// literals become text, spacing symbols become spacing nodes, the rest become
// anonymous constructs.
func (t *texReader) symbolCommand(c byte) {
	switch c {
	case '%', '$', '&', '#', '_', '{', '}':
		t.buf.WriteByte(c)
	case '(':
		t.flush()
		t.push(doctree.NewMath(), `\(`)
	case ')':
		t.flush()
		t.pop(`\(`)
	case '[':
		t.flush()
		t.push(doctree.NewMath(), `\[`)
	case ']':
		t.flush()
		t.pop(`\[`)
	default:
		t.flush()
		node := doctree.NewGeneric(string(c))
		if spacingCommands[string(c)] {
			node.Append(doctree.NewText(" "))
		}
		t.top().Append(node)
	}
}

// braceArg reads a {name} argument immediately following \begin or \end.
func (t *texReader) braceArg() (string, bool) {
	if t.pos >= len(t.src) || t.src[t.pos] != '{' {
		return "", false
	}
	end := strings.IndexByte(t.src[t.pos:], '}')
	if end < 0 {
		return "", false
	}
	arg := t.src[t.pos+1 : t.pos+end]
	t.pos += end + 1
	return arg, true
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
