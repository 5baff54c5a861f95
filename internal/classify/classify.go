// Package classify partitions a parsed statement tree into a plain-prose
// text stream and a math-mode text stream.
package classify

import (
	"strings"

	"github.com/ghamerly/problem-style-check/internal/doctree"
)

// Classify walks the tree depth-first in document order and returns the
// concatenated plain-text and math-text streams. Text payloads are lowercased.
// Math mode is inherited: every text node under a MathEnv lands in the math
// stream regardless of nesting depth.
func Classify(root *doctree.Node) (plainText, mathText string) {
	var plain, math strings.Builder
	walk(root, false, &plain, &math)
	return plain.String(), math.String()
}

func walk(n *doctree.Node, inMath bool, plain, math *strings.Builder) {
	if n == nil {
		return
	}

	switch {
	case n.Kind == doctree.Text:
		if inMath {
			math.WriteString(strings.ToLower(n.Literal))
		} else {
			plain.WriteString(strings.ToLower(n.Literal))
		}
	case n.Kind == doctree.Group:
		// Separate adjacent groups so their words do not fuse into one
		// token when the streams are joined.
		plain.WriteString(" ")
		math.WriteString(" ")
	case n.Kind == doctree.MathEnv:
		math.WriteString(" ")
		inMath = true
	}

	for _, child := range n.Children {
		walk(child, inMath, plain, math)
	}
}
