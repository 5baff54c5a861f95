package statement

import (
	"strings"
	"testing"

	"github.com/ghamerly/problem-style-check/internal/classify"
)

func parseTex(t *testing.T, src string) (plain, math string) {
	t.Helper()
	p := &LaTeXParser{}
	root, err := p.Parse(strings.NewReader(src), "problem.tex")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return classify.Classify(root)
}

func TestLaTeX_DollarMath(t *testing.T) {
	plain, math := parseTex(t, `There are $n$ items and $12,34$ left.`)

	if !strings.Contains(plain, "there are") || !strings.Contains(plain, "items and") {
		t.Errorf("plain stream wrong: %q", plain)
	}
	if strings.Contains(plain, "12,34") {
		t.Errorf("math content leaked into plain: %q", plain)
	}
	if !strings.Contains(math, "n") || !strings.Contains(math, "12,34") {
		t.Errorf("math stream wrong: %q", math)
	}
}

func TestLaTeX_DisplayMathForms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"double dollar", `before $$x+1$$ after`},
		{"bracket", `before \[x+1\] after`},
		{"paren", `before \(x+1\) after`},
		{"environment", "before \\begin{equation}x+1\\end{equation} after"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain, math := parseTex(t, tt.src)
			if !strings.Contains(math, "x+1") {
				t.Errorf("math stream missing content: %q", math)
			}
			if strings.Contains(plain, "x+1") {
				t.Errorf("math leaked into plain: %q", plain)
			}
			if !strings.Contains(plain, "before") || !strings.Contains(plain, "after") {
				t.Errorf("plain stream missing prose: %q", plain)
			}
		})
	}
}

func TestLaTeX_GroupsSeparateWords(t *testing.T) {
	plain, _ := parseTex(t, `\textbf{alpha}{beta}`)
	if strings.Contains(plain, "alphabeta") {
		t.Errorf("group words fused: %q", plain)
	}
}

func TestLaTeX_CommentsStripped(t *testing.T) {
	plain, math := parseTex(t, "visible % hidden $x$\nnext")
	if strings.Contains(plain, "hidden") || strings.Contains(math, "x") {
		t.Errorf("commented content classified: plain=%q math=%q", plain, math)
	}
	if !strings.Contains(plain, "visible") || !strings.Contains(plain, "next") {
		t.Errorf("plain stream wrong: %q", plain)
	}
}

func TestLaTeX_EscapedPercentIsLiteral(t *testing.T) {
	plain, _ := parseTex(t, `fifty \% done`)
	if !strings.Contains(plain, "%") || !strings.Contains(plain, "done") {
		t.Errorf("escaped percent lost: %q", plain)
	}
}

func TestLaTeX_ThinSpaceBreaksDigitRuns(t *testing.T) {
	// 20\,000 is correctly typeset; its math text must not read back as a
	// bare 5-digit run.
	_, math := parseTex(t, `$20\,000$`)
	if strings.Contains(math, "20000") {
		t.Errorf("thin space did not separate digits: %q", math)
	}
	if !strings.Contains(math, "20") || !strings.Contains(math, "000") {
		t.Errorf("digits lost: %q", math)
	}
}

func TestLaTeX_CommandNamesAreNotText(t *testing.T) {
	plain, _ := parseTex(t, `\noindent some text \ldots here`)
	if strings.Contains(plain, "noindent") || strings.Contains(plain, "ldots") {
		t.Errorf("command names classified as text: %q", plain)
	}
}

func TestLaTeX_UnbalancedInputDoesNotPanic(t *testing.T) {
	for _, src := range []string{`}{`, `$unclosed`, `\end{foo}`, `\begin{bar} body`, `\`} {
		p := &LaTeXParser{}
		if _, err := p.Parse(strings.NewReader(src), "problem.tex"); err != nil {
			t.Errorf("src %q: unexpected error %v", src, err)
		}
	}
}
