package statement

import (
	"strings"
	"testing"

	"github.com/ghamerly/problem-style-check/internal/classify"
)

func parseMd(t *testing.T, src string) (plain, math string) {
	t.Helper()
	p := &MarkdownParser{}
	root, err := p.Parse(strings.NewReader(src), "problem.md")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return classify.Classify(root)
}

func TestMarkdown_InlineMath(t *testing.T) {
	plain, math := parseMd(t, "There are $n$ items and $12,34$ left.\n")

	if strings.Contains(plain, "12,34") {
		t.Errorf("math content leaked into plain: %q", plain)
	}
	if !strings.Contains(math, "n") || !strings.Contains(math, "12,34") {
		t.Errorf("math stream wrong: %q", math)
	}
	if !strings.Contains(plain, "there are") || !strings.Contains(plain, "left.") {
		t.Errorf("plain stream wrong: %q", plain)
	}
}

func TestMarkdown_HeadingsAndParagraphsAreGroups(t *testing.T) {
	plain, _ := parseMd(t, "# Title\n\nalpha\n\nbeta\n")
	fields := strings.Fields(plain)
	want := []string{"title", "alpha", "beta"}
	if len(fields) != len(want) {
		t.Fatalf("expected %v, got %v", want, fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("fields[%d]: expected %q, got %q", i, want[i], fields[i])
		}
	}
}

func TestMarkdown_CodeIsNotProse(t *testing.T) {
	src := "Run `wc -l` on it.\n\n```\nif n > 10000:\n    pass\n```\n"
	plain, math := parseMd(t, src)
	if strings.Contains(plain, "wc") || strings.Contains(plain, "10000") {
		t.Errorf("code content classified as prose: %q", plain)
	}
	if strings.Contains(math, "10000") {
		t.Errorf("code content classified as math: %q", math)
	}
	if !strings.Contains(plain, "run") || !strings.Contains(plain, "on it.") {
		t.Errorf("plain stream wrong: %q", plain)
	}
}

func TestMarkdown_EscapedDollarDoesNotToggle(t *testing.T) {
	plain, math := parseMd(t, "it costs \\$5 today\n")
	if strings.Contains(math, "5") {
		t.Errorf("escaped dollar opened math mode: %q", math)
	}
	if !strings.Contains(plain, "today") {
		t.Errorf("plain stream wrong: %q", plain)
	}
}

func TestMarkdown_UnbalancedDollarEndsWithParagraph(t *testing.T) {
	plain, math := parseMd(t, "broken $math here\n\nnext paragraph\n")
	if strings.Contains(math, "next paragraph") {
		t.Errorf("math toggle leaked across blocks: %q", math)
	}
	if !strings.Contains(plain, "next paragraph") {
		t.Errorf("plain stream wrong: %q", plain)
	}
}

func TestMarkdown_MathInsideEmphasis(t *testing.T) {
	_, math := parseMd(t, "value *is $x+1$ exactly*\n")
	if !strings.Contains(math, "x+1") {
		t.Errorf("math inside emphasis lost: %q", math)
	}
}

func TestStatementFilenames(t *testing.T) {
	tests := []struct {
		filename string
		is       bool
		language string
	}{
		{"problem.tex", true, "en"},
		{"problem.en.tex", true, "en"},
		{"problem.sv.tex", true, "sv"},
		{"problem.md", true, "en"},
		{"problem.da.md", true, "da"},
		{"problem.pdf", false, ""},
		{"notes.tex", false, ""},
	}
	for _, tt := range tests {
		if got := IsStatementFile(tt.filename); got != tt.is {
			t.Errorf("IsStatementFile(%q) = %v, want %v", tt.filename, got, tt.is)
		}
		if tt.is {
			if got := Language(tt.filename); got != tt.language {
				t.Errorf("Language(%q) = %q, want %q", tt.filename, got, tt.language)
			}
		}
	}
}

func TestForFile(t *testing.T) {
	if _, err := ForFile("problem.tex"); err != nil {
		t.Errorf("expected tex parser, got error %v", err)
	}
	if _, err := ForFile("problem.md"); err != nil {
		t.Errorf("expected md parser, got error %v", err)
	}
	if _, err := ForFile("problem.pdf"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
