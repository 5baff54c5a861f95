package problem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ghamerly/problem-style-check/internal/issuelog"
)

func makeProblem(t *testing.T, root, shortname string) Problem {
	t.Helper()
	dir := filepath.Join(root, shortname)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "problem.yaml"), []byte("name: X\n"), 0o644); err != nil {
		t.Fatalf("write problem.yaml: %v", err)
	}
	return Problem{Root: dir, Shortname: shortname}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	makeProblem(t, root, "beta")
	makeProblem(t, root, "alpha")
	if err := os.MkdirAll(filepath.Join(root, "notaproblem"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	problems, err := Discover(root)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %d", len(problems))
	}
	if problems[0].Shortname != "alpha" || problems[1].Shortname != "beta" {
		t.Errorf("expected sorted shortnames, got %v", problems)
	}
}

func TestDiscover_NestedPackagesIgnored(t *testing.T) {
	root := t.TempDir()
	p := makeProblem(t, root, "outer")
	makeProblem(t, p.Root, "inner") // too deep, must not be found

	problems, err := Discover(root)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(problems) != 1 || problems[0].Shortname != "outer" {
		t.Errorf("expected only the outer package, got %v", problems)
	}
}

func TestStatementFiles(t *testing.T) {
	root := t.TempDir()
	p := makeProblem(t, root, "abc")
	stDir := p.StatementDir()
	if err := os.MkdirAll(stDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"problem.tex", "problem.sv.tex", "img.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(stDir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	files, err := p.StatementFiles()
	if err != nil {
		t.Fatalf("statement files: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 statement files, got %v", files)
	}
	if filepath.Base(files[0]) != "problem.sv.tex" || filepath.Base(files[1]) != "problem.tex" {
		t.Errorf("unexpected statement files: %v", files)
	}
}

func writeSubmission(t *testing.T, p Problem, category, name string) {
	t.Helper()
	dir := filepath.Join(p.Root, "submissions", category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestSubmissionsInventory(t *testing.T) {
	root := t.TempDir()
	p := makeProblem(t, root, "abc")
	writeSubmission(t, p, "accepted", "sol.cpp")
	writeSubmission(t, p, "accepted", "sol.py")
	writeSubmission(t, p, "wrong_answer", "bad.java")

	inv, err := p.Submissions()
	if err != nil {
		t.Fatalf("submissions: %v", err)
	}
	if len(inv["accepted"]) != 2 {
		t.Errorf("expected 2 accepted, got %v", inv["accepted"])
	}
	langs := map[string]bool{}
	for _, s := range inv["accepted"] {
		langs[s.Language] = true
	}
	if !langs["C++"] || !langs["Python 3"] {
		t.Errorf("language inference wrong: %v", langs)
	}
	if len(inv["wrong_answer"]) != 1 || inv["wrong_answer"][0].Language != "Java" {
		t.Errorf("wrong_answer inventory wrong: %v", inv["wrong_answer"])
	}
}

func TestCheckSubmissions(t *testing.T) {
	tests := []struct {
		name string
		inv  Inventory
		want []string
		not  []string
	}{
		{
			name: "robust set",
			inv: Inventory{
				"accepted": {{Language: "C++"}, {Language: "Python 3"}},
				"wrong_answer":        {{Language: "C++"}},
				"time_limit_exceeded": {{Language: "C++"}},
			},
			not: []string{"has no WA", "has no TLE", "only one AC", `"slow"`},
		},
		{
			name: "single fast accepted",
			inv: Inventory{
				"accepted": {{Language: "C++"}},
			},
			want: []string{
				"has no WA submissions",
				"has no TLE submissions",
				"has only one AC submission",
				`there are no "slow" accepted submissions (only: C++)`,
			},
		},
		{
			name: "c sharp counts as fast",
			inv: Inventory{
				"accepted":            {{Language: "C#"}, {Language: "C"}},
				"wrong_answer":        {{Language: "C"}},
				"time_limit_exceeded": {{Language: "C"}},
			},
			want: []string{`there are no "slow" accepted submissions (only: C, C#)`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := issuelog.New()
			CheckSubmissions(log, "abc", tt.inv)
			msgs := log.Messages("abc")
			for _, want := range tt.want {
				found := false
				for _, m := range msgs {
					if strings.Contains(m, want) {
						found = true
					}
				}
				if !found {
					t.Errorf("expected finding containing %q, got %v", want, msgs)
				}
			}
			for _, not := range tt.not {
				for _, m := range msgs {
					if strings.Contains(m, not) {
						t.Errorf("unexpected finding %q in %v", not, msgs)
					}
				}
			}
		})
	}
}

func TestCheckImages_LargeImage(t *testing.T) {
	root := t.TempDir()
	p := makeProblem(t, root, "abc")
	stDir := p.StatementDir()
	if err := os.MkdirAll(stDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	big := make([]byte, 300*1024)
	if err := os.WriteFile(filepath.Join(stDir, "figure.png"), big, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(stDir, "small.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	log := issuelog.New()
	if err := CheckImages(log, p, 200); err != nil {
		t.Fatalf("check images: %v", err)
	}

	key := filepath.Join("abc", "problem_statement", "figure.png")
	msgs := log.Messages(key)
	if len(msgs) != 1 || !strings.Contains(msgs[0], "image is large (300 kB)") {
		t.Errorf("expected large-image warning, got %v", msgs)
	}
	smallKey := filepath.Join("abc", "problem_statement", "small.png")
	if len(log.Messages(smallKey)) != 0 {
		t.Errorf("small image should not warn: %v", log.Messages(smallKey))
	}
}

func TestCheckImages_UnreadablePDF(t *testing.T) {
	root := t.TempDir()
	p := makeProblem(t, root, "abc")
	stDir := p.StatementDir()
	if err := os.MkdirAll(stDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(stDir, "fig.pdf"), []byte("not a pdf"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	log := issuelog.New()
	if err := CheckImages(log, p, 200); err != nil {
		t.Fatalf("check images: %v", err)
	}
	key := filepath.Join("abc", "problem_statement", "fig.pdf")
	if msgs := log.Messages(key); len(msgs) != 1 || !strings.Contains(msgs[0], "unreadable pdf image") {
		t.Errorf("expected unreadable-pdf warning, got %v", msgs)
	}
}
