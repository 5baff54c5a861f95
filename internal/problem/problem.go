// Package problem locates problem packages and audits their non-statement
// contents: submissions robustness and statement images.
package problem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ghamerly/problem-style-check/internal/statement"
)

// Problem is one problem package on disk.
type Problem struct {
	Root      string // directory containing problem.yaml
	Shortname string
}

// ConfigPath returns the path to the package's problem.yaml.
func (p Problem) ConfigPath() string {
	return filepath.Join(p.Root, "problem.yaml")
}

// StatementDir returns the package's statement directory.
func (p Problem) StatementDir() string {
	return filepath.Join(p.Root, "problem_statement")
}

// StatementFiles returns the statement sources (problem.tex, problem.sv.md,
// ...) in sorted order.
func (p Problem) StatementFiles() ([]string, error) {
	entries, err := os.ReadDir(p.StatementDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read statement dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && statement.IsStatementFile(e.Name()) {
			files = append(files, filepath.Join(p.StatementDir(), e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Discover walks wd for problem packages, signified by the presence of a
// problem.yaml: wd itself and its immediate subdirectories. Results are
// sorted by shortname.
func Discover(wd string) ([]Problem, error) {
	var problems []Problem

	add := func(dir string) error {
		if _, err := os.Stat(filepath.Join(dir, "problem.yaml")); err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		problems = append(problems, Problem{Root: dir, Shortname: filepath.Base(abs)})
		return nil
	}

	if err := add(wd); err != nil {
		return nil, fmt.Errorf("discover problems: %w", err)
	}
	entries, err := os.ReadDir(wd)
	if err != nil {
		return nil, fmt.Errorf("discover problems: %w", err)
	}
	for _, e := range entries {
		info, err := os.Stat(filepath.Join(wd, e.Name())) // follow symlinks
		if err != nil || !info.IsDir() {
			continue
		}
		if err := add(filepath.Join(wd, e.Name())); err != nil {
			return nil, fmt.Errorf("discover problems: %w", err)
		}
	}

	sort.Slice(problems, func(i, j int) bool { return problems[i].Shortname < problems[j].Shortname })
	return problems, nil
}
