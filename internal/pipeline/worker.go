package pipeline

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/ghamerly/problem-style-check/internal/classify"
	"github.com/ghamerly/problem-style-check/internal/config"
	"github.com/ghamerly/problem-style-check/internal/issuelog"
	"github.com/ghamerly/problem-style-check/internal/metadata"
	"github.com/ghamerly/problem-style-check/internal/problem"
	"github.com/ghamerly/problem-style-check/internal/speller"
	"github.com/ghamerly/problem-style-check/internal/statement"
	"github.com/ghamerly/problem-style-check/internal/textcheck"
)

// Worker audits single problem packages into an issue-log partition.
type Worker struct {
	dicts *speller.Store
	log   *slog.Logger
	cfg   config.Config
}

func NewWorker(dicts *speller.Store, log *slog.Logger, cfg config.Config) *Worker {
	return &Worker{
		dicts: dicts,
		log:   log,
		cfg:   cfg,
	}
}

// Audit runs every per-problem check, writing findings into issues. It never
// returns an error: every failure degrades into a logged finding scoped as
// narrowly as possible, and a panic in any check is converted into an error
// under the problem's key. The returned metadata feeds the cross-problem
// consistency checks (nil when metadata could not be loaded).
func (w *Worker) Audit(p problem.Problem, issues *issuelog.Log) (declared map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("audit panicked", "problem", p.Shortname, "panic", r)
			issues.Error(p.Shortname,
				fmt.Sprintf("an exception occurred when checking this problem: %v\n%s", r, debug.Stack()))
			declared = nil
		}
	}()

	declared = w.checkMetadata(p, issues)
	w.checkStatements(p, issues)
	w.checkSubmissions(p, issues)
	w.checkImages(p, issues)
	return declared
}

func (w *Worker) checkMetadata(p problem.Problem, issues *issuelog.Log) map[string]any {
	yamlKey := p.Shortname + "/problem.yaml"

	declared, err := metadata.LoadDeclared(p.ConfigPath())
	if err != nil {
		issues.Error(yamlKey, fmt.Sprintf("could not load metadata: %v", err))
		return nil
	}

	if title := metadata.Title(declared); title != "" {
		metadata.CheckNameTitle(issues, p.Shortname, title)
	}

	metadata.CheckDefaults(issues, p.Shortname, declared, metadata.DefaultSchema(),
		metadata.CheckOptions{WarnRedundantDefaults: w.cfg.WarnRedundantDefaults})
	return declared
}

func (w *Worker) checkStatements(p problem.Problem, issues *issuelog.Log) {
	files, err := p.StatementFiles()
	if err != nil {
		issues.Error(p.Shortname, fmt.Sprintf("could not list statement files: %v", err))
		return
	}

	for _, file := range files {
		base := filepath.Base(file)
		key := filepath.Join(p.Shortname, "problem_statement", base)

		src, err := os.ReadFile(file)
		if err != nil {
			issues.Error(key, fmt.Sprintf("could not read statement: %v", err))
			continue
		}
		lines := statement.SplitLines(src)

		plainText, mathText := "", ""
		parser, err := statement.ForFile(base)
		if err == nil {
			root, perr := parser.Parse(bytes.NewReader(src), base)
			if perr != nil {
				issues.Warn(key, fmt.Sprintf("could not parse statement: %v", perr))
			} else {
				plainText, mathText = classify.Classify(root)
			}
		} else {
			issues.Warn(key, err.Error())
		}

		dict := w.dicts.ForLanguage(statement.Language(base))
		textcheck.Detect(issues, key, plainText, mathText, lines, dict)
	}
}

func (w *Worker) checkSubmissions(p problem.Problem, issues *issuelog.Log) {
	inv, err := p.Submissions()
	if err != nil {
		issues.Error(p.Shortname, fmt.Sprintf("could not read submissions: %v", err))
		return
	}
	problem.CheckSubmissions(issues, p.Shortname, inv)
}

func (w *Worker) checkImages(p problem.Problem, issues *issuelog.Log) {
	if err := problem.CheckImages(issues, p, w.cfg.MaxImageKB); err != nil {
		issues.Error(p.Shortname, fmt.Sprintf("could not check images: %v", err))
	}
}
