package problem

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ghamerly/problem-style-check/internal/issuelog"
)

// Submission is one judged submission inside a problem package.
type Submission struct {
	Path     string
	Language string
}

// Inventory maps an outcome category (accepted, wrong_answer,
// time_limit_exceeded, ...) to its submissions.
type Inventory map[string][]Submission

// languageByExt infers the submission language from the file extension, the
// way the judge assigns languages to uploads.
var languageByExt = map[string]string{
	".c":    "C",
	".cc":   "C++",
	".cpp":  "C++",
	".cxx":  "C++",
	".cs":   "C#",
	".go":   "Go",
	".hs":   "Haskell",
	".java": "Java",
	".js":   "JavaScript",
	".kt":   "Kotlin",
	".pas":  "Pascal",
	".php":  "PHP",
	".py":   "Python 3",
	".rb":   "Ruby",
	".rs":   "Rust",
}

// Submissions reads the package's submissions directory into an inventory.
// A missing directory yields an empty inventory, which the robustness check
// then reports.
func (p Problem) Submissions() (Inventory, error) {
	root := filepath.Join(p.Root, "submissions")
	categories, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return Inventory{}, nil
		}
		return nil, fmt.Errorf("read submissions: %w", err)
	}

	inv := Inventory{}
	for _, cat := range categories {
		if !cat.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(root, cat.Name()))
		if err != nil {
			return nil, fmt.Errorf("read submissions/%s: %w", cat.Name(), err)
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			lang, ok := languageByExt[strings.ToLower(filepath.Ext(f.Name()))]
			if !ok {
				lang = "unknown"
			}
			inv[cat.Name()] = append(inv[cat.Name()], Submission{
				Path:     filepath.Join(root, cat.Name(), f.Name()),
				Language: lang,
			})
		}
	}
	return inv, nil
}

// fastLanguageRe matches languages whose runtimes are too fast to pin a time
// limit: C and C++.
var fastLanguageRe = regexp.MustCompile(`^C(\+\+)?\b`)

// CheckSubmissions warns when the submission set is not robust enough:
// missing wrong_answer or time_limit_exceeded coverage, a single accepted
// submission, or accepted submissions only in fast languages.
func CheckSubmissions(log *issuelog.Log, shortname string, inv Inventory) {
	acceptedLanguages := make(map[string]bool)
	for _, s := range inv["accepted"] {
		acceptedLanguages[s.Language] = true
	}

	if len(inv["wrong_answer"]) == 0 {
		log.Warn(shortname, "has no WA submissions")
	}
	if len(inv["time_limit_exceeded"]) == 0 {
		log.Warn(shortname, "has no TLE submissions")
	}
	if len(inv["accepted"]) == 1 {
		log.Warn(shortname, "has only one AC submission")
	}

	hasSlow := false
	for lang := range acceptedLanguages {
		if !fastLanguageRe.MatchString(lang) {
			hasSlow = true
		}
	}
	if !hasSlow {
		langs := make([]string, 0, len(acceptedLanguages))
		for lang := range acceptedLanguages {
			langs = append(langs, lang)
		}
		sort.Strings(langs)
		log.Warn(shortname, fmt.Sprintf("there are no \"slow\" accepted submissions (only: %s)", strings.Join(langs, ", ")))
	}
}
