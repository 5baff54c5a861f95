// Package textcheck runs the pattern-based defect detectors over a classified
// problem statement: spelling and math-mode checks on the text streams, and
// line-scoped stylistic checks on the raw source.
package textcheck

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ghamerly/problem-style-check/internal/issuelog"
)

var (
	// A word starts and ends with a letter, digit, or underscore in any
	// script and contains no whitespace; interior punctuation (apostrophes,
	// hyphens) survives. \w would be ASCII-only here and truncate words in
	// non-English statements.
	wordRe = regexp.MustCompile(`[\p{L}\p{N}_](?:\S*[\p{L}\p{N}_])?`)

	// A token that leads with a digit, dot, or comma is a bare number that
	// should have been in math mode, not a misspelling.
	bareNumberRe = regexp.MustCompile(`^[0-9.,]+`)

	// In math mode, a number with a literal comma separator, or a bare run
	// of four or more digits, needs the escaped thousands separator.
	incorrectMathRe = regexp.MustCompile(`\b([0-9]+[0-9,]*,[0-9]+|[0-9]{4,})\b`)
)

// lineChecks are applied to each raw source line, first match wins per check.
// Every pattern is anchored with ^[^%]* so that commented-out content does not
// trigger findings. Known limitation: the anchor also suppresses matches after
// an escaped \% earlier in the line.
var lineChecks = []struct {
	re      *regexp.Regexp
	message string
}{
	{regexp.MustCompile(`(?i)^[^%]*"`),
		`uses double-quotes; use two single-quotes instead`},
	{regexp.MustCompile(`(?i)^[^%]*\.\.\.`),
		`use \ldots rather than three periods`},
	{regexp.MustCompile(`(?i)^[^%]*floating[- ]*point`),
		`use "real" rather than "floating-point"`},
	{regexp.MustCompile(`(?i)^[^%]*\\times\b`),
		`use \cdot instead of \times for multiplication`},
}

var (
	includegraphicsRe = regexp.MustCompile(`(?i)^[^%]*\\includegraphics`)
	graphicsWidthRe   = regexp.MustCompile(`^\[width=[0-9.]+\\(textwidth|linewidth)\]`)
	commentAnchorRe   = regexp.MustCompile(`^[^%]*`)
)

const includegraphicsMessage = `bad includegraphics width; use a multiplier (e.g. width=0.9\textwidth) or HTML layout can break`

// Tokenize extracts the distinct word tokens of a text stream.
func Tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, tok := range wordRe.FindAllString(text, -1) {
		tokens[tok] = true
	}
	return tokens
}

// Detect runs every sub-detector over the classified streams and the raw
// source lines, logging findings under key. The sub-detectors are independent:
// each runs regardless of the others' outcomes, and none of them fails for
// content reasons.
func Detect(log *issuelog.Log, key, plainText, mathText string, rawLines []string, dictionary map[string]bool) {
	checkPlainText(log, key, plainText, dictionary)
	checkMathText(log, key, mathText)
	checkLines(log, key, rawLines)
}

// checkPlainText splits unknown tokens into bare numbers (missing math mode)
// and misspellings. Skipped entirely when no dictionary is available for the
// statement's language.
func checkPlainText(log *issuelog.Log, key, plainText string, dictionary map[string]bool) {
	if len(dictionary) == 0 {
		return
	}

	var missingMathMode, misspelled []string
	for tok := range Tokenize(plainText) {
		if dictionary[tok] {
			continue
		}
		if bareNumberRe.MatchString(tok) {
			missingMathMode = append(missingMathMode, tok)
		} else {
			misspelled = append(misspelled, tok)
		}
	}

	if len(misspelled) > 0 {
		sort.Strings(misspelled)
		log.Warn(key, fmt.Sprintf("misspelled words: [%s]", strings.Join(misspelled, ", ")))
	}
	if len(missingMathMode) > 0 {
		sort.Strings(missingMathMode)
		log.Warn(key, fmt.Sprintf("missing math mode: [%s]", strings.Join(missingMathMode, ", ")))
	}
}

// checkMathText reports malformed numbers inside math mode.
func checkMathText(log *issuelog.Log, key, mathText string) {
	seen := make(map[string]bool)
	var incorrect []string
	for _, m := range incorrectMathRe.FindAllString(mathText, -1) {
		if !seen[m] {
			seen[m] = true
			incorrect = append(incorrect, m)
		}
	}
	if len(incorrect) == 0 {
		return
	}
	sort.Strings(incorrect)
	log.Warn(key, fmt.Sprintf(`incorrect math: [%s] (use \, (backslash comma) to separate thousands groups)`,
		strings.Join(incorrect, ", ")))
}

// checkLines applies the stylistic line checks. Each check fires at most once
// per document: the first matching line triggers the finding.
func checkLines(log *issuelog.Log, key string, rawLines []string) {
	for _, check := range lineChecks {
		for _, line := range rawLines {
			if check.re.MatchString(line) {
				log.Warn(key, check.message)
				break
			}
		}
	}

	for _, line := range rawLines {
		if lineHasBadGraphicsWidth(line) {
			log.Warn(key, includegraphicsMessage)
			break
		}
	}
}

// lineHasBadGraphicsWidth reports an \includegraphics whose width option is
// absent or not a fractional multiplier of \textwidth or \linewidth.
func lineHasBadGraphicsWidth(line string) bool {
	if !includegraphicsRe.MatchString(line) {
		return false
	}
	scope := commentAnchorRe.FindString(line)
	rest := scope
	for {
		i := strings.Index(rest, `\includegraphics`)
		if i < 0 {
			return false
		}
		after := rest[i+len(`\includegraphics`):]
		if !graphicsWidthRe.MatchString(after) {
			return true
		}
		rest = after
	}
}
