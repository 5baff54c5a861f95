// Package speller loads per-language word lists used to spot misspelled words
// and bare numbers in problem statements.
package speller

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// GlobalLanguage holds words accepted in every language (proper nouns, judge
// vocabulary). Lookups merge it into the requested language's set.
const GlobalLanguage = "global"

// Store maps a language tag to its set of lowercase words. Built once per run
// and immutable afterward.
type Store struct {
	languages map[string]map[string]bool
}

// Load reads a dictionary tree: one subdirectory per language, each containing
// word-list files with one word per line. Words are lowercased; blank lines
// are skipped.
func Load(root string, log *slog.Logger) (*Store, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read dictionary root: %w", err)
	}

	s := &Store{languages: make(map[string]map[string]bool)}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		language := entry.Name()
		words := s.languages[language]
		if words == nil {
			words = make(map[string]bool)
			s.languages[language] = words
		}

		dir := filepath.Join(root, language)
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read dictionary dir %s: %w", dir, err)
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			path := filepath.Join(dir, f.Name())
			if err := loadWordFile(path, words); err != nil {
				return nil, err
			}
			log.Info("loaded dictionary", "file", f.Name(), "language", language)
		}
	}
	return s, nil
}

func loadWordFile(path string, words map[string]bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word != "" {
			words[word] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read word list %s: %w", path, err)
	}
	return nil
}

// ForLanguage returns the union of the language's word set with the global
// set, or nil when no dictionary exists for the language. A nil result means
// the spelling check is skipped for that statement.
func (s *Store) ForLanguage(language string) map[string]bool {
	if s == nil {
		return nil
	}
	base, ok := s.languages[language]
	if !ok {
		return nil
	}
	merged := make(map[string]bool, len(base))
	for w := range base {
		merged[w] = true
	}
	for w := range s.languages[GlobalLanguage] {
		merged[w] = true
	}
	return merged
}

// Languages returns the loaded language tags (unordered).
func (s *Store) Languages() []string {
	langs := make([]string, 0, len(s.languages))
	for l := range s.languages {
		langs = append(langs, l)
	}
	return langs
}
