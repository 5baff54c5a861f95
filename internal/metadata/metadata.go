// Package metadata loads a problem's declared configuration and diffs it
// against the default schema.
package metadata

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/ghamerly/problem-style-check/internal/issuelog"
	"gopkg.in/yaml.v3"
)

// CheckOptions controls optional defaults-checker behavior.
type CheckOptions struct {
	// WarnRedundantDefaults reports declared values that equal the schema
	// default, since restating defaults makes a problem less future-proof.
	WarnRedundantDefaults bool
}

// LoadDeclared reads a problem.yaml into a key/value tree. A missing or empty
// file yields a nil map, which the defaults checker reports as absent
// metadata.
func LoadDeclared(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var declared map[string]any
	if err := yaml.Unmarshal(data, &declared); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return declared, nil
}

// CheckDefaults recursively compares the declared configuration against the
// default schema, logging findings under <problem>/problem.yaml. Every key
// path of declared is visited exactly once; keys are checked in sorted order
// so findings are deterministic.
func CheckDefaults(log *issuelog.Log, problem string, declared, schema map[string]any, opts CheckOptions) {
	key := problem + "/problem.yaml"
	if declared == nil {
		log.Error(key, "there is no metadata")
		return
	}
	checkLevel(log, key, declared, schema, "", opts)
}

func checkLevel(log *issuelog.Log, key string, declared, schema map[string]any, path string, opts CheckOptions) {
	names := make([]string, 0, len(declared))
	for k := range declared {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, k := range names {
		fullKey := k
		if path != "" {
			fullKey = path + "/" + k
		}

		if unusualSettings[fullKey] {
			log.Warn(key, fmt.Sprintf("specifying unusual metadata value %s", fullKey))
		}

		def, inSchema := schema[k]
		if !inSchema {
			log.Error(key, fmt.Sprintf("option %s is not in default", fullKey))
			continue
		}

		if nested, ok := declared[k].(map[string]any); ok {
			defNested, _ := def.(map[string]any)
			checkLevel(log, key, nested, defNested, fullKey, opts)
			continue
		}

		if opts.WarnRedundantDefaults && def != nil && valuesEqual(declared[k], def) {
			log.Warn(key, fmt.Sprintf("specifies default value for %s; remove the definition", fullKey))
		}
	}
}

// valuesEqual compares leaf values loosely: yaml decodes numbers as int or
// float64 depending on spelling, so 5 and 5.0 compare equal.
func valuesEqual(a, b any) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

var titleStripRe = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ShortTitle reduces a statement title to the form a directory shortname
// should match: alphanumerics only, lowercased.
func ShortTitle(title string) string {
	return titleStripRe.ReplaceAllString(title, "")
}

// CheckNameTitle warns when a problem's directory name does not match its
// declared title.
func CheckNameTitle(log *issuelog.Log, shortname, title string) {
	if shortname != strings.ToLower(ShortTitle(title)) {
		log.Warn(shortname, fmt.Sprintf("use matching directory name and title: %s %q", shortname, title))
	}
}

// Title extracts the statement title from declared metadata. The name field
// is either a plain string or a language-to-title map, preferring "en".
func Title(declared map[string]any) string {
	switch name := declared["name"].(type) {
	case string:
		return name
	case map[string]any:
		if en, ok := name["en"].(string); ok {
			return en
		}
		keys := make([]string, 0, len(name))
		for k := range name {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s, ok := name[k].(string); ok {
				return s
			}
		}
	}
	return ""
}
