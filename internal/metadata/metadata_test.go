package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ghamerly/problem-style-check/internal/issuelog"
)

func yamlKey(problem string) string { return problem + "/problem.yaml" }

func TestCheckDefaults_MissingMetadata(t *testing.T) {
	log := issuelog.New()
	CheckDefaults(log, "abc", nil, DefaultSchema(), CheckOptions{})

	msgs := log.Messages(yamlKey("abc"))
	if len(msgs) != 1 || msgs[0] != "there is no metadata" {
		t.Errorf("expected exactly one missing-metadata error, got %v", msgs)
	}
}

func TestCheckDefaults_UnknownKey(t *testing.T) {
	log := issuelog.New()
	declared := map[string]any{"foo": 1}
	schema := map[string]any{"bar": 0}
	CheckDefaults(log, "abc", declared, schema, CheckOptions{})

	msgs := log.Messages(yamlKey("abc"))
	if len(msgs) != 1 || msgs[0] != "option foo is not in default" {
		t.Errorf("expected schema-violation error, got %v", msgs)
	}
}

func TestCheckDefaults_WatchList(t *testing.T) {
	log := issuelog.New()
	declared := map[string]any{
		"limits": map[string]any{"memory": 256},
	}
	CheckDefaults(log, "abc", declared, DefaultSchema(), CheckOptions{WarnRedundantDefaults: true})

	msgs := log.Messages(yamlKey("abc"))
	found := false
	for _, m := range msgs {
		if m == "specifying unusual metadata value limits/memory" {
			found = true
		}
		if strings.Contains(m, "specifies default value") {
			t.Errorf("256 != default, should not warn redundant: %v", msgs)
		}
	}
	if !found {
		t.Errorf("expected watch-list warning, got %v", msgs)
	}
}

func TestCheckDefaults_RedundantDefaultToggle(t *testing.T) {
	declared := map[string]any{"validation": "default"}

	log := issuelog.New()
	CheckDefaults(log, "abc", declared, DefaultSchema(), CheckOptions{WarnRedundantDefaults: true})
	msgs := log.Messages(yamlKey("abc"))
	redundant := false
	for _, m := range msgs {
		if m == "specifies default value for validation; remove the definition" {
			redundant = true
		}
	}
	if !redundant {
		t.Errorf("expected redundant-default warning, got %v", msgs)
	}

	log = issuelog.New()
	CheckDefaults(log, "abc", declared, DefaultSchema(), CheckOptions{WarnRedundantDefaults: false})
	for _, m := range log.Messages(yamlKey("abc")) {
		if strings.Contains(m, "specifies default value") {
			t.Errorf("redundancy check should be off: %v", m)
		}
	}
}

func TestCheckDefaults_NumericEquality(t *testing.T) {
	// yaml may decode 2048 as int while the schema holds int; a float
	// spelling like 2048.0 must still compare equal.
	log := issuelog.New()
	declared := map[string]any{
		"limits": map[string]any{"memory": float64(2048)},
	}
	CheckDefaults(log, "abc", declared, DefaultSchema(), CheckOptions{WarnRedundantDefaults: true})

	redundant := false
	for _, m := range log.Messages(yamlKey("abc")) {
		if strings.Contains(m, "specifies default value for limits/memory") {
			redundant = true
		}
	}
	if !redundant {
		t.Error("expected 2048.0 to equal the 2048 default")
	}
}

func TestCheckDefaults_MandatoryKeyNeverRedundant(t *testing.T) {
	log := issuelog.New()
	declared := map[string]any{"name": "Some Problem"}
	CheckDefaults(log, "abc", declared, DefaultSchema(), CheckOptions{WarnRedundantDefaults: true})
	if msgs := log.Messages(yamlKey("abc")); len(msgs) != 0 {
		t.Errorf("mandatory key with no default should emit nothing, got %v", msgs)
	}
}

func TestLoadDeclared(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "problem.yaml")
	content := "name: Test Problem\nlimits:\n  memory: 256\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	declared, err := LoadDeclared(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if declared["name"] != "Test Problem" {
		t.Errorf("name: got %v", declared["name"])
	}
	limits, ok := declared["limits"].(map[string]any)
	if !ok || limits["memory"] != 256 {
		t.Errorf("limits: got %v", declared["limits"])
	}
}

func TestLoadDeclared_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "problem.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	declared, err := LoadDeclared(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if declared != nil {
		t.Errorf("expected nil map for empty file, got %v", declared)
	}
}

func TestCheckNameTitle(t *testing.T) {
	tests := []struct {
		shortname string
		title     string
		wantWarn  bool
	}{
		{"busyboard", "Busy Board", false},
		{"busyboard", "Busy-Board!", false},
		{"busyboard", "Other Title", true},
	}
	for _, tt := range tests {
		log := issuelog.New()
		CheckNameTitle(log, tt.shortname, tt.title)
		got := len(log.Messages(tt.shortname)) > 0
		if got != tt.wantWarn {
			t.Errorf("%s vs %q: warn=%v, want %v", tt.shortname, tt.title, got, tt.wantWarn)
		}
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		declared map[string]any
		want     string
	}{
		{"plain string", map[string]any{"name": "Plain"}, "Plain"},
		{"prefers en", map[string]any{"name": map[string]any{"sv": "Svensk", "en": "English"}}, "English"},
		{"falls back", map[string]any{"name": map[string]any{"sv": "Svensk"}}, "Svensk"},
		{"missing", map[string]any{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.declared); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
