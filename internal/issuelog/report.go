package issuelog

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Render writes the report to w, grouped by the portion of each key before its
// first '/'. Entries use a checkbox list so the report can be pasted into an
// issue tracker.
func (l *Log) Render(w io.Writer) error {
	lastPrefix := ""
	first := true
	for _, k := range l.Keys() {
		prefix := k
		if i := strings.Index(k, "/"); i >= 0 {
			prefix = k[:i]
		}
		if first || prefix != lastPrefix {
			lastPrefix = prefix
			first = false
			if _, err := fmt.Fprintf(w, "\n* %s\n", prefix); err != nil {
				return err
			}
		}
		for _, msg := range l.Messages(k) {
			if _, err := fmt.Fprintf(w, "    * [ ] %s: %s\n", k, msg); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReportHeader returns the line that opens a persisted report: the log
// filename, the working directory the check ran in, and the git hash the
// collection was checked at (empty when not in a repository).
func ReportHeader(logfile string) string {
	wd, _ := os.Getwd()
	return fmt.Sprintf("logfile is %s, working directory is %s, git hash is %q", logfile, wd, gitShortHash())
}

// ReportFilename returns the timestamped name for a persisted report,
// including the git short hash when the working tree is a repository.
func ReportFilename(now time.Time) string {
	hash := gitShortHash()
	sep := ""
	if hash != "" {
		sep = "-"
	}
	return fmt.Sprintf("problem-check-log-%s%s%s.txt", now.Format("20060102-150405"), sep, hash)
}

func gitShortHash() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
