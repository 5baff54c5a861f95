// Package registry answers "is this problem name already published?". It
// supports several sources for the published-name set: a REST endpoint, a
// judge database, a public problem-list HTML page, and a plain cache file.
package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ghamerly/problem-style-check/internal/issuelog"
)

// Source produces the set of published problem names.
type Source interface {
	// Names returns the published names, lowercased.
	Names(ctx context.Context) (map[string]bool, error)
	// Describe names the source for log messages.
	Describe() string
}

// First returns the first configured source, in precedence order. All
// arguments may be empty; a nil result means no source is configured.
func First(serviceURL, apiKey, dbPath, listURL, cacheFile string) Source {
	switch {
	case serviceURL != "":
		return NewRESTSource(serviceURL, apiKey)
	case dbPath != "":
		return &SQLiteSource{Path: dbPath}
	case listURL != "":
		return NewHTMLListSource(listURL)
	case cacheFile != "":
		return &CacheFileSource{Path: cacheFile}
	}
	return nil
}

// CheckUniqueness reports problems whose names are already published. A nil
// or failing source degrades to a single run-wide error; the check is skipped,
// not fatal.
func CheckUniqueness(ctx context.Context, log *issuelog.Log, src Source, shortnames []string) {
	if src == nil {
		log.Error(issuelog.GeneralKey, "could not check whether problem names are already used in Kattis")
		return
	}
	published, err := src.Names(ctx)
	if err != nil || len(published) == 0 {
		log.Error(issuelog.GeneralKey,
			fmt.Sprintf("could not check whether problem names are already used in Kattis (%s)", src.Describe()))
		return
	}

	var collisions []string
	for _, name := range shortnames {
		if published[strings.ToLower(name)] {
			collisions = append(collisions, name)
		}
	}
	if len(collisions) > 0 {
		sort.Strings(collisions)
		log.Error(issuelog.GeneralKey,
			fmt.Sprintf("some problems use names already in Kattis: [%s]", strings.Join(collisions, ", ")))
	}
}
