package registry

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// CacheFileSource reads the published-name set from a plain file with one
// name per line.
type CacheFileSource struct {
	Path string
}

func (s *CacheFileSource) Describe() string { return "name cache " + s.Path }

func (s *CacheFileSource) Names(_ context.Context) (map[string]bool, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open name cache: %w", err)
	}
	defer f.Close()

	names := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if name != "" {
			names[name] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read name cache: %w", err)
	}
	return names, nil
}
