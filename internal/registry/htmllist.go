package registry

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// HTMLListSource scrapes a public problem-list page for published names.
// Used when no API or database snapshot is available: the judge's problem
// index links every problem as /problems/<name>.
type HTMLListSource struct {
	url        string
	httpClient *http.Client
}

func NewHTMLListSource(url string) *HTMLListSource {
	return &HTMLListSource{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *HTMLListSource) Describe() string { return "problem list " + s.url }

func (s *HTMLListSource) Names(ctx context.Context) (map[string]bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch problem list: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch problem list: status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse problem list: %w", err)
	}

	names := make(map[string]bool)
	collectProblemLinks(doc, names)
	return names, nil
}

// collectProblemLinks walks the parsed page and records the trailing segment
// of every /problems/<name> link.
func collectProblemLinks(n *html.Node, names map[string]bool) {
	if n.Type == html.ElementNode && n.Data == "a" {
		for _, attr := range n.Attr {
			if attr.Key != "href" {
				continue
			}
			if name, ok := problemNameFromHref(attr.Val); ok {
				names[name] = true
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectProblemLinks(c, names)
	}
}

func problemNameFromHref(href string) (string, bool) {
	i := strings.Index(href, "/problems/")
	if i < 0 {
		return "", false
	}
	name := href[i+len("/problems/"):]
	if j := strings.IndexAny(name, "/?#"); j >= 0 {
		name = name[:j]
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	return name, true
}
