package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RESTSource fetches the published-name set from a judge HTTP API.
type RESTSource struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewRESTSource returns a source for GET {baseURL}/api/problems/names.
func NewRESTSource(baseURL, apiKey string) *RESTSource {
	return &RESTSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *RESTSource) Describe() string { return "name service " + s.baseURL }

// namesResponse is the body of GET /api/problems/names.
type namesResponse struct {
	Names []string `json:"names"`
}

func (s *RESTSource) Names(ctx context.Context) (map[string]bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/problems/names", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch names: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("fetch names: status %d: %s", resp.StatusCode, string(body))
	}

	var parsed namesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode names: %w", err)
	}

	names := make(map[string]bool, len(parsed.Names))
	for _, n := range parsed.Names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			names[n] = true
		}
	}
	return names, nil
}

// Close releases idle connections.
func (s *RESTSource) Close() {
	s.httpClient.CloseIdleConnections()
}
