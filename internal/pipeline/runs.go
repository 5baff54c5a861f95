package pipeline

import (
	"sync"
	"time"
)

// RunStatus represents the state of an audit run.
type RunStatus string

const (
	StatusQueued    RunStatus = "queued"
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// Run tracks the state of one audit over a problem collection.
type Run struct {
	mu sync.Mutex

	ID   string `json:"run_id"`
	Root string `json:"root"`

	// Problems restricts the run to the named packages; empty means all
	// discovered packages under Root.
	Problems []string `json:"problems,omitempty"`

	Status RunStatus `json:"status"`
	Error  string    `json:"error,omitempty"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: the finished issue map, not serialized with the run.
	findings map[string][]string
}

// Progress tracks how far the run has come.
type Progress struct {
	TotalProblems     int `json:"total_problems"`
	ProblemsProcessed int `json:"problems_processed"`
	Findings          int `json:"findings"`
}

// NewRun creates a queued run over root, optionally restricted to the named
// packages.
func NewRun(root string, problems []string) *Run {
	now := time.Now()
	return &Run{
		ID:        newRunID(),
		Root:      root,
		Problems:  append([]string(nil), problems...),
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetStatus updates run status atomically.
func (r *Run) SetStatus(status RunStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = status
	r.UpdatedAt = time.Now()
}

// SetError marks the run failed with a reason.
func (r *Run) SetError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = StatusFailed
	r.Error = msg
	r.UpdatedAt = time.Now()
}

// SetTotalProblems records how many packages the run covers.
func (r *Run) SetTotalProblems(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Progress.TotalProblems = n
	r.UpdatedAt = time.Now()
}

// IncrProcessed atomically bumps the processed-problem count.
func (r *Run) IncrProcessed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Progress.ProblemsProcessed++
	r.UpdatedAt = time.Now()
}

// SetFindings stores the finished issue map and its size.
func (r *Run) SetFindings(findings map[string][]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findings = findings
	n := 0
	for _, msgs := range findings {
		n += len(msgs)
	}
	r.Progress.Findings = n
	r.UpdatedAt = time.Now()
}

// Findings returns the finished issue map, or nil while the run is going.
func (r *Run) Findings() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findings
}

// RunSnapshot is a read-only, JSON-safe copy of run state.
type RunSnapshot struct {
	ID        string    `json:"run_id"`
	Root      string    `json:"root"`
	Problems  []string  `json:"problems,omitempty"`
	Status    RunStatus `json:"status"`
	Error     string    `json:"error,omitempty"`
	Progress  Progress  `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the run state.
func (r *Run) Snapshot() RunSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RunSnapshot{
		ID:        r.ID,
		Root:      r.Root,
		Problems:  append([]string(nil), r.Problems...),
		Status:    r.Status,
		Error:     r.Error,
		Progress:  r.Progress,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// RunStore is a thread-safe in-memory run registry with TTL eviction.
type RunStore struct {
	mu   sync.Mutex
	runs map[string]*Run
	ttl  time.Duration
}

func NewRunStore(ttl time.Duration) *RunStore {
	return &RunStore{
		runs: make(map[string]*Run),
		ttl:  ttl,
	}
}

func (s *RunStore) Put(run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
}

func (s *RunStore) Get(id string) *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs[id]
}

// Cleanup removes expired runs.
func (s *RunStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, run := range s.runs {
		run.mu.Lock()
		expired := now.Sub(run.UpdatedAt) > s.ttl
		run.mu.Unlock()
		if expired {
			delete(s.runs, id)
		}
	}
}
