package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ghamerly/problem-style-check/internal/config"
	"github.com/ghamerly/problem-style-check/internal/issuelog"
	"github.com/ghamerly/problem-style-check/internal/problem"
	"github.com/ghamerly/problem-style-check/internal/registry"
	"github.com/ghamerly/problem-style-check/internal/speller"
)

// consistencyFields must be single-valued across a problem collection.
var consistencyFields = []string{"source", "source_url", "license"}

// Orchestrator runs collection audits, either synchronously (CLI) or queued
// as runs behind the HTTP API.
type Orchestrator struct {
	runs       *RunStore
	queue      chan *Run
	dicts      *speller.Store
	nameSource registry.Source
	log        *slog.Logger
	cfg        config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the audit pipeline. nameSource may be nil, in which
// case the uniqueness check degrades to a run-wide error.
func NewOrchestrator(cfg config.Config, dicts *speller.Store, nameSource registry.Source, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		runs:       NewRunStore(cfg.RunTTL),
		queue:      make(chan *Run, 16),
		dicts:      dicts,
		nameSource: nameSource,
		log:        log,
		cfg:        cfg,
	}
}

// Start launches run-executing goroutines for serve mode.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for {
			select {
			case <-workerCtx.Done():
				return
			case run := <-o.queue:
				o.execute(workerCtx, run)
			}
		}
	}()

	// Run store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.runs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline. The queue channel stays open so a
// Submit racing the shutdown parks its run as queued instead of panicking;
// the workers exit on cancellation.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// Submit queues an audit run.
func (o *Orchestrator) Submit(run *Run) error {
	o.runs.Put(run)
	select {
	case o.queue <- run:
		return nil
	default:
		run.SetError("run queue is full")
		return fmt.Errorf("run queue is full")
	}
}

// GetRun returns a run by ID.
func (o *Orchestrator) GetRun(id string) *Run {
	return o.runs.Get(id)
}

func (o *Orchestrator) execute(ctx context.Context, run *Run) {
	log := o.log.With("run_id", run.ID)
	run.SetStatus(StatusRunning)
	issues, err := o.audit(ctx, run.Root, run.Problems, run)
	if err != nil {
		log.Error("audit run failed", "error", err)
		run.SetError(err.Error())
		return
	}
	run.SetFindings(issues.Snapshot())
	run.SetStatus(StatusCompleted)
}

// Audit checks the whole collection under root, or only the named packages,
// and returns the merged issue log. The only error conditions are structural
// (the collection cannot be enumerated); every per-problem failure is a
// logged finding instead.
func (o *Orchestrator) Audit(ctx context.Context, root string, only []string) (*issuelog.Log, error) {
	return o.audit(ctx, root, only, nil)
}

func (o *Orchestrator) audit(ctx context.Context, root string, only []string, run *Run) (*issuelog.Log, error) {
	problems, err := o.selectProblems(root, only)
	if err != nil {
		return nil, err
	}
	if run != nil {
		run.SetTotalProblems(len(problems))
	}
	o.log.Info("starting audit", "root", root, "problems", len(problems))

	issues := issuelog.New()

	shortnames := make([]string, len(problems))
	for i, p := range problems {
		shortnames[i] = p.Shortname
	}
	registry.CheckUniqueness(ctx, issues, withRetry(o.nameSource), shortnames)

	// Each problem is audited into its own log partition so workers never
	// interleave within a key; partitions merge back in collection order.
	partitions := make([]*issuelog.Log, len(problems))
	metas := make([]map[string]any, len(problems))

	worker := NewWorker(o.dicts, o.log, o.cfg)
	sem := make(chan struct{}, o.cfg.WorkerCount)
	var wg sync.WaitGroup
	for i, p := range problems {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, p problem.Problem) {
			defer wg.Done()
			defer func() { <-sem }()
			partition := issuelog.New()
			metas[i] = worker.Audit(p, partition)
			partitions[i] = partition
			if run != nil {
				run.IncrProcessed()
			}
		}(i, p)
	}
	wg.Wait()

	for _, partition := range partitions {
		issues.Merge(partition)
	}

	checkConsistency(issues, metas)

	o.log.Info("audit finished", "root", root, "findings", issues.Len())
	return issues, nil
}

// selectProblems enumerates the collection, optionally restricted to named
// packages. A requested name with no package is an error: the caller asked
// for something that does not exist.
func (o *Orchestrator) selectProblems(root string, only []string) ([]problem.Problem, error) {
	problems, err := problem.Discover(root)
	if err != nil {
		return nil, err
	}
	if len(only) == 0 {
		return problems, nil
	}

	byName := make(map[string]problem.Problem, len(problems))
	for _, p := range problems {
		byName[p.Shortname] = p
	}
	selected := make([]problem.Problem, 0, len(only))
	for _, name := range only {
		p, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("no problem package named %q under %s", name, root)
		}
		selected = append(selected, p)
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].Shortname < selected[j].Shortname })
	return selected, nil
}

// checkConsistency warns when fields that should be uniform across the
// collection carry multiple values. Problems whose metadata failed to load
// are excluded; a problem missing the field entirely makes the field
// uncheckable.
func checkConsistency(issues *issuelog.Log, metas []map[string]any) {
	for _, field := range consistencyFields {
		counts := make(map[string]int)
		checkable := true
		any := false
		for _, meta := range metas {
			if meta == nil {
				continue
			}
			any = true
			v, ok := meta[field]
			if !ok {
				checkable = false
				break
			}
			counts[fmt.Sprintf("%v", v)]++
		}
		switch {
		case !any:
			// Nothing to compare.
		case !checkable:
			issues.Warn(issuelog.GeneralKey,
				fmt.Sprintf("could not check for consistency of metadata field %s", field))
		case len(counts) > 1:
			issues.Warn(issuelog.GeneralKey,
				fmt.Sprintf("multiple values for %s: %v", field, counts))
		}
	}
}
