// Package search ranks tasks and notes against a free-text query.
//
// The Engine fetches candidates from a Source, which already narrows them by
// substring match, scores every candidate, merges both kinds and keeps the
// best results. Dispatcher and Debouncer sit in front of the engine for
// interactive input.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Joseda-hg/taskify/internal/model"
)

const DefaultLimit = 10

// Source is the capability the engine searches. Implementations are bound to
// one backend and, for remote stores, one owner.
type Source interface {
	SearchTasks(ctx context.Context, term string) ([]model.Task, error)
	SearchNotes(ctx context.Context, term string) ([]model.Note, error)
}

type Kind string

const (
	KindTask Kind = "task"
	KindNote Kind = "note"
)

// Result is one ranked record. Exactly one of Task or Note is set, matching Kind.
type Result struct {
	Kind  Kind        `json:"kind"`
	Task  *model.Task `json:"task,omitempty"`
	Note  *model.Note `json:"note,omitempty"`
	Score int         `json:"score"`
}

func (r Result) ID() string {
	if r.Kind == KindTask {
		return r.Task.ID
	}
	return r.Note.ID
}

func (r Result) Title() string {
	if r.Kind == KindTask {
		return r.Task.Title
	}
	return r.Note.Title
}

func (r Result) UpdatedAt() time.Time {
	if r.Kind == KindTask {
		return r.Task.UpdatedAt
	}
	return r.Note.UpdatedAt
}

type Status string

const (
	// StatusIdle means the query was blank and nothing was searched.
	StatusIdle   Status = "idle"
	StatusOK     Status = "ok"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// Outcome separates "no matches" from "search failed".
type Outcome struct {
	Query   string
	Status  Status
	Results []Result
	Err     error
	// Seq is set by the Dispatcher; zero for direct engine calls.
	Seq uint64
}

// Observer receives one call per executed search.
type Observer interface {
	ObserveSearch(status string, elapsed time.Duration)
}

type Engine struct {
	source   Source
	limit    int
	log      logrus.FieldLogger
	observer Observer
}

type EngineOption func(*Engine)

func WithLimit(limit int) EngineOption {
	return func(e *Engine) {
		if limit > 0 {
			e.limit = limit
		}
	}
}

func WithLogger(log logrus.FieldLogger) EngineOption {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

func WithObserver(observer Observer) EngineOption {
	return func(e *Engine) { e.observer = observer }
}

func NewEngine(source Source, opts ...EngineOption) *Engine {
	discard := logrus.New()
	discard.SetLevel(logrus.PanicLevel)

	e := &Engine{source: source, limit: DefaultLimit, log: discard}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search runs both kind-specific fetches concurrently and ranks the union.
// Either fetch failing fails the whole search; partial results are never
// returned.
func (e *Engine) Search(ctx context.Context, query string) Outcome {
	term := strings.TrimSpace(query)
	if term == "" {
		return Outcome{Query: term, Status: StatusIdle}
	}

	start := time.Now()
	outcome := e.search(ctx, term)
	elapsed := time.Since(start)

	if e.observer != nil {
		e.observer.ObserveSearch(string(outcome.Status), elapsed)
	}

	entry := e.log.WithFields(logrus.Fields{
		"query":   term,
		"status":  outcome.Status,
		"results": len(outcome.Results),
		"elapsed": elapsed,
	})
	if outcome.Err != nil {
		entry.WithError(outcome.Err).Warn("search failed")
	} else {
		entry.Debug("search completed")
	}

	return outcome
}

func (e *Engine) search(ctx context.Context, term string) Outcome {
	var (
		tasks []model.Task
		notes []model.Note
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		found, err := e.source.SearchTasks(groupCtx, term)
		if err != nil {
			return fmt.Errorf("search tasks: %w", err)
		}
		tasks = found
		return nil
	})
	group.Go(func() error {
		found, err := e.source.SearchNotes(groupCtx, term)
		if err != nil {
			return fmt.Errorf("search notes: %w", err)
		}
		notes = found
		return nil
	})
	if err := group.Wait(); err != nil {
		return Outcome{Query: term, Status: StatusFailed, Err: err}
	}

	results := Rank(term, tasks, notes, e.limit)
	if len(results) == 0 {
		return Outcome{Query: term, Status: StatusEmpty, Results: results}
	}
	return Outcome{Query: term, Status: StatusOK, Results: results}
}

// Rank scores tasks and notes against term, merges them tasks first, sorts
// by descending score keeping arrival order on ties, and keeps at most limit.
func Rank(term string, tasks []model.Task, notes []model.Note, limit int) []Result {
	s := newScorer(term)

	results := make([]Result, 0, len(tasks)+len(notes))
	for i := range tasks {
		task := tasks[i]
		results = append(results, Result{Kind: KindTask, Task: &task, Score: s.score(task.Title, task.Body())})
	}
	for i := range notes {
		note := notes[i]
		results = append(results, Result{Kind: KindNote, Note: &note, Score: s.score(note.Title, note.Content)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// IsCanceled reports whether a failed outcome was caused by context
// cancellation rather than the store.
func (o Outcome) IsCanceled() bool {
	return o.Err != nil && (errors.Is(o.Err, context.Canceled) || errors.Is(o.Err, context.DeadlineExceeded))
}
