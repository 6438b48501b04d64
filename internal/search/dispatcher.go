package search

import (
	"context"
	"sync"
	"time"
)

// Searcher is satisfied by *Engine.
type Searcher interface {
	Search(ctx context.Context, query string) Outcome
}

// Dispatcher runs searches for interactive input. Every dispatched search gets
// the next sequence number and its outcome is delivered only if no newer
// search was dispatched in the meantime, so a slow earlier search can never
// overwrite the outcome of a faster later one.
//
// deliver is called with the dispatcher lock held and must not call back
// into the dispatcher.
type Dispatcher struct {
	searcher  Searcher
	deliver   func(Outcome)
	debouncer *Debouncer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	latest uint64
	closed bool
}

func NewDispatcher(searcher Searcher, delay time.Duration, deliver func(Outcome)) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		searcher: searcher,
		deliver:  deliver,
		ctx:      ctx,
		cancel:   cancel,
	}
	d.debouncer = NewDebouncer(delay, func(query string) { d.dispatch(query) })
	return d
}

// Submit records keyboard input; the search runs once input has been quiet
// for the debounce delay.
func (d *Dispatcher) Submit(query string) {
	d.debouncer.Trigger(query)
}

// Dispatch starts a search immediately and returns its sequence number.
// Input submitted earlier and still waiting for the debounce is dropped.
func (d *Dispatcher) Dispatch(query string) uint64 {
	d.debouncer.Cancel()
	return d.dispatch(query)
}

func (d *Dispatcher) dispatch(query string) uint64 {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return 0
	}
	d.latest++
	seq := d.latest
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		outcome := d.searcher.Search(d.ctx, query)
		outcome.Seq = seq
		d.publish(outcome)
	}()
	return seq
}

func (d *Dispatcher) publish(outcome Outcome) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || outcome.Seq != d.latest {
		return
	}
	d.deliver(outcome)
}

// Latest returns the sequence number of the most recent dispatch.
func (d *Dispatcher) Latest() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latest
}

// Close stops pending debounced input, cancels in-flight searches and waits
// for them to return. No outcome is delivered after Close.
func (d *Dispatcher) Close() {
	d.debouncer.Stop()

	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
}
