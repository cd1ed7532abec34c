package pipeline

import (
	"context"
	"sync"

	"image-analyser/internal/models"
)

// Request is one pipeline run.
type Request struct {
	Seq     uint64
	Variant models.FilterVariant
	Sources []*models.ImageBuffer
	Params  models.ParameterSnapshot
}

// Result is the outcome of a Request.
type Result struct {
	Seq     uint64
	Variant models.FilterVariant
	Output  *models.ImageBuffer
	Err     error
}

// Runner executes requests off the control thread with at most one run in
// flight. A request submitted while another is running replaces any queued
// one and cancels the running one. Results reach onResult through deliver,
// and only the result of the most recently submitted request is applied.
type Runner struct {
	dispatcher *Dispatcher
	logger     Logger
	deliver    func(func())
	onResult   func(Result)

	mu      sync.Mutex
	seq     uint64
	running bool
	pending *Request
	cancel  context.CancelFunc
	closed  bool

	ctx      context.Context
	shutdown context.CancelFunc
	wg       sync.WaitGroup
}

// NewRunner creates a runner. deliver must run its argument on the control
// thread (fyne.Do in the GUI).
func NewRunner(dispatcher *Dispatcher, logger Logger, deliver func(func()), onResult func(Result)) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		dispatcher: dispatcher,
		logger:     logger,
		deliver:    deliver,
		onResult:   onResult,
		ctx:        ctx,
		shutdown:   cancel,
	}
}

// Submit schedules a run and returns its sequence number, or 0 once the
// runner is closed.
func (r *Runner) Submit(variant models.FilterVariant, sources []*models.ImageBuffer, params models.ParameterSnapshot) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0
	}

	r.seq++
	req := Request{
		Seq:     r.seq,
		Variant: variant,
		Sources: append([]*models.ImageBuffer(nil), sources...),
		Params:  params,
	}

	if r.running {
		if r.pending != nil {
			r.logger.Debug("Runner", "queued request superseded", map[string]interface{}{
				"superseded": r.pending.Seq,
				"by":         req.Seq,
			})
		}
		r.pending = &req
		r.cancel()
		return req.Seq
	}

	r.start(req)
	return req.Seq
}

// Latest returns the sequence number of the most recent submission.
func (r *Runner) Latest() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

// Close cancels outstanding work and waits for the worker to exit. Results
// that arrive after Close are dropped.
func (r *Runner) Close() {
	r.mu.Lock()
	r.closed = true
	r.pending = nil
	r.mu.Unlock()

	r.shutdown()
	r.wg.Wait()
}

// start must be called with r.mu held.
func (r *Runner) start(req Request) {
	ctx, cancel := context.WithCancel(r.ctx)
	r.cancel = cancel
	r.running = true
	r.wg.Add(1)
	go r.run(ctx, req)
}

func (r *Runner) run(ctx context.Context, req Request) {
	defer r.wg.Done()

	out, err := r.dispatcher.Process(ctx, req.Variant, req.Sources, req.Params)
	res := Result{Seq: req.Seq, Variant: req.Variant, Output: out, Err: err}

	r.mu.Lock()
	r.cancel()
	r.running = false
	if next := r.pending; next != nil && !r.closed {
		r.pending = nil
		r.start(*next)
	}
	closed := r.closed
	r.mu.Unlock()

	if closed {
		return
	}
	r.deliver(func() { r.apply(res) })
}

// apply runs on the control thread.
func (r *Runner) apply(res Result) {
	r.mu.Lock()
	stale := res.Seq != r.seq || r.closed
	r.mu.Unlock()

	if stale {
		r.logger.Debug("Runner", "stale result discarded", map[string]interface{}{
			"seq":     res.Seq,
			"variant": res.Variant.String(),
		})
		return
	}
	r.onResult(res)
}
