package pipeline

import (
	"sync"
	"testing"
	"time"

	"image-analyser/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serialDeliver mimics a single control thread.
type serialDeliver struct {
	mu sync.Mutex
}

func (s *serialDeliver) do(f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f()
}

func TestRunnerDeliversResult(t *testing.T) {
	d, _ := newTestDispatcher()
	results := make(chan Result, 1)
	deliver := &serialDeliver{}
	r := NewRunner(d, nopLogger{}, deliver.do, func(res Result) { results <- res })
	defer r.Close()

	seq := r.Submit(models.FilterGrayscale, []*models.ImageBuffer{constantBuffer(2, 2, 5)}, models.NoParameters{})

	select {
	case res := <-results:
		assert.Equal(t, seq, res.Seq)
		assert.NoError(t, res.Err)
		assert.NotNil(t, res.Output)
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}
}

func TestRunnerDeliversErrors(t *testing.T) {
	tr := &recordingTransformer{failAt: "divide"}
	d := NewDispatcher(tr, nopLogger{})
	results := make(chan Result, 1)
	deliver := &serialDeliver{}
	r := NewRunner(d, nopLogger{}, deliver.do, func(res Result) { results <- res })
	defer r.Close()

	r.Submit(models.FilterDivide, []*models.ImageBuffer{constantBuffer(2, 2, 5), constantBuffer(2, 2, 5)}, nil)

	select {
	case res := <-results:
		assert.ErrorIs(t, res.Err, ErrTransformFailed)
		assert.Nil(t, res.Output)
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}
}

func TestRunnerLastTriggerWins(t *testing.T) {
	tr := &recordingTransformer{block: make(chan struct{})}
	d := NewDispatcher(tr, nopLogger{})

	var mu sync.Mutex
	var applied []Result
	done := make(chan struct{})
	deliver := &serialDeliver{}
	r := NewRunner(d, nopLogger{}, deliver.do, func(res Result) {
		mu.Lock()
		applied = append(applied, res)
		mu.Unlock()
		close(done)
	})
	defer r.Close()

	src := []*models.ImageBuffer{constantBuffer(2, 2, 5)}
	first := r.Submit(models.FilterGrayscale, src, nil)

	// Wait until the first run is inside the library.
	require.Eventually(t, func() bool { return len(tr.names()) == 1 }, time.Second, time.Millisecond)

	second := r.Submit(models.FilterHistogramEqualization, src, nil)
	third := r.Submit(models.FilterGrayscale, src, nil)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
	assert.Equal(t, third, r.Latest())

	// Unblock every call: the first run finishes, the queued third runs.
	close(tr.block)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("latest result not applied")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, applied, 1)
	assert.Equal(t, third, applied[0].Seq)

	// The superseded second request never reached the library.
	assert.Equal(t, []string{"grayscale", "grayscale"}, tr.names())
}

func TestRunnerAtMostOneRunInFlight(t *testing.T) {
	tr := &recordingTransformer{block: make(chan struct{})}
	d := NewDispatcher(tr, nopLogger{})
	deliver := &serialDeliver{}
	r := NewRunner(d, nopLogger{}, deliver.do, func(Result) {})

	src := []*models.ImageBuffer{constantBuffer(2, 2, 5)}
	for i := 0; i < 5; i++ {
		r.Submit(models.FilterGrayscale, src, nil)
	}

	require.Eventually(t, func() bool { return len(tr.names()) == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, tr.names(), 1)

	close(tr.block)
	r.Close()
	assert.LessOrEqual(t, len(tr.names()), 2)
}

func TestRunnerSubmitAfterClose(t *testing.T) {
	d, tr := newTestDispatcher()
	r := NewRunner(d, nopLogger{}, func(f func()) { f() }, func(Result) {
		t.Fatal("closed runner delivered a result")
	})
	r.Close()

	assert.Zero(t, r.Submit(models.FilterGrayscale, []*models.ImageBuffer{constantBuffer(1, 1, 1)}, nil))
	assert.Empty(t, tr.names())
}
