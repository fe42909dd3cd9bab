package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer so the spinner goroutine and the test can
// both touch it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerWritesFrames(t *testing.T) {
	var out syncBuffer
	s := newSpinnerWithContext(context.Background(), "working")
	s.out = &out
	s.interval = time.Millisecond

	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	if out.String() == "" {
		t.Error("spinner should have written at least one frame")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var out syncBuffer
	s := newSpinnerWithContext(context.Background(), "working")
	s.out = &out
	s.interval = time.Millisecond

	s.Start()
	s.Stop()
	s.Stop() // must not panic or block
}

func TestSpinnerStopsOnContextCancel(t *testing.T) {
	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "working")
	s.out = &out
	s.interval = time.Millisecond

	s.Start()
	cancel()

	select {
	case <-s.finished:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
}
