package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingProcessor struct {
	calls  atomic.Int32
	failAt int32
	cancel context.CancelFunc
	stopAt int32
}

func (p *countingProcessor) ProcessMessage(ctx context.Context) error {
	n := p.calls.Add(1)
	if n == p.stopAt {
		p.cancel()
	}
	if n == p.failAt {
		return errors.New("boom")
	}
	return nil
}

func Test_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &countingProcessor{failAt: 2, stopAt: 5, cancel: cancel}
	w := New(Config{Name: "test-worker", Processor: p})

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
	// errors do not stop the loop, cancellation does
	assert.Equal(t, int32(5), p.calls.Load())
}
