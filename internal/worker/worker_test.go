package worker

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolRunsJobs(t *testing.T) {
	p := NewPool(3)

	var count int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		p.Submit(func() {
			defer wg.Done()
			atomic.AddInt64(&count, 1)
		})
	}
	wg.Wait()
	p.Stop()
	require.Equal(t, int64(20), atomic.LoadInt64(&count))
}

func TestPoolStopWaitsForInflight(t *testing.T) {
	p := NewPool(1)
	done := false
	p.Submit(func() { done = true })
	p.Stop()
	require.True(t, done)
}

func TestPoolDefaultsToOneWorker(t *testing.T) {
	p := NewPool(0)
	ran := false
	p.Submit(func() { ran = true })
	p.Stop()
	require.True(t, ran)
}

func TestPoolIgnoresNilJob(t *testing.T) {
	p := NewPool(1)
	require.NotPanics(t, func() {
		p.Submit(nil)
		p.Stop()
	})
}
