package taskpool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunExecutesTask(t *testing.T) {
	p := New()

	var ran atomic.Bool
	p.Run(func() { ran.Store(true) })

	assert.Eventually(t, ran.Load, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return p.Active() == 0 }, time.Second, 5*time.Millisecond)
}

func TestRunTracksUntilCompletion(t *testing.T) {
	p := New()

	release := make(chan struct{})
	p.Run(func() { <-release })
	p.Run(func() { <-release })

	assert.Eventually(t, func() bool { return p.Active() == 2 }, time.Second, 5*time.Millisecond)
	close(release)
	assert.Eventually(t, func() bool { return p.Active() == 0 }, time.Second, 5*time.Millisecond)
}

func TestRunAfterDelaysExecution(t *testing.T) {
	p := New()

	var ran atomic.Bool
	start := time.Now()
	p.RunAfter(50*time.Millisecond, func() { ran.Store(true) })

	assert.False(t, ran.Load())
	assert.Eventually(t, ran.Load, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestRunAfterNegativeDelayRunsImmediately(t *testing.T) {
	p := New()

	var ran atomic.Bool
	p.RunAfter(-time.Minute, func() { ran.Store(true) })

	assert.Eventually(t, ran.Load, time.Second, 5*time.Millisecond)
}
