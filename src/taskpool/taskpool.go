// Package taskpool tracks fire-and-forget units of work. Tasks carry no
// result and cannot be cancelled; a panicking task takes the process down,
// which is the intended failure channel.
package taskpool

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Pool struct {
	mu    sync.Mutex
	tasks map[string]struct{}
}

func New() *Pool {
	return &Pool{tasks: make(map[string]struct{})}
}

// Run launches task on its own goroutine, tracking it until completion.
func (p *Pool) Run(task func()) {
	id := uuid.NewString()

	p.mu.Lock()
	p.tasks[id] = struct{}{}
	p.mu.Unlock()

	go func() {
		defer func() {
			p.mu.Lock()
			delete(p.tasks, id)
			p.mu.Unlock()
		}()
		task()
	}()
}

// RunAfter launches task once delay has elapsed. Negative delays run
// immediately.
func (p *Pool) RunAfter(delay time.Duration, task func()) {
	p.Run(func() {
		if delay > 0 {
			time.Sleep(delay)
		}
		task()
	})
}

// Active reports how many tasks are currently tracked.
func (p *Pool) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tasks)
}
