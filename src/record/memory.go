package record

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// MemoryLog is a Log kept in process memory, with sequential decimal ids
// starting at 1. It backs tests and ephemeral single-process deployments.
type MemoryLog struct {
	mu      sync.Mutex
	nextID  uint64
	entries []Entry // oldest first
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{nextID: 1}
}

func (l *MemoryLog) Append(_ context.Context, content string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := strconv.FormatUint(l.nextID, 10)
	l.nextID++
	l.entries = append(l.entries, Entry{ID: id, Content: content})
	return id, nil
}

func (l *MemoryLog) Edit(_ context.Context, id, content string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries[i].Content = content
			return nil
		}
	}
	return fmt.Errorf("edit entry %s: %w", id, ErrNotFound)
}

func (l *MemoryLog) Delete(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete entry %s: %w", id, ErrNotFound)
}

func (l *MemoryLog) History(_ context.Context, limit int) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, l.entries[i])
	}
	return out, nil
}

// Len reports how many entries the log currently holds.
func (l *MemoryLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
