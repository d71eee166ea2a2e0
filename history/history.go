// Package history records the expressions evaluated in calculator sessions.
package history

import (
	"sync"
	"time"
)

// Entry is one evaluated expression.
type Entry struct {
	// Seq orders entries. Stores assign it on Append.
	Seq int64
	// Input is the expression as the user wrote it.
	Input string
	// Output is the result of evaluation, empty if there was an error.
	Output string
	// Err is the error message from evaluation, if any.
	Err string
	// At is the time of evaluation.
	At time.Time
}

// Store persists history entries.
type Store interface {
	// Append records an entry and returns its sequence number.
	Append(e Entry) (int64, error)
	// Recent returns up to limit of the most recent entries, oldest first.
	// A limit that is not positive returns every entry.
	Recent(limit int) ([]Entry, error)
	// Close releases the store's resources.
	Close() error
}

// Memory is a Store that keeps entries in memory.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Append records an entry.
func (m *Memory) Append(e Entry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.Seq = int64(len(m.entries)) + 1
	m.entries = append(m.entries, e)
	return e.Seq, nil
}

// Recent returns the most recent entries, oldest first.
func (m *Memory) Recent(limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.entries
	if limit > 0 && len(v) > limit {
		v = v[len(v)-limit:]
	}
	return append([]Entry(nil), v...), nil
}

// Close does nothing.
func (m *Memory) Close() error {
	return nil
}
