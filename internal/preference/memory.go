// Package preference keeps each user's sticky news category in process memory.
//
// Entries live for the lifetime of the process and are never evicted, so the
// map grows with the number of distinct users seen since startup.
package preference

import (
	"sync"

	"github.com/newsdesk/newsdesk/internal/model"
)

// Memory is a concurrency-safe map from user id to category.
type Memory struct {
	mu    sync.Mutex
	prefs map[int64]model.Category
}

// NewMemory creates an empty Memory.
func NewMemory() *Memory {
	return &Memory{prefs: make(map[int64]model.Category)}
}

// Get returns the user's category, recording CategoryNone on first access.
func (m *Memory) Get(userID int64) model.Category {
	m.mu.Lock()
	defer m.mu.Unlock()

	category, ok := m.prefs[userID]
	if !ok {
		m.prefs[userID] = model.CategoryNone
	}
	return category
}

// Set stores the user's category.
func (m *Memory) Set(userID int64, category model.Category) {
	m.mu.Lock()
	m.prefs[userID] = category
	m.mu.Unlock()
}

// Len returns the number of users with an entry.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prefs)
}
