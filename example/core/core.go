// Package core is the innermost layer. It keeps users in memory.
package core

import (
	"fmt"
	"sync"
)

//errfrom:union
type StoreError interface {
	error
	storeError()
}

type NotFound struct{ ID string }

func (e NotFound) Error() string { return fmt.Sprintf("user %s not found", e.ID) }
func (NotFound) storeError()     {}

type Closed struct{}

func (Closed) Error() string { return "store is closed" }
func (Closed) storeError()   {}

// Store maps user IDs to names.
type Store struct {
	mu     sync.Mutex
	users  map[string]string
	closed bool
}

func NewStore(users map[string]string) *Store {
	return &Store{users: users}
}

func (s *Store) Get(id string) (string, StoreError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", Closed{}
	}
	name, ok := s.users[id]
	if !ok {
		return "", NotFound{ID: id}
	}
	return name, nil
}

func (s *Store) Put(id, name string) StoreError {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Closed{}
	}
	s.users[id] = name
	return nil
}

func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
