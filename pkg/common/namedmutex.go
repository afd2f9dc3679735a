package common

import (
	"errors"
	"sync"
)

// ErrNamedMutexBusy is returned by NamedMutex.TryLock when the name is already held.
var ErrNamedMutexBusy = errors.New("named mutex is busy")

// NamedMutex provides one lock per name. Locks are created on first use and dropped when nobody holds them.
type NamedMutex struct {
	mutex sync.Mutex
	held  map[string]struct{}
}

func NewNamedMutex() *NamedMutex {
	return &NamedMutex{
		held: make(map[string]struct{}),
	}
}

// TryLock acquires the lock for `name` without waiting. The returned func releases it.
func (n *NamedMutex) TryLock(name string) (func(), error) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	if _, ok := n.held[name]; ok {
		return nil, ErrNamedMutexBusy
	}
	n.held[name] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			n.mutex.Lock()
			delete(n.held, name)
			n.mutex.Unlock()
		})
	}, nil
}
