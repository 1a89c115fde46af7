package concurrency

import (
	"sync"
)

// LockManager handles named locks
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// WithLock runs fn while holding the named lock
func (lm *LockManager) WithLock(key string, fn func() error) error {
	mu := lm.GetLock(key)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

// ForgetIdle drops the lock for key unless someone holds it, and reports
// whether it was dropped. A held lock stays until a later ForgetIdle.
func (lm *LockManager) ForgetIdle(key string) bool {
	v, ok := lm.locks.Load(key)
	if !ok {
		return false
	}
	mu := v.(*sync.Mutex)
	if !mu.TryLock() {
		return false
	}
	defer mu.Unlock()
	return lm.locks.CompareAndDelete(key, mu)
}

// Len returns the number of tracked locks
func (lm *LockManager) Len() int {
	n := 0
	lm.locks.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
