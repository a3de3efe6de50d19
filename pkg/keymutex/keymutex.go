// Package keymutex provides a mutex per key. The admission policy locks the
// event id around its capacity check-and-insert so two requests racing for
// the last slot of the same event are serialized in-process.
package keymutex

import "sync"

// KeyMutex hands out one mutex per key. Mutexes are created lazily and kept
// for the life of the process; the key space here (event ids) is small.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// New returns an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{locks: make(map[uint]*sync.Mutex)}
}

func (k *KeyMutex) get(key uint) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// Lock acquires the mutex for key.
func (k *KeyMutex) Lock(key uint) {
	k.get(key).Lock()
}

// Unlock releases the mutex for key.
func (k *KeyMutex) Unlock(key uint) {
	k.get(key).Unlock()
}
