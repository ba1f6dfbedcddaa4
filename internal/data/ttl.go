package data

import (
	"sync"
	"time"
)

type ttlEntry[V any] struct {
	v   V
	exp time.Time
}

// ttlMap is a process local map whose entries expire after their own TTL.
type ttlMap[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]ttlEntry[V]
	now  func() time.Time
}

func newTTLMap[K comparable, V any]() *ttlMap[K, V] {
	return &ttlMap[K, V]{data: make(map[K]ttlEntry[V]), now: time.Now}
}

func (m *ttlMap[K, V]) Get(k K) (V, bool) {
	m.mu.RLock()
	e, ok := m.data[k]
	m.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	if m.now().After(e.exp) {
		m.mu.Lock()
		delete(m.data, k)
		m.mu.Unlock()
		var zero V
		return zero, false
	}
	return e.v, true
}

func (m *ttlMap[K, V]) Set(k K, v V, ttl time.Duration) {
	m.mu.Lock()
	m.data[k] = ttlEntry[V]{v: v, exp: m.now().Add(ttl)}
	m.mu.Unlock()
}

func (m *ttlMap[K, V]) Delete(k K) {
	m.mu.Lock()
	delete(m.data, k)
	m.mu.Unlock()
}

// Sweep drops every expired entry and returns how many were removed.
func (m *ttlMap[K, V]) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, e := range m.data {
		if now.After(e.exp) {
			delete(m.data, k)
			n++
		}
	}
	return n
}
