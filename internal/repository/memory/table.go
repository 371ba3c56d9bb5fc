package memory

import (
	"sync"

	"github.com/baharkarakas/ereceipt-backend/internal/repository"
)

// table is one key-value map behind its own lock. Every method is atomic with
// respect to the other methods of the same table.
type table[V any] struct {
	mu   sync.RWMutex
	rows map[string]V
}

func newTable[V any]() *table[V] {
	return &table[V]{rows: make(map[string]V)}
}

func (t *table[V]) get(key string) (V, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[key]
	if !ok {
		var zero V
		return zero, repository.ErrNotFound
	}
	return v, nil
}

func (t *table[V]) insert(key string, v V) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[key]; ok {
		return repository.ErrConflict
	}
	t.rows[key] = v
	return nil
}

func (t *table[V]) put(key string, v V) {
	t.mu.Lock()
	t.rows[key] = v
	t.mu.Unlock()
}

func (t *table[V]) update(key string, fn func(*V) error) (V, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[key]
	if !ok {
		var zero V
		return zero, repository.ErrNotFound
	}
	if err := fn(&v); err != nil {
		return t.rows[key], err
	}
	t.rows[key] = v
	return v, nil
}

func (t *table[V]) delete(key string) {
	t.mu.Lock()
	delete(t.rows, key)
	t.mu.Unlock()
}

func (t *table[V]) deleteWhere(match func(V) bool) []V {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []V
	for k, v := range t.rows {
		if match(v) {
			out = append(out, v)
			delete(t.rows, k)
		}
	}
	return out
}

func (t *table[V]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
