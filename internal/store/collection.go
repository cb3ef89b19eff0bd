package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrNoChange may be returned by an Update callback to skip the write.
// Update then reports success.
var ErrNoChange = errors.New("store: no change")

// Collection owns the in-memory copy of one snapshot. Reads share a read
// lock; writes are serialized and persisted before they become visible.
type Collection[T any] struct {
	name  string
	store SnapshotStore

	mu    sync.RWMutex
	items []T
	raw   []byte // last persisted snapshot
}

// Open loads the named snapshot, or starts empty when none exists
func Open[T any](ctx context.Context, s SnapshotStore, name string) (*Collection[T], error) {
	raw, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	items, err := decode[T](name, raw)
	if err != nil {
		return nil, err
	}
	return &Collection[T]{name: name, store: s, items: items, raw: raw}, nil
}

func decode[T any](name string, raw []byte) ([]T, error) {
	items := []T{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s snapshot: %w", name, err)
	}
	return items, nil
}

// View runs fn against the current items. fn must not modify or retain the
// slice or anything it references.
func (c *Collection[T]) View(fn func(items []T) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fn(c.items)
}

// Update hands fn a private copy of the items and persists whatever fn
// returns. If fn or the save fails, nothing changes.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	working, err := decode[T](c.name, c.raw)
	if err != nil {
		return err
	}
	next, err := fn(working)
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}
	if next == nil {
		next = []T{}
	}

	raw, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", c.name, err)
	}
	if err := c.store.Save(ctx, c.name, raw); err != nil {
		return err
	}
	c.items = next
	c.raw = raw
	return nil
}
