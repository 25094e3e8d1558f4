package memory

import (
	"fmt"

	"opsdesk/pkg/domain"
)

// Collection is an insertion-ordered set of records keyed by id. It owns its
// values: every read hands out a clone and every write stores one.
type Collection[T any] struct {
	entity domain.EntityType
	idOf   func(T) string
	clone  func(T) T
	order  []string
	items  map[string]T
}

// NewCollection builds an empty collection for entity.
func NewCollection[T any](entity domain.EntityType, idOf func(T) string, clone func(T) T) *Collection[T] {
	return &Collection[T]{
		entity: entity,
		idOf:   idOf,
		clone:  clone,
		items:  make(map[string]T),
	}
}

// Len returns the number of records held.
func (c *Collection[T]) Len() int { return len(c.order) }

// List returns clones of every record in insertion order.
func (c *Collection[T]) List() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.clone(c.items[id]))
	}
	return out
}

// Get returns a clone of the record with id.
func (c *Collection[T]) Get(id string) (T, bool) {
	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.clone(v), true
}

// Insert adds a new record. Duplicate or empty ids are rejected.
func (c *Collection[T]) Insert(v T) error {
	id := c.idOf(v)
	if id == "" {
		return domain.ErrInvalidEntity{Entity: c.entity, Reason: "missing id"}
	}
	if _, exists := c.items[id]; exists {
		return domain.ErrInvalidEntity{Entity: c.entity, Reason: fmt.Sprintf("duplicate id %s", id)}
	}
	c.order = append(c.order, id)
	c.items[id] = c.clone(v)
	return nil
}

// Put inserts v or replaces the record sharing its id, keeping its position.
func (c *Collection[T]) Put(v T) {
	id := c.idOf(v)
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = c.clone(v)
}

// Apply runs mutate against a copy of the record and stores the result only
// when mutate succeeds. The id may not change.
func (c *Collection[T]) Apply(id string, mutate func(*T) error) (T, error) {
	var zero T
	current, ok := c.items[id]
	if !ok {
		return zero, domain.ErrNotFound{Entity: c.entity, ID: id}
	}
	working := c.clone(current)
	if err := mutate(&working); err != nil {
		return zero, err
	}
	if got := c.idOf(working); got != id {
		return zero, domain.ErrInvalidEntity{Entity: c.entity, Reason: fmt.Sprintf("id changed from %s to %s", id, got)}
	}
	c.items[id] = c.clone(working)
	return c.clone(working), nil
}

// Delete removes the record with id and reports whether it existed.
func (c *Collection[T]) Delete(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Replace swaps the whole content for values, dropping later duplicates.
func (c *Collection[T]) Replace(values []T) {
	c.order = make([]string, 0, len(values))
	c.items = make(map[string]T, len(values))
	for _, v := range values {
		id := c.idOf(v)
		if _, seen := c.items[id]; seen {
			continue
		}
		c.order = append(c.order, id)
		c.items[id] = c.clone(v)
	}
}

func (c *Collection[T]) copy() *Collection[T] {
	cp := &Collection[T]{
		entity: c.entity,
		idOf:   c.idOf,
		clone:  c.clone,
		order:  append([]string(nil), c.order...),
		items:  make(map[string]T, len(c.items)),
	}
	for id, v := range c.items {
		cp.items[id] = c.clone(v)
	}
	return cp
}
