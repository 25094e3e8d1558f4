package domain

import "fmt"

// ErrNotFound is returned when an operation references an unknown id.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ErrInvalidTransition is returned when a status change is not permitted from
// the entity's current state. The entity is left untouched.
type ErrInvalidTransition struct {
	Entity EntityType
	ID     string
	From   string
	To     string
}

func (e ErrInvalidTransition) Error() string {
	return fmt.Sprintf("%s %s cannot move from %s to %s", e.Entity, e.ID, e.From, e.To)
}

// ErrInvalidQuantity is returned for non-positive (or overflowing) restock amounts.
type ErrInvalidQuantity struct {
	ItemID   string
	Quantity int
}

func (e ErrInvalidQuantity) Error() string {
	return fmt.Sprintf("invalid restock quantity %d for item %s", e.Quantity, e.ItemID)
}

// ErrInvalidEntity is returned when a created or patched record fails validation.
type ErrInvalidEntity struct {
	Entity EntityType
	Reason string
}

func (e ErrInvalidEntity) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, e.Reason)
}

// ErrPersistence wraps a snapshot read or write failure. The store logs and
// swallows these; they never reach mutation callers.
type ErrPersistence struct {
	Op  string
	Key string
	Err error
}

func (e ErrPersistence) Error() string {
	return fmt.Sprintf("snapshot %s %q: %v", e.Op, e.Key, e.Err)
}

func (e ErrPersistence) Unwrap() error { return e.Err }
