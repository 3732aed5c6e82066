// Package persistence defines the durable slot contract backing the entity
// store. Each collection mirrors to its own named slot holding one JSON
// document, so a missing or corrupt slot never invalidates the others.
package persistence

import (
	"context"
	"errors"
)

// Slot names, one per collection.
const (
	SlotAppointments = "appointments"
	SlotTodos        = "todos"
	SlotColorLabels  = "color_labels"
	SlotGroups       = "groups"
	SlotContacts     = "contacts"
)

var (
	// ErrNotFound is returned when the requested slot has never been written.
	ErrNotFound = errors.New("persistence: not found")
	// ErrCorruptSlot marks a slot that exists but does not parse. Startup
	// treats this as fatal rather than silently truncating data.
	ErrCorruptSlot = errors.New("persistence: corrupt slot")
)

// SlotStore reads and writes named JSON documents durably.
type SlotStore interface {
	// ReadSlot returns the document stored under name, or ErrNotFound when
	// the slot is absent.
	ReadSlot(ctx context.Context, name string) ([]byte, error)
	// WriteSlot durably replaces the document stored under name.
	WriteSlot(ctx context.Context, name string, document []byte) error
}

// Slots lists every slot name in a stable order.
func Slots() []string {
	return []string{SlotAppointments, SlotTodos, SlotColorLabels, SlotGroups, SlotContacts}
}
