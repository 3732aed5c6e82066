package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/example/cruze-calendar/internal/persistence"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "slots.db")
	store, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return store
}

func TestReadSlot_MissingSlot(t *testing.T) {
	store := openTestStore(t)

	_, err := store.ReadSlot(context.Background(), persistence.SlotAppointments)
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteSlot_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	document := []byte(`[{"id":"1","title":"Q4 Product Strategy Sync"}]`)

	if err := store.WriteSlot(ctx, persistence.SlotAppointments, document); err != nil {
		t.Fatalf("WriteSlot failed: %v", err)
	}

	got, err := store.ReadSlot(ctx, persistence.SlotAppointments)
	if err != nil {
		t.Fatalf("ReadSlot failed: %v", err)
	}
	if string(got) != string(document) {
		t.Fatalf("round trip mismatch: %s", got)
	}
}

func TestWriteSlot_OverwritesExistingDocument(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.WriteSlot(ctx, persistence.SlotTodos, []byte(`["first"]`)); err != nil {
		t.Fatalf("first WriteSlot failed: %v", err)
	}
	if err := store.WriteSlot(ctx, persistence.SlotTodos, []byte(`["second"]`)); err != nil {
		t.Fatalf("second WriteSlot failed: %v", err)
	}

	got, err := store.ReadSlot(ctx, persistence.SlotTodos)
	if err != nil {
		t.Fatalf("ReadSlot failed: %v", err)
	}
	if string(got) != `["second"]` {
		t.Fatalf("expected the later document to win, got %s", got)
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, slot := range persistence.Slots() {
		if err := store.WriteSlot(ctx, slot, []byte(`"`+slot+`"`)); err != nil {
			t.Fatalf("WriteSlot(%q) failed: %v", slot, err)
		}
	}
	for _, slot := range persistence.Slots() {
		got, err := store.ReadSlot(ctx, slot)
		if err != nil {
			t.Fatalf("ReadSlot(%q) failed: %v", slot, err)
		}
		if string(got) != `"`+slot+`"` {
			t.Fatalf("slot %q returned another slot's document: %s", slot, got)
		}
	}
}

func TestMigrate_IsIdempotent(t *testing.T) {
	store := openTestStore(t)
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}
