package application

import (
	"testing"
	"time"

	"github.com/example/cruze-calendar/internal/model"
	"github.com/example/cruze-calendar/internal/testfixtures"
)

func TestStore_UpsertAppointmentReplacesInPlace(t *testing.T) {
	t.Parallel()

	store := NewStore()
	first := testfixtures.NewAppointment(testfixtures.WithTitle("First"))
	second := testfixtures.NewAppointment(testfixtures.WithTitle("Second"))
	store.UpsertAppointment(first)
	store.UpsertAppointment(second)

	first.Title = "First, edited"
	store.UpsertAppointment(first)

	appointments := store.Appointments()
	if len(appointments) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(appointments))
	}
	if appointments[0].ID != first.ID || appointments[0].Title != "First, edited" {
		t.Fatalf("expected the edit to land in place, got %#v", appointments[0])
	}
	if appointments[1].ID != second.ID {
		t.Fatalf("expected the second appointment to keep its position")
	}
}

func TestStore_SnapshotsDoNotAliasInternalState(t *testing.T) {
	t.Parallel()

	store := NewStore()
	appointment := testfixtures.NewAppointment(
		testfixtures.WithAttendees(model.Attendee{ID: "a1", Name: "Sarah Chen"}),
	)
	store.UpsertAppointment(appointment)

	snapshot := store.Appointments()
	snapshot[0].Attendees[0].Name = "mutated"

	if store.Appointments()[0].Attendees[0].Name != "Sarah Chen" {
		t.Fatalf("mutating a snapshot leaked into the store")
	}
}

func TestStore_DeleteAppointment(t *testing.T) {
	t.Parallel()

	store := NewStore()
	appointment := testfixtures.NewAppointment()
	store.UpsertAppointment(appointment)

	if !store.DeleteAppointment(appointment.ID) {
		t.Fatalf("expected delete to report a removal")
	}
	if store.DeleteAppointment(appointment.ID) {
		t.Fatalf("expected the second delete to be a no-op")
	}
	if got := store.Appointments(); len(got) != 0 {
		t.Fatalf("expected an empty collection, got %d", len(got))
	}
}

func TestStore_UpsertContactMergesByName(t *testing.T) {
	t.Parallel()

	store := NewStore()
	last := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	existing := model.Contact{ID: "c1", Name: "Sarah Chen", Company: "NovaTech", Role: "VP Product", LastInteraction: &last}
	store.UpsertContact(existing)

	// Same name, different id: the record is merged, not duplicated.
	merged := store.UpsertContact(model.Contact{ID: "c-new", Name: "Sarah Chen", Company: "NovaTech Inc."})

	contacts := store.Contacts()
	if len(contacts) != 1 {
		t.Fatalf("expected the incoming contact to merge, got %d records", len(contacts))
	}
	if merged.ID != "c-new" || merged.Company != "NovaTech Inc." {
		t.Fatalf("expected incoming non-zero fields to win, got %#v", merged)
	}
	if merged.Role != "VP Product" {
		t.Fatalf("expected absent incoming fields to preserve existing values, got %#v", merged)
	}
	if merged.LastInteraction == nil || !merged.LastInteraction.Equal(last) {
		t.Fatalf("expected the last interaction to survive the merge")
	}
}

func TestStore_UpsertContactAppendsNewNames(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.UpsertContact(testfixtures.NewContact("Sarah Chen"))
	store.UpsertContact(testfixtures.NewContact("James Wilson"))

	if got := store.Contacts(); len(got) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(got))
	}
}

func TestStore_TodosAreNewestFirst(t *testing.T) {
	t.Parallel()

	store := NewStore()
	older := testfixtures.NewTodo("older")
	newer := testfixtures.NewTodo("newer")
	store.PrependTodo(older)
	store.PrependTodo(newer)

	todos := store.Todos()
	if len(todos) != 2 || todos[0].ID != newer.ID || todos[1].ID != older.ID {
		t.Fatalf("expected newest-first ordering, got %#v", todos)
	}
}

func TestStore_ToggleTodo(t *testing.T) {
	t.Parallel()

	store := NewStore()
	todo := testfixtures.NewTodo("")
	store.PrependTodo(todo)

	if !store.ToggleTodo(todo.ID) {
		t.Fatalf("expected toggle to find the todo")
	}
	if !store.Todos()[0].Completed {
		t.Fatalf("expected the todo to be completed after one toggle")
	}
	if !store.ToggleTodo(todo.ID) {
		t.Fatalf("expected the second toggle to find the todo")
	}
	if store.Todos()[0].Completed {
		t.Fatalf("expected the todo to be pending again after two toggles")
	}
	if store.ToggleTodo("missing") {
		t.Fatalf("expected an unknown id to report false")
	}
}

func TestStore_ScheduleTodoIsAtomic(t *testing.T) {
	t.Parallel()

	store := NewStore()
	todo := testfixtures.NewTodo("Prepare demo")
	store.PrependTodo(todo)

	appointment, ok := store.ScheduleTodo(todo.ID, func(got model.Todo) model.Appointment {
		if got.Text != "Prepare demo" {
			t.Fatalf("builder received the wrong todo: %#v", got)
		}
		return model.Appointment{ID: "scheduled-1", Title: got.Text}
	})
	if !ok {
		t.Fatalf("expected the conversion to succeed")
	}
	if appointment.ID != "scheduled-1" {
		t.Fatalf("unexpected appointment: %#v", appointment)
	}
	if len(store.Todos()) != 0 {
		t.Fatalf("expected the todo to be removed")
	}
	if got := store.Appointments(); len(got) != 1 || got[0].ID != "scheduled-1" {
		t.Fatalf("expected the appointment to be appended, got %#v", got)
	}

	if _, ok := store.ScheduleTodo("missing", func(model.Todo) model.Appointment {
		t.Fatalf("builder must not run for an unknown id")
		return model.Appointment{}
	}); ok {
		t.Fatalf("expected an unknown id to leave everything unchanged")
	}
}

func TestStore_AppendGroupAllowsDuplicateNames(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.AppendGroup(model.Group{ID: "g1", Name: "Core"})
	store.AppendGroup(model.Group{ID: "g2", Name: "Core"})

	if got := store.Groups(); len(got) != 2 {
		t.Fatalf("expected duplicate group names to be permitted, got %d groups", len(got))
	}
}

func TestStore_MergeBundleIsAdditiveAndIdempotent(t *testing.T) {
	t.Parallel()

	store := NewStore()
	existing := testfixtures.NewAppointment(testfixtures.WithTitle("Existing"))
	store.UpsertAppointment(existing)
	store.ReplaceColorLabels(model.ColorLabels{"bg-blue-500": "Work"})

	collision := existing
	collision.Title = "Imported collision"
	bundle := model.Bundle{
		Appointments: []model.Appointment{collision, testfixtures.NewAppointment(testfixtures.WithTitle("Imported"))},
		Todos:        []model.Todo{testfixtures.NewTodo("imported todo")},
		ColorLabels:  model.ColorLabels{"bg-blue-500": "Client Work", "bg-rose-500": "Urgent"},
	}

	addedAppointments, addedTodos := store.MergeBundle(bundle)
	if addedAppointments != 1 || addedTodos != 1 {
		t.Fatalf("expected 1 appointment and 1 todo added, got %d/%d", addedAppointments, addedTodos)
	}

	// The colliding id must not edit the existing record.
	for _, appointment := range store.Appointments() {
		if appointment.ID == existing.ID && appointment.Title != "Existing" {
			t.Fatalf("import edited an existing appointment: %#v", appointment)
		}
	}

	labels := store.ColorLabels()
	if labels["bg-blue-500"] != "Client Work" || labels["bg-rose-500"] != "Urgent" {
		t.Fatalf("expected imported label values to win, got %#v", labels)
	}

	// Second import of the same bundle adds nothing.
	addedAppointments, addedTodos = store.MergeBundle(bundle)
	if addedAppointments != 0 || addedTodos != 0 {
		t.Fatalf("expected the second import to be a no-op, got %d/%d", addedAppointments, addedTodos)
	}
}
