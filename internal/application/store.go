package application

import (
	"sync"

	"github.com/example/cruze-calendar/internal/model"
)

// Store is the single source of truth for the five in-memory collections.
// All mutations preserve identity uniqueness; reads hand out clones so
// callers can never alias internal state.
//
// Appointments, contacts and groups keep insertion order. Todos are kept
// newest first.
type Store struct {
	mu           sync.RWMutex
	appointments []model.Appointment
	todos        []model.Todo
	contacts     []model.Contact
	groups       []model.Group
	labels       model.ColorLabels
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{labels: model.ColorLabels{}}
}

// Appointments returns a snapshot of the appointment collection.
func (s *Store) Appointments() []model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAppointments(s.appointments)
}

// Todos returns a snapshot of the todo collection, newest first.
func (s *Store) Todos() []model.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Todo(nil), s.todos...)
}

// Contacts returns a snapshot of the contact collection.
func (s *Store) Contacts() []model.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contacts := make([]model.Contact, 0, len(s.contacts))
	for _, contact := range s.contacts {
		contacts = append(contacts, model.CloneContact(contact))
	}
	return contacts
}

// Groups returns a snapshot of the group collection.
func (s *Store) Groups() []model.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := make([]model.Group, 0, len(s.groups))
	for _, group := range s.groups {
		groups = append(groups, model.CloneGroup(group))
	}
	return groups
}

// ColorLabels returns a snapshot of the color-label mapping.
func (s *Store) ColorLabels() model.ColorLabels {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.labels.Clone()
}

// ReplaceAppointments swaps in a rehydrated appointment collection.
func (s *Store) ReplaceAppointments(appointments []model.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments = cloneAppointments(appointments)
}

// ReplaceTodos swaps in a rehydrated todo collection.
func (s *Store) ReplaceTodos(todos []model.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = append([]model.Todo(nil), todos...)
}

// ReplaceContacts swaps in a rehydrated contact collection.
func (s *Store) ReplaceContacts(contacts []model.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = append([]model.Contact(nil), contacts...)
}

// ReplaceGroups swaps in a rehydrated group collection.
func (s *Store) ReplaceGroups(groups []model.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = append([]model.Group(nil), groups...)
}

// ReplaceColorLabels swaps in a rehydrated or edited label mapping.
func (s *Store) ReplaceColorLabels(labels model.ColorLabels) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels = labels.Clone()
	if s.labels == nil {
		s.labels = model.ColorLabels{}
	}
}

// UpsertAppointment replaces the appointment with the same id in place, or
// appends when the id is new. No field validation happens here; callers own
// field validity.
func (s *Store) UpsertAppointment(a model.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID == a.ID {
			s.appointments[i] = model.CloneAppointment(a)
			return
		}
	}
	s.appointments = append(s.appointments, model.CloneAppointment(a))
}

// DeleteAppointment removes by id and reports whether a record was removed.
func (s *Store) DeleteAppointment(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			s.appointments = append(s.appointments[:i], s.appointments[i+1:]...)
			return true
		}
	}
	return false
}

// UpsertContact saves a contact under merge-by-name semantics: an existing
// record matching by id OR name absorbs the incoming fields (non-zero
// incoming fields win, everything else is preserved); otherwise the contact
// is appended.
func (s *Store) UpsertContact(c model.Contact) model.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.contacts {
		if s.contacts[i].ID == c.ID || s.contacts[i].Name == c.Name {
			s.contacts[i] = mergeContact(s.contacts[i], c)
			return model.CloneContact(s.contacts[i])
		}
	}
	s.contacts = append(s.contacts, model.CloneContact(c))
	return c
}

// DeleteContact removes by id and reports whether a record was removed.
func (s *Store) DeleteContact(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.contacts {
		if s.contacts[i].ID == id {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
			return true
		}
	}
	return false
}

// PrependTodo inserts the todo at the head of the list.
func (s *Store) PrependTodo(t model.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = append([]model.Todo{t}, s.todos...)
}

// ToggleTodo flips the completed flag and reports whether the todo exists.
func (s *Store) ToggleTodo(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos[i].Completed = !s.todos[i].Completed
			return true
		}
	}
	return false
}

// DeleteTodo removes by id and reports whether a record was removed.
func (s *Store) DeleteTodo(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return true
		}
	}
	return false
}

// ScheduleTodo atomically converts the todo into the appointment produced by
// build. Either the todo is removed and the appointment appended, or (when
// the id does not resolve) nothing changes.
func (s *Store) ScheduleTodo(id string, build func(model.Todo) model.Appointment) (model.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID != id {
			continue
		}
		appointment := build(s.todos[i])
		s.todos = append(s.todos[:i], s.todos[i+1:]...)
		s.appointments = append(s.appointments, model.CloneAppointment(appointment))
		return appointment, true
	}
	return model.Appointment{}, false
}

// AppendGroup adds the group. Duplicate group names are permitted.
func (s *Store) AppendGroup(g model.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = append(s.groups, model.CloneGroup(g))
}

// MergeBundle folds an imported bundle into the collections under strictly
// additive union semantics: appointments and todos are appended only when
// their id is new, label keys are shallow-merged with imported values
// winning. Existing entities are never edited or removed. Returns the counts
// of appointments and todos actually added.
func (s *Store) MergeBundle(b model.Bundle) (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appointmentIDs := make(map[string]struct{}, len(s.appointments))
	for _, appointment := range s.appointments {
		appointmentIDs[appointment.ID] = struct{}{}
	}
	addedAppointments := 0
	for _, appointment := range b.Appointments {
		if _, exists := appointmentIDs[appointment.ID]; exists {
			continue
		}
		appointmentIDs[appointment.ID] = struct{}{}
		s.appointments = append(s.appointments, model.CloneAppointment(appointment))
		addedAppointments++
	}

	todoIDs := make(map[string]struct{}, len(s.todos))
	for _, todo := range s.todos {
		todoIDs[todo.ID] = struct{}{}
	}
	addedTodos := 0
	for _, todo := range b.Todos {
		if _, exists := todoIDs[todo.ID]; exists {
			continue
		}
		todoIDs[todo.ID] = struct{}{}
		s.todos = append(s.todos, todo)
		addedTodos++
	}

	if len(b.ColorLabels) > 0 {
		if s.labels == nil {
			s.labels = model.ColorLabels{}
		}
		// The label set is open: unrecognized keys are added, not rejected.
		for color, label := range b.ColorLabels {
			s.labels[color] = label
		}
	}

	return addedAppointments, addedTodos
}

func mergeContact(existing, incoming model.Contact) model.Contact {
	merged := existing
	if incoming.ID != "" {
		merged.ID = incoming.ID
	}
	if incoming.Name != "" {
		merged.Name = incoming.Name
	}
	if incoming.Company != "" {
		merged.Company = incoming.Company
	}
	if incoming.Role != "" {
		merged.Role = incoming.Role
	}
	if incoming.LastInteraction != nil {
		t := *incoming.LastInteraction
		merged.LastInteraction = &t
	}
	return merged
}

func cloneAppointments(appointments []model.Appointment) []model.Appointment {
	cloned := make([]model.Appointment, 0, len(appointments))
	for _, appointment := range appointments {
		cloned = append(cloned, model.CloneAppointment(appointment))
	}
	return cloned
}
