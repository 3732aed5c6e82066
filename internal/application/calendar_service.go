// Package application owns the calendar engine: the entity store, the
// durable slot mirror, and the operations the presentation layer calls into.
package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/cruze-calendar/internal/export"
	"github.com/example/cruze-calendar/internal/model"
	"github.com/example/cruze-calendar/internal/persistence"
	"github.com/example/cruze-calendar/internal/search"
	"github.com/example/cruze-calendar/internal/window"
)

// Sentinel values used when converting a todo into an appointment.
const (
	scheduledLocation = "Unspecified"
	scheduledAgenda   = "Scheduled from task list."
	scheduledLength   = 30 * time.Minute
)

// CalendarService is the single owning controller for all collections. Every
// mutation commits in memory first and then mirrors the affected slot(s);
// slot writes are independent per collection, so a crash between two writes
// leaves some slots stale rather than the store inconsistent.
type CalendarService struct {
	store       *Store
	slots       persistence.SlotStore
	logger      *slog.Logger
	idGenerator func() string
	now         func() time.Time
	pickColor   func() string

	shareMu      sync.Mutex
	pendingShare *model.Appointment
}

// Option configures optional service dependencies.
type Option func(*CalendarService)

// WithIDGenerator overrides the identity provider, primarily for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *CalendarService) {
		if gen != nil {
			s.idGenerator = gen
		}
	}
}

// WithClock overrides the time source, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(s *CalendarService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithColorPicker overrides the random palette pick used by ScheduleTodo.
func WithColorPicker(pick func() string) Option {
	return func(s *CalendarService) {
		if pick != nil {
			s.pickColor = pick
		}
	}
}

// NewCalendarService wires the engine against a durable slot store.
func NewCalendarService(slots persistence.SlotStore, logger *slog.Logger, opts ...Option) *CalendarService {
	if logger == nil {
		logger = slog.Default()
	}
	service := &CalendarService{
		store:       NewStore(),
		slots:       slots,
		logger:      logger,
		idGenerator: uuid.NewString,
		now:         time.Now,
		pickColor: func() string {
			return model.Colors[rand.Intn(len(model.Colors))]
		},
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Load rehydrates every collection from its slot. Each slot is read
// independently: an absent slot seeds the built-in defaults (contacts derive
// from the default appointments' attendees), while a present slot that fails
// to parse aborts startup with an error wrapping persistence.ErrCorruptSlot.
func (s *CalendarService) Load(ctx context.Context) error {
	now := s.now()
	defaultAppointments := model.DefaultAppointments(now)

	var appointments []model.Appointment
	seeded, err := loadSlot(ctx, s.slots, persistence.SlotAppointments, &appointments, func() {
		appointments = defaultAppointments
	})
	if err != nil {
		return err
	}
	s.store.ReplaceAppointments(appointments)
	s.logLoaded(persistence.SlotAppointments, len(appointments), seeded)

	var todos []model.Todo
	seeded, err = loadSlot(ctx, s.slots, persistence.SlotTodos, &todos, func() {
		todos = model.DefaultTodos(now)
	})
	if err != nil {
		return err
	}
	s.store.ReplaceTodos(todos)
	s.logLoaded(persistence.SlotTodos, len(todos), seeded)

	var labels model.ColorLabels
	seeded, err = loadSlot(ctx, s.slots, persistence.SlotColorLabels, &labels, func() {
		labels = model.DefaultColorLabels()
	})
	if err != nil {
		return err
	}
	s.store.ReplaceColorLabels(labels)
	s.logLoaded(persistence.SlotColorLabels, len(labels), seeded)

	var groups []model.Group
	seeded, err = loadSlot(ctx, s.slots, persistence.SlotGroups, &groups, func() {
		groups = model.DefaultGroups()
	})
	if err != nil {
		return err
	}
	s.store.ReplaceGroups(groups)
	s.logLoaded(persistence.SlotGroups, len(groups), seeded)

	var contacts []model.Contact
	seeded, err = loadSlot(ctx, s.slots, persistence.SlotContacts, &contacts, func() {
		contacts = model.SeedContacts(defaultAppointments)
	})
	if err != nil {
		return err
	}
	s.store.ReplaceContacts(contacts)
	s.logLoaded(persistence.SlotContacts, len(contacts), seeded)

	return nil
}

// Appointments returns a snapshot of every appointment.
func (s *CalendarService) Appointments() []model.Appointment { return s.store.Appointments() }

// Todos returns a snapshot of the task list, newest first.
func (s *CalendarService) Todos() []model.Todo { return s.store.Todos() }

// Contacts returns a snapshot of the contact book.
func (s *CalendarService) Contacts() []model.Contact { return s.store.Contacts() }

// Groups returns a snapshot of the groups.
func (s *CalendarService) Groups() []model.Group { return s.store.Groups() }

// ColorLabels returns a snapshot of the color-label mapping.
func (s *CalendarService) ColorLabels() model.ColorLabels { return s.store.ColorLabels() }

// Query applies the temporal window for the reference date and granularity,
// then narrows by the free-text query. Search never re-includes items outside
// the window.
func (s *CalendarService) Query(reference time.Time, g window.Granularity, query string) []model.Appointment {
	windowed := window.Filter(s.store.Appointments(), reference, g)
	return search.Filter(windowed, query, s.store.ColorLabels(), s.store.Groups())
}

// Export renders the currently filtered appointment set as a CSV download.
// The boolean is false when the filtered set is empty: no file is produced.
func (s *CalendarService) Export(reference time.Time, g window.Granularity, query string) (export.File, bool) {
	return export.Export(s.Query(reference, g, query), s.store.ColorLabels(), s.store.Groups(), s.now())
}

// SaveAppointment upserts the appointment, assigning a fresh identity when
// none is supplied, and mirrors the appointments slot.
func (s *CalendarService) SaveAppointment(ctx context.Context, a model.Appointment) (model.Appointment, error) {
	if a.ID == "" {
		a.ID = s.idGenerator()
	}
	s.store.UpsertAppointment(a)
	if err := s.persistAppointments(ctx); err != nil {
		return model.Appointment{}, err
	}
	return a, nil
}

// DeleteAppointment removes by id; deleting an absent id is a no-op.
func (s *CalendarService) DeleteAppointment(ctx context.Context, id string) error {
	if !s.store.DeleteAppointment(id) {
		return nil
	}
	return s.persistAppointments(ctx)
}

// SaveContact upserts a contact under merge-by-name semantics.
func (s *CalendarService) SaveContact(ctx context.Context, c model.Contact) (model.Contact, error) {
	if c.ID == "" {
		c.ID = s.idGenerator()
	}
	saved := s.store.UpsertContact(c)
	if err := s.persistContacts(ctx); err != nil {
		return model.Contact{}, err
	}
	return saved, nil
}

// DeleteContact removes by id; deleting an absent id is a no-op.
func (s *CalendarService) DeleteContact(ctx context.Context, id string) error {
	if !s.store.DeleteContact(id) {
		return nil
	}
	return s.persistContacts(ctx)
}

// AddTodo prepends a new, uncompleted todo.
func (s *CalendarService) AddTodo(ctx context.Context, text string) (model.Todo, error) {
	todo := model.Todo{
		ID:        s.idGenerator(),
		Text:      text,
		Completed: false,
		CreatedAt: s.now(),
	}
	s.store.PrependTodo(todo)
	if err := s.persistTodos(ctx); err != nil {
		return model.Todo{}, err
	}
	return todo, nil
}

// ToggleTodo flips the completed flag; unknown ids are a no-op.
func (s *CalendarService) ToggleTodo(ctx context.Context, id string) error {
	if !s.store.ToggleTodo(id) {
		return nil
	}
	return s.persistTodos(ctx)
}

// DeleteTodo removes by id; unknown ids are a no-op.
func (s *CalendarService) DeleteTodo(ctx context.Context, id string) error {
	if !s.store.DeleteTodo(id) {
		return nil
	}
	return s.persistTodos(ctx)
}

// CreateGroup appends the group, assigning a fresh identity when none is
// supplied. Duplicate group names are permitted.
func (s *CalendarService) CreateGroup(ctx context.Context, g model.Group) (model.Group, error) {
	if g.ID == "" {
		g.ID = s.idGenerator()
	}
	s.store.AppendGroup(g)
	if err := s.persistGroups(ctx); err != nil {
		return model.Group{}, err
	}
	return g, nil
}

// UpdateColorLabels replaces the user-editable label mapping.
func (s *CalendarService) UpdateColorLabels(ctx context.Context, labels model.ColorLabels) error {
	s.store.ReplaceColorLabels(labels)
	return s.persistColorLabels(ctx)
}

// ScheduleTodo converts a pending todo into a 30-minute appointment at the
// target date and hour (minutes and seconds zeroed). A zero date falls back
// to the current instant's date. An unknown todo id is a silent no-op: the
// second return is false and nothing changes. The todo removal and the
// appointment creation commit together.
func (s *CalendarService) ScheduleTodo(ctx context.Context, todoID string, hour int, date time.Time) (model.Appointment, bool, error) {
	if date.IsZero() {
		date = s.now()
	}
	start := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())

	appointment, ok := s.store.ScheduleTodo(todoID, func(todo model.Todo) model.Appointment {
		return model.Appointment{
			ID:        s.idGenerator(),
			Title:     todo.Text,
			Location:  scheduledLocation,
			StartTime: start,
			EndTime:   start.Add(scheduledLength),
			Attendees: []model.Attendee{},
			Agenda:    scheduledAgenda,
			Notes:     "",
			Color:     s.pickColor(),
		}
	})
	if !ok {
		return model.Appointment{}, false, nil
	}

	if err := s.persistAppointments(ctx); err != nil {
		return model.Appointment{}, false, err
	}
	if err := s.persistTodos(ctx); err != nil {
		return model.Appointment{}, false, err
	}
	return appointment, true, nil
}

// ImportResult reports how many entities an import actually added.
type ImportResult struct {
	Appointments int `json:"appointments"`
	Todos        int `json:"todos"`
}

// ImportBundle merges an external bundle without duplicating existing
// identities. Importing the same bundle twice is a no-op the second time.
func (s *CalendarService) ImportBundle(ctx context.Context, b model.Bundle) (ImportResult, error) {
	addedAppointments, addedTodos := s.store.MergeBundle(b)

	if addedAppointments > 0 {
		if err := s.persistAppointments(ctx); err != nil {
			return ImportResult{}, err
		}
	}
	if addedTodos > 0 {
		if err := s.persistTodos(ctx); err != nil {
			return ImportResult{}, err
		}
	}
	if len(b.ColorLabels) > 0 {
		if err := s.persistColorLabels(ctx); err != nil {
			return ImportResult{}, err
		}
	}

	s.logger.Info("bundle imported",
		"appointments_added", addedAppointments,
		"todos_added", addedTodos,
		"labels_merged", len(b.ColorLabels))
	return ImportResult{Appointments: addedAppointments, Todos: addedTodos}, nil
}

// StageIncomingShare holds a decoded share as pending. Nothing is committed
// until the share is accepted.
func (s *CalendarService) StageIncomingShare(a model.Appointment) {
	s.shareMu.Lock()
	defer s.shareMu.Unlock()
	staged := model.CloneAppointment(a)
	s.pendingShare = &staged
}

// PendingShare returns the staged incoming share, if any.
func (s *CalendarService) PendingShare() (model.Appointment, bool) {
	s.shareMu.Lock()
	defer s.shareMu.Unlock()
	if s.pendingShare == nil {
		return model.Appointment{}, false
	}
	return model.CloneAppointment(*s.pendingShare), true
}

// AcceptPendingShare commits the staged share as a brand-new appointment. The
// original id is discarded in favor of a fresh identity so an accepted share
// can never collide with an existing record.
func (s *CalendarService) AcceptPendingShare(ctx context.Context) (model.Appointment, error) {
	s.shareMu.Lock()
	if s.pendingShare == nil {
		s.shareMu.Unlock()
		return model.Appointment{}, ErrNoPendingShare
	}
	accepted := model.CloneAppointment(*s.pendingShare)
	s.pendingShare = nil
	s.shareMu.Unlock()

	accepted.ID = s.idGenerator()
	s.store.UpsertAppointment(accepted)
	if err := s.persistAppointments(ctx); err != nil {
		return model.Appointment{}, err
	}
	return accepted, nil
}

// DiscardPendingShare drops the staged share without touching the store.
func (s *CalendarService) DiscardPendingShare() {
	s.shareMu.Lock()
	defer s.shareMu.Unlock()
	s.pendingShare = nil
}

func (s *CalendarService) persistAppointments(ctx context.Context) error {
	return writeSlot(ctx, s.slots, persistence.SlotAppointments, s.store.Appointments())
}

func (s *CalendarService) persistTodos(ctx context.Context) error {
	return writeSlot(ctx, s.slots, persistence.SlotTodos, s.store.Todos())
}

func (s *CalendarService) persistContacts(ctx context.Context) error {
	return writeSlot(ctx, s.slots, persistence.SlotContacts, s.store.Contacts())
}

func (s *CalendarService) persistGroups(ctx context.Context) error {
	return writeSlot(ctx, s.slots, persistence.SlotGroups, s.store.Groups())
}

func (s *CalendarService) persistColorLabels(ctx context.Context) error {
	return writeSlot(ctx, s.slots, persistence.SlotColorLabels, s.store.ColorLabels())
}

func (s *CalendarService) logLoaded(slot string, count int, seeded bool) {
	s.logger.Info("collection loaded", "slot", slot, "count", count, "seeded", seeded)
}

// loadSlot reads one slot into out. The seed callback runs when the slot is
// absent; the returned boolean reports whether it did. A slot that exists but
// does not parse is fatal.
func loadSlot(ctx context.Context, slots persistence.SlotStore, name string, out any, seed func()) (bool, error) {
	document, err := slots.ReadSlot(ctx, name)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			seed()
			return true, nil
		}
		return false, fmt.Errorf("read slot %q: %w", name, err)
	}
	if err := json.Unmarshal(document, out); err != nil {
		return false, fmt.Errorf("%w: %q: %v", persistence.ErrCorruptSlot, name, err)
	}
	return false, nil
}

func writeSlot(ctx context.Context, slots persistence.SlotStore, name string, collection any) error {
	document, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("encode slot %q: %w", name, err)
	}
	if err := slots.WriteSlot(ctx, name, document); err != nil {
		return fmt.Errorf("write slot %q: %w", name, err)
	}
	return nil
}
