package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/cruze-calendar/internal/model"
)

var (
	appointmentCounter uint64
	todoCounter        uint64
	contactCounter     uint64
	groupCounter       uint64
)

// AppointmentOption configures a generated appointment fixture.
type AppointmentOption func(*model.Appointment)

// WithStart sets the appointment start and keeps the end one hour later.
func WithStart(start time.Time) AppointmentOption {
	return func(a *model.Appointment) {
		a.StartTime = start
		a.EndTime = start.Add(time.Hour)
	}
}

// WithTitle overrides the generated title.
func WithTitle(title string) AppointmentOption {
	return func(a *model.Appointment) { a.Title = title }
}

// WithColor overrides the generated color token.
func WithColor(color string) AppointmentOption {
	return func(a *model.Appointment) { a.Color = color }
}

// WithGroupID attaches a group reference.
func WithGroupID(id string) AppointmentOption {
	return func(a *model.Appointment) { a.GroupID = id }
}

// WithAttendees replaces the attendee list.
func WithAttendees(attendees ...model.Attendee) AppointmentOption {
	return func(a *model.Appointment) { a.Attendees = attendees }
}

// NewAppointment returns a deterministic appointment fixture anchored to
// ReferenceTime, with optional overrides.
func NewAppointment(opts ...AppointmentOption) model.Appointment {
	idx := atomic.AddUint64(&appointmentCounter, 1)
	start := ReferenceTime().Add(time.Duration(idx) * time.Minute)
	fixture := model.Appointment{
		ID:        fmt.Sprintf("appointment-%03d", idx),
		Title:     fmt.Sprintf("Appointment %03d", idx),
		Location:  fmt.Sprintf("Room %03d", idx),
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Attendees: []model.Attendee{},
		Agenda:    "Agenda",
		Notes:     "Notes",
		Color:     model.Colors[int(idx)%len(model.Colors)],
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// NewTodo returns a deterministic todo fixture.
func NewTodo(text string) model.Todo {
	idx := atomic.AddUint64(&todoCounter, 1)
	if text == "" {
		text = fmt.Sprintf("Todo %03d", idx)
	}
	return model.Todo{
		ID:        fmt.Sprintf("todo-%03d", idx),
		Text:      text,
		Completed: false,
		CreatedAt: ReferenceTime(),
	}
}

// NewContact returns a deterministic contact fixture.
func NewContact(name string) model.Contact {
	idx := atomic.AddUint64(&contactCounter, 1)
	if name == "" {
		name = fmt.Sprintf("Contact %03d", idx)
	}
	return model.Contact{
		ID:      fmt.Sprintf("contact-%03d", idx),
		Name:    name,
		Company: fmt.Sprintf("Company %03d", idx),
	}
}

// NewGroup returns a deterministic group fixture.
func NewGroup(name string, members ...model.Attendee) model.Group {
	idx := atomic.AddUint64(&groupCounter, 1)
	if name == "" {
		name = fmt.Sprintf("Group %03d", idx)
	}
	return model.Group{
		ID:      fmt.Sprintf("group-%03d", idx),
		Name:    name,
		Color:   model.GroupColors[int(idx)%len(model.GroupColors)],
		Members: members,
	}
}
