// Package model defines the entities managed by the calendar engine and the
// JSON shapes used for durable slots, import bundles and share tokens.
package model

import "time"

// Attendee is a person attached to an appointment or group. Attendees are
// embedded by value and are not independently addressable.
type Attendee struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Role    string `json:"role,omitempty"`
}

// Contact is an address-book entry. Contacts resolve identity by id OR name:
// two records sharing a name are treated as the same contact even when their
// ids differ.
type Contact struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Company         string     `json:"company"`
	Role            string     `json:"role,omitempty"`
	LastInteraction *time.Time `json:"lastInteraction,omitempty"`
}

// Group is a named set of attendees referenced by appointments via GroupID.
type Group struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Color   string     `json:"color"`
	Members []Attendee `json:"members"`
}

// Appointment is a scheduled calendar event. StartTime < EndTime is advisory
// and enforced by callers, not by the engine.
type Appointment struct {
	ID                      string     `json:"id"`
	Title                   string     `json:"title"`
	Location                string     `json:"location"`
	StartTime               time.Time  `json:"startTime"`
	EndTime                 time.Time  `json:"endTime"`
	Attendees               []Attendee `json:"attendees"`
	Agenda                  string     `json:"agenda"`
	Notes                   string     `json:"notes"`
	NotesVisibleToAttendees bool       `json:"notesVisibleToAttendees,omitempty"`
	Color                   string     `json:"color"`
	GroupID                 string     `json:"groupId,omitempty"`
}

// Todo is a task-list entry. Todos are kept newest first.
type Todo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// ColorLabels maps a color token from the fixed palette to its user-editable
// category name.
type ColorLabels map[string]string

// FallbackCategory is the label resolved for colors missing from the mapping.
const FallbackCategory = "Other"

// FallbackGroupName is the label resolved for dangling group references.
const FallbackGroupName = "N/A"

// Category resolves the label for a color token, falling back to
// FallbackCategory for unknown tokens.
func (l ColorLabels) Category(color string) string {
	if label, ok := l[color]; ok && label != "" {
		return label
	}
	return FallbackCategory
}

// Clone returns an independent copy of the mapping.
func (l ColorLabels) Clone() ColorLabels {
	if l == nil {
		return nil
	}
	clone := make(ColorLabels, len(l))
	for color, label := range l {
		clone[color] = label
	}
	return clone
}

// Bundle is the externally supplied import document merged into the store.
type Bundle struct {
	Appointments []Appointment `json:"appointments"`
	Todos        []Todo        `json:"todos"`
	ColorLabels  ColorLabels   `json:"colorLabels"`
}

// GroupName resolves the name referenced by an appointment's GroupID. The
// second return reports whether the reference resolved; callers decide how a
// dangling reference degrades.
func GroupName(groups []Group, groupID string) (string, bool) {
	if groupID == "" {
		return "", false
	}
	for _, g := range groups {
		if g.ID == groupID {
			return g.Name, true
		}
	}
	return "", false
}

// CloneAppointment returns a deep copy of the appointment.
func CloneAppointment(a Appointment) Appointment {
	a.Attendees = cloneAttendees(a.Attendees)
	return a
}

// CloneGroup returns a deep copy of the group.
func CloneGroup(g Group) Group {
	g.Members = cloneAttendees(g.Members)
	return g
}

// CloneContact returns a deep copy of the contact.
func CloneContact(c Contact) Contact {
	if c.LastInteraction != nil {
		t := *c.LastInteraction
		c.LastInteraction = &t
	}
	return c
}

func cloneAttendees(attendees []Attendee) []Attendee {
	if attendees == nil {
		return nil
	}
	return append([]Attendee(nil), attendees...)
}
