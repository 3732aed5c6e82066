// Package search narrows an appointment set by a free-text query using
// case-insensitive substring containment. No tokenization, no fuzzy matching.
package search

import (
	"strings"

	"github.com/example/cruze-calendar/internal/model"
)

// Matches reports whether the appointment matches the query in any of: title,
// location, attendee names, the resolved category label for its color, or the
// resolved name of its group. A blank or whitespace-only query matches
// everything. A dangling group reference contributes nothing to matching.
func Matches(a model.Appointment, query string, labels model.ColorLabels, groups []model.Group) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	if contains(a.Title, query) || contains(a.Location, query) {
		return true
	}
	for _, attendee := range a.Attendees {
		if contains(attendee.Name, query) {
			return true
		}
	}
	if contains(labels.Category(a.Color), query) {
		return true
	}
	if name, ok := model.GroupName(groups, a.GroupID); ok && contains(name, query) {
		return true
	}
	return false
}

// Filter keeps the appointments matching the query, preserving input order.
// It never re-includes items its input does not contain, so applying it after
// a temporal window keeps the result a subset of the window.
func Filter(appointments []model.Appointment, query string, labels model.ColorLabels, groups []model.Group) []model.Appointment {
	if strings.TrimSpace(query) == "" {
		return appointments
	}
	var matched []model.Appointment
	for _, appointment := range appointments {
		if Matches(appointment, query, labels, groups) {
			matched = append(matched, appointment)
		}
	}
	return matched
}

func contains(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
