package search

import (
	"testing"
	"time"

	"github.com/example/cruze-calendar/internal/model"
)

func testAppointment() model.Appointment {
	start := time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)
	return model.Appointment{
		ID:        "appt-1",
		Title:     "Q4 Product Strategy Sync",
		Location:  "Conference Room Alpha",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Attendees: []model.Attendee{
			{ID: "a1", Name: "Sarah Chen", Company: "NovaTech"},
		},
		Color:   "bg-blue-500",
		GroupID: "g1",
	}
}

func TestMatches(t *testing.T) {
	t.Parallel()

	labels := model.ColorLabels{"bg-blue-500": "Work"}
	groups := []model.Group{{ID: "g1", Name: "NovaTech Core"}}
	appointment := testAppointment()

	cases := []struct {
		name  string
		query string
		want  bool
	}{
		{"blank query matches everything", "   ", true},
		{"title substring, case-insensitive", "strategy", true},
		{"location substring", "ALPHA", true},
		{"attendee name", "sarah", true},
		{"resolved category label", "work", true},
		{"resolved group name", "novatech core", true},
		{"no field contains the query", "standup", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Matches(appointment, tc.query, labels, groups); got != tc.want {
				t.Fatalf("Matches(%q) = %v, want %v", tc.query, got, tc.want)
			}
		})
	}
}

func TestMatches_DanglingGroupContributesNothing(t *testing.T) {
	t.Parallel()

	appointment := testAppointment()
	appointment.GroupID = "missing"

	if Matches(appointment, "novatech core", model.ColorLabels{}, nil) {
		t.Fatalf("a dangling group reference must not match the group name")
	}
}

func TestFilter_IsSubsetOfInput(t *testing.T) {
	t.Parallel()

	labels := model.ColorLabels{"bg-blue-500": "Work"}
	first := testAppointment()
	second := testAppointment()
	second.ID = "appt-2"
	second.Title = "Team Standup"

	input := []model.Appointment{first, second}
	filtered := Filter(input, "standup", labels, nil)

	if len(filtered) != 1 || filtered[0].ID != "appt-2" {
		t.Fatalf("unexpected filter result: %#v", filtered)
	}

	// A blank query returns the input unchanged.
	if got := Filter(input, "", labels, nil); len(got) != len(input) {
		t.Fatalf("expected blank query to keep all %d items, got %d", len(input), len(got))
	}
}
