package model

import "time"

// Colors is the fixed appointment palette. Keys of the color-label mapping are
// drawn from this set; values remain user editable.
var Colors = []string{
	"bg-blue-500",
	"bg-purple-500",
	"bg-emerald-500",
	"bg-rose-500",
	"bg-amber-500",
	"bg-indigo-500",
}

// GroupColors is the fixed palette available to groups.
var GroupColors = []string{
	"bg-slate-700",
	"bg-cyan-600",
	"bg-pink-600",
	"bg-teal-600",
	"bg-orange-600",
	"bg-violet-600",
	"bg-lime-600",
	"bg-fuchsia-600",
	"bg-stone-600",
	"bg-sky-600",
	"bg-emerald-700",
	"bg-rose-700",
}

// DefaultColorLabels returns the factory category names for the palette.
func DefaultColorLabels() ColorLabels {
	return ColorLabels{
		"bg-blue-500":    "Work",
		"bg-purple-500":  "Personal",
		"bg-emerald-500": "Health",
		"bg-rose-500":    "Urgent",
		"bg-amber-500":   "Family",
		"bg-indigo-500":  "Other",
	}
}

// DefaultGroups returns the seed groups used when no groups slot exists.
func DefaultGroups() []Group {
	return []Group{
		{
			ID:    "g1",
			Name:  "NovaTech Core",
			Color: "bg-slate-700",
			Members: []Attendee{
				{ID: "a1", Name: "Sarah Chen", Company: "NovaTech"},
				{ID: "a5", Name: "Alex Rivera", Company: "NovaTech"},
			},
		},
	}
}

// DefaultAppointments returns the seed appointments anchored to the calendar
// day of the supplied instant, mirroring a first-run data set.
func DefaultAppointments(now time.Time) []Appointment {
	at := func(hour, minute int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	}
	return []Appointment{
		{
			ID:        "1",
			Title:     "Q4 Product Strategy Sync",
			Location:  "Conference Room Alpha",
			StartTime: at(9, 0),
			EndTime:   at(10, 30),
			Color:     "bg-blue-500",
			GroupID:   "g1",
			Attendees: []Attendee{
				{ID: "a1", Name: "Sarah Chen", Company: "NovaTech"},
				{ID: "a2", Name: "James Wilson", Company: "Global Solutions"},
			},
			Agenda: "1. Review Q3 performance\n2. Align on Q4 feature roadmap\n3. Budget allocation for AI research",
			Notes:  "Remember to bring the latest prototype designs. Sarah needs a final answer on the hiring plan.",
		},
		{
			ID:        "2",
			Title:     "Client Partnership Review",
			Location:  "Main St. Cafe / Virtual",
			StartTime: at(11, 0),
			EndTime:   at(12, 0),
			Color:     "bg-emerald-500",
			Attendees: []Attendee{
				{ID: "a3", Name: "Elena Rodriguez", Company: "Starlight Retail"},
				{ID: "a4", Name: "Marcus Thorne", Company: "Starlight Retail"},
			},
			Agenda: "Customer satisfaction survey results review and contract renewal discussion.",
			Notes:  "Focus on the new multi-region support feature. They were concerned about latency.",
		},
		{
			ID:        "3",
			Title:     "Developer Workshop: Gemini API",
			Location:  "Innovation Lab - Floor 4",
			StartTime: at(14, 0),
			EndTime:   at(16, 0),
			Color:     "bg-indigo-500",
			Attendees: []Attendee{
				{ID: "a5", Name: "Alex Rivera", Company: "NovaTech"},
				{ID: "a6", Name: "Priya Sharma", Company: "OpenSource Labs"},
				{ID: "a7", Name: "David Kim", Company: "CloudFlow"},
			},
			Agenda: "Hands-on session with the new Gemini 3.0 Pro endpoints.",
			Notes:  "Bring laptops with Node environment set up. Need to check quota limits before starting.",
		},
	}
}

// DefaultTodos returns the seed task list.
func DefaultTodos(now time.Time) []Todo {
	return []Todo{
		{ID: "t1", Text: "Prepare Q4 slide deck", Completed: false, CreatedAt: now},
		{ID: "t2", Text: "Review feedback on PR #442", Completed: true, CreatedAt: now},
		{ID: "t3", Text: "Email Elena regarding renewal", Completed: false, CreatedAt: now},
		{ID: "t4", Text: "Update documentation for Gemini SDK", Completed: false, CreatedAt: now},
	}
}

// SeedContacts derives the contact book from a set of appointments: one
// contact per distinct attendee name, stamped with the start time of the
// appointment that introduced the attendee.
func SeedContacts(appointments []Appointment) []Contact {
	var contacts []Contact
	seen := make(map[string]struct{})
	for _, appointment := range appointments {
		start := appointment.StartTime
		for _, attendee := range appointment.Attendees {
			if _, ok := seen[attendee.Name]; ok {
				continue
			}
			seen[attendee.Name] = struct{}{}
			interaction := start
			contacts = append(contacts, Contact{
				ID:              attendee.ID,
				Name:            attendee.Name,
				Company:         attendee.Company,
				Role:            attendee.Role,
				LastInteraction: &interaction,
			})
		}
	}
	return contacts
}
