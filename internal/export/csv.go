// Package export serializes a filtered appointment set to the downloadable
// CSV format. Every field is quote-wrapped with internal quotes doubled,
// matching the wire format consumers of these files already parse; the
// standard encoding/csv writer only quotes on demand and cannot reproduce it.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/example/cruze-calendar/internal/model"
)

var header = []string{
	"Meeting Name",
	"Date",
	"Start Time",
	"End Time",
	"Location",
	"Category",
	"Group",
	"Attendees",
	"Agenda",
	"Notes",
	"Notes Visibility",
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// File is a rendered CSV document ready for download.
type File struct {
	Name string
	Data []byte
}

// Export renders the appointments in input order. The second return is false
// when the set is empty: an empty export produces no file at all. The clock
// instant only feeds the dated file name.
func Export(appointments []model.Appointment, labels model.ColorLabels, groups []model.Group, now time.Time) (File, bool) {
	if len(appointments) == 0 {
		return File{}, false
	}

	var buf bytes.Buffer
	writeRow(&buf, header)
	for _, appointment := range appointments {
		writeRow(&buf, row(appointment, labels, groups))
	}

	return File{
		Name: fmt.Sprintf("Cruze_Search_Results_%s.csv", now.Format(dateLayout)),
		Data: buf.Bytes(),
	}, true
}

func row(a model.Appointment, labels model.ColorLabels, groups []model.Group) []string {
	groupName, ok := model.GroupName(groups, a.GroupID)
	if !ok {
		groupName = model.FallbackGroupName
	}

	attendees := make([]string, 0, len(a.Attendees))
	for _, attendee := range a.Attendees {
		attendees = append(attendees, fmt.Sprintf("%s (%s)", attendee.Name, attendee.Company))
	}

	visibility := "Private"
	if a.NotesVisibleToAttendees {
		visibility = "Visible to All"
	}

	return []string{
		a.Title,
		a.StartTime.Format(dateLayout),
		a.StartTime.Format(timeLayout),
		a.EndTime.Format(timeLayout),
		a.Location,
		labels.Category(a.Color),
		groupName,
		strings.Join(attendees, "; "),
		a.Agenda,
		a.Notes,
		visibility,
	}
}

func writeRow(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(escape(field))
	}
	buf.WriteByte('\n')
}

func escape(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
