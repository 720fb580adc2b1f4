// Package ics renders the contact schedule as an iCalendar feed.
package ics

import (
	"fmt"
	"strings"
	"time"

	"github.com/lazypower/tend/internal/garden"
)

// Export emits one all-day VEVENT per friend at their contact goal
// date, plus a yearly recurring event for friends with a birthday on
// file. The output is valid text/calendar: CRLF line endings, escaped
// text values.
func Export(friends []garden.Friend, now time.Time) []byte {
	var b strings.Builder

	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:-//tend//relationship garden//EN")

	for _, f := range friends {
		status := garden.ComputeTimeStatus(f.LastContacted, f.FrequencyDays, now)

		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, "UID:contact-"+f.ID+"@tend")
		writeLine(&b, "DTSTAMP:"+now.UTC().Format("20060102T150405Z"))
		writeLine(&b, "DTSTART;VALUE=DATE:"+status.GoalDate.UTC().Format("20060102"))
		writeLine(&b, "SUMMARY:"+escape("Reach out to "+f.Name))
		if f.Category != "" {
			writeLine(&b, "CATEGORIES:"+escape(f.Category))
		}
		writeLine(&b, "END:VEVENT")

		if month, day, ok := parseBirthday(f.Birthday); ok {
			writeLine(&b, "BEGIN:VEVENT")
			writeLine(&b, "UID:birthday-"+f.ID+"@tend")
			writeLine(&b, "DTSTAMP:"+now.UTC().Format("20060102T150405Z"))
			writeLine(&b, fmt.Sprintf("DTSTART;VALUE=DATE:%04d%02d%02d", now.Year(), month, day))
			writeLine(&b, "RRULE:FREQ=YEARLY")
			writeLine(&b, "SUMMARY:"+escape(f.Name+"'s birthday"))
			writeLine(&b, "END:VEVENT")
		}
	}

	writeLine(&b, "END:VCALENDAR")
	return []byte(b.String())
}

// parseBirthday accepts YYYY-MM-DD or MM-DD.
func parseBirthday(s string) (month, day int, ok bool) {
	if s == "" {
		return 0, 0, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return int(t.Month()), t.Day(), true
	}
	if t, err := time.Parse("01-02", s); err == nil {
		return int(t.Month()), t.Day(), true
	}
	return 0, 0, false
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

var escaper = strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")

func escape(s string) string {
	return escaper.Replace(s)
}
