package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/lazypower/tend/internal/garden"
)

var anchor = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestExportGoalEvents(t *testing.T) {
	friends := []garden.Friend{
		garden.NewFriend("f1", "Alice", 10, anchor),
	}

	out := string(Export(friends, anchor))

	if !strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n") {
		t.Error("missing VCALENDAR header")
	}
	if !strings.Contains(out, "UID:contact-f1@tend\r\n") {
		t.Error("missing contact event UID")
	}
	if !strings.Contains(out, "DTSTART;VALUE=DATE:20250611\r\n") {
		t.Errorf("goal date wrong:\n%s", out)
	}
	if !strings.Contains(out, "SUMMARY:Reach out to Alice\r\n") {
		t.Error("missing summary")
	}
	if !strings.HasSuffix(out, "END:VCALENDAR\r\n") {
		t.Error("missing VCALENDAR footer")
	}
}

func TestExportBirthday(t *testing.T) {
	f := garden.NewFriend("f1", "Alice", 10, anchor)
	f.Birthday = "1990-03-14"

	out := string(Export([]garden.Friend{f}, anchor))
	if !strings.Contains(out, "UID:birthday-f1@tend\r\n") {
		t.Error("missing birthday event")
	}
	if !strings.Contains(out, "DTSTART;VALUE=DATE:20250314\r\n") {
		t.Errorf("birthday date wrong:\n%s", out)
	}
	if !strings.Contains(out, "RRULE:FREQ=YEARLY\r\n") {
		t.Error("birthday should recur yearly")
	}
}

func TestExportMonthDayBirthday(t *testing.T) {
	f := garden.NewFriend("f1", "Alice", 10, anchor)
	f.Birthday = "12-25"

	out := string(Export([]garden.Friend{f}, anchor))
	if !strings.Contains(out, "DTSTART;VALUE=DATE:20251225\r\n") {
		t.Errorf("month-day birthday wrong:\n%s", out)
	}
}

func TestExportEscapesText(t *testing.T) {
	f := garden.NewFriend("f1", "Smith, Jr; Bob", 10, anchor)

	out := string(Export([]garden.Friend{f}, anchor))
	if !strings.Contains(out, `SUMMARY:Reach out to Smith\, Jr\; Bob`) {
		t.Errorf("text not escaped:\n%s", out)
	}
}

func TestExportEmpty(t *testing.T) {
	out := string(Export(nil, anchor))
	if strings.Contains(out, "VEVENT") {
		t.Error("no events expected")
	}
}
