package records

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/dmitrijs2005/gophcal/internal/models"
)

const productID = "-//gophcal//gophcal//EN"

// EventUID is the stable iCalendar UID of an event.
func EventUID(e *models.Event) string {
	return fmt.Sprintf("event-%d@gophcal", e.ID)
}

// ExportICS renders a calendar and its events as an iCalendar document.
// All-day events become DATE values with an exclusive end the day after
// the last day.
func ExportICS(c *models.Calendar, events []models.Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(c.Name)
	cal.SetXWRCalName(c.Name)
	if c.Description != "" {
		cal.SetDescription(c.Description)
	}

	for i := range events {
		e := &events[i]
		ve := cal.AddEvent(EventUID(e))
		ve.SetCreatedTime(e.CreatedAt.UTC())
		ve.SetDtStampTime(e.CreatedAt.UTC())
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.AllDay {
			ve.SetAllDayStartAt(e.StartTime)
			ve.SetAllDayEndAt(e.EndTime.AddDate(0, 0, 1))
		} else {
			ve.SetStartAt(e.StartTime.UTC())
			ve.SetEndAt(e.EndTime.UTC())
		}
		ve.SetColor(e.BgColor)
	}

	return cal.Serialize()
}

// ExportFileName is the file name used for an exported calendar.
func ExportFileName(c *models.Calendar, now time.Time) string {
	return fmt.Sprintf("calendar-%d-%s.ics", c.ID, now.UTC().Format("20060102T150405"))
}
