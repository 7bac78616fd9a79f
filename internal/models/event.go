package models

import "time"

// Event is a scheduled item in a calendar, authored by one user.
type Event struct {
	ID          int64
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
	BgColor     string
	TxtColor    string
	AllDay      bool
	CreatedAt   time.Time
	CalendarID  int64
	CreatorID   int64
}

// EventInput is the caller-supplied part of a new Event. Empty colors are
// replaced with the defaults.
type EventInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
	BgColor     string
	TxtColor    string
	AllDay      bool
}

// EventPatch is a partial update of an Event.
type EventPatch struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Location    *string
	BgColor     *string
	TxtColor    *string
	AllDay      *bool
	CalendarID  *int64
	CreatorID   *int64
}

// Apply merges p into a copy of e.
func (p EventPatch) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.BgColor != nil {
		e.BgColor = *p.BgColor
	}
	if p.TxtColor != nil {
		e.TxtColor = *p.TxtColor
	}
	if p.AllDay != nil {
		e.AllDay = *p.AllDay
	}
	if p.CalendarID != nil {
		e.CalendarID = *p.CalendarID
	}
	if p.CreatorID != nil {
		e.CreatorID = *p.CreatorID
	}
	return e
}

// Order is the sort direction of an event listing by start time.
type Order int

const (
	OrderAsc Order = iota
	OrderDesc
)

// EventFilter narrows an event listing. Zero values mean "any"; results are
// always sorted by start time (ties broken by id).
type EventFilter struct {
	CalendarID int64
	CreatorID  int64
	// From keeps events starting at or after this instant when non-zero.
	From  time.Time
	Order Order
	Limit int
}
