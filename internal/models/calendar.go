package models

import "time"

// Calendar is a named container of events owned by exactly one user.
type Calendar struct {
	ID          int64
	Name        string
	Description string
	IsPublic    bool
	CreatedAt   time.Time
	OwnerID     int64
}

// CalendarInput is the caller-supplied part of a new Calendar.
type CalendarInput struct {
	Name        string
	Description string
	IsPublic    bool
}

// CalendarPatch is a partial update of a Calendar.
type CalendarPatch struct {
	Name        *string
	Description *string
	IsPublic    *bool
	OwnerID     *int64
}

// Apply merges p into a copy of c.
func (p CalendarPatch) Apply(c Calendar) Calendar {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.IsPublic != nil {
		c.IsPublic = *p.IsPublic
	}
	if p.OwnerID != nil {
		c.OwnerID = *p.OwnerID
	}
	return c
}

// CalendarFilter narrows a calendar listing. Zero values mean "any".
type CalendarFilter struct {
	OwnerID int64
	Limit   int
}
