// Package seed loads demo data into an empty store.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophcal/internal/models"
	"github.com/dmitrijs2005/gophcal/internal/services"
)

var (
	demoUser = models.Registration{
		Email:     "user1@email.com",
		Password:  "password1",
		FirstName: "Larry",
		LastName:  "Davis",
	}

	demoCalendar = models.CalendarInput{
		Name:        "Personal",
		Description: "Calendar for personal events",
	}

	demoEvents = []models.EventInput{
		{
			Title:       "Dentist",
			Description: "Teeth Cleaning",
			StartTime:   time.Date(2024, 12, 12, 0, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2024, 12, 12, 0, 0, 0, 0, time.UTC),
			Location:    "Family Dentist",
		},
		{
			Title:       "Oil Change",
			Description: "Changing oil for car",
			StartTime:   time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
			Location:    "Honda Service",
		},
	}
)

// Apply creates the demo user, their calendar and its events when the store
// has no users. It reports whether anything was written.
func Apply(ctx context.Context, store *services.Store) (bool, error) {
	empty, err := store.IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	if !empty {
		return false, nil
	}

	user, err := store.Users.Register(ctx, demoUser)
	if err != nil {
		return false, fmt.Errorf("seed user: %w", err)
	}

	cal, err := store.Calendars.Create(ctx, user.ID, demoCalendar)
	if err != nil {
		return false, fmt.Errorf("seed calendar: %w", err)
	}

	for _, in := range demoEvents {
		if _, err := store.Events.Create(ctx, cal.ID, user.ID, in); err != nil {
			return false, fmt.Errorf("seed event %q: %w", in.Title, err)
		}
	}

	return true, nil
}
