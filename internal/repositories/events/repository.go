// Package events persists Events.
package events

import (
	"context"

	"github.com/dmitrijs2005/gophcal/internal/models"
)

type Repository interface {
	Create(ctx context.Context, ev *models.Event) (*models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	Update(ctx context.Context, ev *models.Event) error
	Delete(ctx context.Context, id int64) error
	DeleteByCalendar(ctx context.Context, calendarID int64) (int64, error)
	DeleteByCreator(ctx context.Context, creatorID int64) (int64, error)
	DeleteByCalendarOwner(ctx context.Context, ownerID int64) (int64, error)
}
