// Package calendars persists Calendars.
package calendars

import (
	"context"

	"github.com/dmitrijs2005/gophcal/internal/models"
)

type Repository interface {
	Create(ctx context.Context, cal *models.Calendar) (*models.Calendar, error)
	GetByID(ctx context.Context, id int64) (*models.Calendar, error)
	List(ctx context.Context, filter models.CalendarFilter) ([]models.Calendar, error)
	Update(ctx context.Context, cal *models.Calendar) error
	Delete(ctx context.Context, id int64) error
	DeleteByOwner(ctx context.Context, ownerID int64) (int64, error)
}
