package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophcal/internal/common"
	"github.com/dmitrijs2005/gophcal/internal/dbx"
	"github.com/dmitrijs2005/gophcal/internal/models"
	"github.com/dmitrijs2005/gophcal/internal/repositories/repomanager"
	"github.com/dmitrijs2005/gophcal/internal/validation"
)

const entityCalendar = "calendar"

// CalendarService manages calendars and the cascade to their events.
type CalendarService struct {
	base
}

func NewCalendarService(db *sql.DB, m repomanager.RepositoryManager, opts ...Option) *CalendarService {
	return &CalendarService{base: newBase(db, m, "calendars", opts)}
}

// Create stores a calendar owned by ownerID, which must be an existing user.
func (s *CalendarService) Create(ctx context.Context, ownerID int64, in models.CalendarInput) (cal *models.Calendar, err error) {
	defer s.observe(entityCalendar, "create", time.Now(), &err)

	cal = &models.Calendar{
		Name:        in.Name,
		Description: in.Description,
		IsPublic:    in.IsPublic,
		CreatedAt:   s.stamp(),
		OwnerID:     ownerID,
	}
	if err := validation.Calendar(cal); err != nil {
		return nil, err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := userExists(ctx, s.repos.Users(tx), ownerID, "owner_id"); err != nil {
			return err
		}
		_, err := s.repos.Calendars(tx).Create(ctx, cal)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create calendar: %w", err)
	}

	s.logger.Info(ctx, "calendar created", "calendar_id", cal.ID, "owner_id", ownerID)
	return cal, nil
}

func (s *CalendarService) Get(ctx context.Context, id int64) (cal *models.Calendar, err error) {
	defer s.observe(entityCalendar, "get", time.Now(), &err)
	return s.repos.Calendars(s.db).GetByID(ctx, id)
}

// List returns calendars matching filter by ascending id.
func (s *CalendarService) List(ctx context.Context, filter models.CalendarFilter) (list []models.Calendar, err error) {
	defer s.observe(entityCalendar, "list", time.Now(), &err)
	return s.repos.Calendars(s.db).List(ctx, filter)
}

// ListByOwner returns every calendar of ownerID.
func (s *CalendarService) ListByOwner(ctx context.Context, ownerID int64) ([]models.Calendar, error) {
	return s.List(ctx, models.CalendarFilter{OwnerID: ownerID})
}

// Update applies the non-nil fields of patch and validates the result. A
// new owner must exist.
func (s *CalendarService) Update(ctx context.Context, id int64, patch models.CalendarPatch) (cal *models.Calendar, err error) {
	defer s.observe(entityCalendar, "update", time.Now(), &err)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Calendars(tx)

		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		merged := patch.Apply(*current)
		if err := validation.Calendar(&merged); err != nil {
			return err
		}
		if merged.OwnerID != current.OwnerID {
			if err := userExists(ctx, s.repos.Users(tx), merged.OwnerID, "owner_id"); err != nil {
				return err
			}
		}

		if err := repo.Update(ctx, &merged); err != nil {
			return err
		}
		cal = &merged
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update calendar %d: %w", id, err)
	}

	s.logger.Info(ctx, "calendar updated", "calendar_id", id)
	return cal, nil
}

// Delete removes the calendar and every event in it.
func (s *CalendarService) Delete(ctx context.Context, id int64) (err error) {
	defer s.observe(entityCalendar, "delete", time.Now(), &err)

	var removed int64
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Calendars(tx)
		if _, err := repo.GetByID(ctx, id); err != nil {
			return err
		}

		var err error
		if removed, err = s.repos.Events(tx).DeleteByCalendar(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete calendar %d: %w", id, err)
	}

	s.logger.Info(ctx, "calendar deleted", "calendar_id", id, "events", removed)
	return nil
}

// AuthorizeCalendar returns the calendar when userID owns it and
// common.ErrorForbidden otherwise.
func (s *CalendarService) AuthorizeCalendar(ctx context.Context, userID, calendarID int64) (*models.Calendar, error) {
	cal, err := s.Get(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	if cal.OwnerID != userID {
		s.logger.Warn(ctx, "calendar access denied", "calendar_id", calendarID, "user_id", userID)
		return nil, common.ErrorForbidden
	}
	return cal, nil
}

// Visible reports whether userID may read the calendar: owners always,
// everyone else only when it is public.
func (s *CalendarService) Visible(ctx context.Context, userID, calendarID int64) (*models.Calendar, error) {
	cal, err := s.Get(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	if cal.OwnerID != userID && !cal.IsPublic {
		return nil, common.ErrorForbidden
	}
	return cal, nil
}

// calendarExists maps a missing calendar to a dangling reference.
func calendarExists(ctx context.Context, s *base, tx dbx.DBTX, id int64) error {
	if _, err := s.repos.Calendars(tx).GetByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.NewFieldError("calendar_id", common.ErrorDanglingReference)
		}
		return err
	}
	return nil
}
