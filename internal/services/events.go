package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophcal/internal/common"
	"github.com/dmitrijs2005/gophcal/internal/dbx"
	"github.com/dmitrijs2005/gophcal/internal/models"
	"github.com/dmitrijs2005/gophcal/internal/repositories/repomanager"
	"github.com/dmitrijs2005/gophcal/internal/validation"
)

const entityEvent = "event"

// DefaultUpcomingLimit caps UpcomingForUser when no limit is given.
const DefaultUpcomingLimit = 5

// EventService manages events.
type EventService struct {
	base
}

func NewEventService(db *sql.DB, m repomanager.RepositoryManager, opts ...Option) *EventService {
	return &EventService{base: newBase(db, m, "events", opts)}
}

// Create stores an event in calendarID authored by creatorID. Both must
// exist; end must not be before start. Empty colors get the defaults.
func (s *EventService) Create(ctx context.Context, calendarID, creatorID int64, in models.EventInput) (ev *models.Event, err error) {
	defer s.observe(entityEvent, "create", time.Now(), &err)

	ev = &models.Event{
		Title:       in.Title,
		Description: in.Description,
		StartTime:   in.StartTime.UTC(),
		EndTime:     in.EndTime.UTC(),
		Location:    in.Location,
		BgColor:     orDefault(in.BgColor, common.DefaultBgColor),
		TxtColor:    orDefault(in.TxtColor, common.DefaultTxtColor),
		AllDay:      in.AllDay,
		CreatedAt:   s.stamp(),
		CalendarID:  calendarID,
		CreatorID:   creatorID,
	}
	if err := validation.Event(ev); err != nil {
		return nil, err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := calendarExists(ctx, &s.base, tx, calendarID); err != nil {
			return err
		}
		if err := userExists(ctx, s.repos.Users(tx), creatorID, "creator_id"); err != nil {
			return err
		}
		_, err := s.repos.Events(tx).Create(ctx, ev)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info(ctx, "event created", "event_id", ev.ID, "calendar_id", calendarID, "creator_id", creatorID)
	return ev, nil
}

func (s *EventService) Get(ctx context.Context, id int64) (ev *models.Event, err error) {
	defer s.observe(entityEvent, "get", time.Now(), &err)
	return s.repos.Events(s.db).GetByID(ctx, id)
}

// List returns events matching filter ordered by start time.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) (list []models.Event, err error) {
	defer s.observe(entityEvent, "list", time.Now(), &err)
	return s.repos.Events(s.db).List(ctx, filter)
}

// ListByCalendar returns every event of calendarID by ascending start.
func (s *EventService) ListByCalendar(ctx context.Context, calendarID int64) ([]models.Event, error) {
	return s.List(ctx, models.EventFilter{CalendarID: calendarID})
}

// UpcomingForUser returns events authored by userID starting at or after
// now, soonest first, at most limit of them (DefaultUpcomingLimit when
// limit <= 0).
func (s *EventService) UpcomingForUser(ctx context.Context, userID int64, now time.Time, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	return s.List(ctx, models.EventFilter{
		CreatorID: userID,
		From:      now,
		Order:     models.OrderAsc,
		Limit:     limit,
	})
}

// Update applies the non-nil fields of patch to the stored event and
// validates the merged record, so changing only one end of the time range
// is checked against the stored other end.
func (s *EventService) Update(ctx context.Context, id int64, patch models.EventPatch) (ev *models.Event, err error) {
	defer s.observe(entityEvent, "update", time.Now(), &err)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Events(tx)

		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		merged := patch.Apply(*current)
		merged.StartTime = merged.StartTime.UTC()
		merged.EndTime = merged.EndTime.UTC()
		if err := validation.Event(&merged); err != nil {
			return err
		}
		if merged.CalendarID != current.CalendarID {
			if err := calendarExists(ctx, &s.base, tx, merged.CalendarID); err != nil {
				return err
			}
		}
		if merged.CreatorID != current.CreatorID {
			if err := userExists(ctx, s.repos.Users(tx), merged.CreatorID, "creator_id"); err != nil {
				return err
			}
		}

		if err := repo.Update(ctx, &merged); err != nil {
			return err
		}
		ev = &merged
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update event %d: %w", id, err)
	}

	s.logger.Info(ctx, "event updated", "event_id", id)
	return ev, nil
}

func (s *EventService) Delete(ctx context.Context, id int64) (err error) {
	defer s.observe(entityEvent, "delete", time.Now(), &err)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Events(tx).Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}

	s.logger.Info(ctx, "event deleted", "event_id", id)
	return nil
}

// AuthorizeEvent returns the event when userID authored it and
// common.ErrorForbidden otherwise.
func (s *EventService) AuthorizeEvent(ctx context.Context, userID, eventID int64) (*models.Event, error) {
	ev, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.CreatorID != userID {
		s.logger.Warn(ctx, "event access denied", "event_id", eventID, "user_id", userID)
		return nil, common.ErrorForbidden
	}
	return ev, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
