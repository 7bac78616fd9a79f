package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophcal/internal/common"
	"github.com/dmitrijs2005/gophcal/internal/dbx"
	"github.com/dmitrijs2005/gophcal/internal/models"
)

const columns = `id, title, description, start_time, end_time, location, bg_color, txt_color, all_day, created_at, calendar_id, creator_id`

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, ev *models.Event) (*models.Event, error) {
	query :=
		`INSERT INTO events (title, description, start_time, end_time, location, bg_color, txt_color, all_day, created_at, calendar_id, creator_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query),
		ev.Title, ev.Description, ev.StartTime.UTC(), ev.EndTime.UTC(), ev.Location,
		ev.BgColor, ev.TxtColor, ev.AllDay, ev.CreatedAt.UTC(), ev.CalendarID, ev.CreatorID).Scan(&ev.ID)
	if err != nil {
		return nil, mapError(err)
	}

	return ev, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `SELECT ` + columns + ` FROM events WHERE id = ?`

	ev, err := scan(r.db.QueryRowContext(ctx, r.dialect.Rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return ev, nil
}

// List returns events matching filter sorted by start time, ties broken by id
// in the same direction.
func (r *SQLRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	var (
		where []string
		args  []any
	)
	if filter.CalendarID != 0 {
		where = append(where, "calendar_id = ?")
		args = append(args, filter.CalendarID)
	}
	if filter.CreatorID != 0 {
		where = append(where, "creator_id = ?")
		args = append(args, filter.CreatorID)
	}
	if !filter.From.IsZero() {
		where = append(where, "start_time >= ?")
		args = append(args, filter.From.UTC())
	}

	query := `SELECT ` + columns + ` FROM events`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	if filter.Order == models.OrderDesc {
		query += ` ORDER BY start_time DESC, id DESC`
	} else {
		query += ` ORDER BY start_time ASC, id ASC`
	}
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Event{}
	for rows.Next() {
		ev, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) Update(ctx context.Context, ev *models.Event) error {
	query :=
		`UPDATE events SET title = ?, description = ?, start_time = ?, end_time = ?, location = ?,
		 bg_color = ?, txt_color = ?, all_day = ?, calendar_id = ?, creator_id = ?
		 WHERE id = ?`

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		ev.Title, ev.Description, ev.StartTime.UTC(), ev.EndTime.UTC(), ev.Location,
		ev.BgColor, ev.TxtColor, ev.AllDay, ev.CalendarID, ev.CreatorID, ev.ID)
	if err != nil {
		return mapError(err)
	}

	return dbx.ExpectAffected(res, common.ErrorNotFound)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM events WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return dbx.ExpectAffected(res, common.ErrorNotFound)
}

func (r *SQLRepository) DeleteByCalendar(ctx context.Context, calendarID int64) (int64, error) {
	return r.deleteWhere(ctx, `DELETE FROM events WHERE calendar_id = ?`, calendarID)
}

func (r *SQLRepository) DeleteByCreator(ctx context.Context, creatorID int64) (int64, error) {
	return r.deleteWhere(ctx, `DELETE FROM events WHERE creator_id = ?`, creatorID)
}

// DeleteByCalendarOwner removes every event held in a calendar of ownerID,
// whoever authored it.
func (r *SQLRepository) DeleteByCalendarOwner(ctx context.Context, ownerID int64) (int64, error) {
	return r.deleteWhere(ctx,
		`DELETE FROM events WHERE calendar_id IN (SELECT id FROM calendars WHERE owner_id = ?)`, ownerID)
}

func (r *SQLRepository) deleteWhere(ctx context.Context, query string, arg int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), arg)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.Event, error) {
	e := &models.Event{}
	err := s.Scan(&e.ID, &e.Title, &e.Description, &e.StartTime, &e.EndTime, &e.Location,
		&e.BgColor, &e.TxtColor, &e.AllDay, &e.CreatedAt, &e.CalendarID, &e.CreatorID)
	if err != nil {
		return nil, err
	}
	e.StartTime = e.StartTime.UTC()
	e.EndTime = e.EndTime.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}

func mapError(err error) error {
	if dbx.IsForeignKeyViolation(err) {
		return common.ErrorDanglingReference
	}
	return fmt.Errorf("db error: %w", err)
}
