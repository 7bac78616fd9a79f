package calendars

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophcal/internal/common"
	"github.com/dmitrijs2005/gophcal/internal/dbx"
	"github.com/dmitrijs2005/gophcal/internal/models"
)

const columns = `id, name, description, is_public, created_at, owner_id`

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, cal *models.Calendar) (*models.Calendar, error) {
	query :=
		`INSERT INTO calendars (name, description, is_public, created_at, owner_id)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query),
		cal.Name, cal.Description, cal.IsPublic, cal.CreatedAt.UTC(), cal.OwnerID).Scan(&cal.ID)
	if err != nil {
		return nil, mapError(err)
	}

	return cal, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Calendar, error) {
	query := `SELECT ` + columns + ` FROM calendars WHERE id = ?`

	cal, err := scan(r.db.QueryRowContext(ctx, r.dialect.Rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cal, nil
}

// List returns calendars ordered by id.
func (r *SQLRepository) List(ctx context.Context, filter models.CalendarFilter) ([]models.Calendar, error) {
	query := `SELECT ` + columns + ` FROM calendars`
	args := []any{}
	if filter.OwnerID != 0 {
		query += ` WHERE owner_id = ?`
		args = append(args, filter.OwnerID)
	}
	query += ` ORDER BY id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Calendar{}
	for rows.Next() {
		cal, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *cal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) Update(ctx context.Context, cal *models.Calendar) error {
	query :=
		`UPDATE calendars SET name = ?, description = ?, is_public = ?, owner_id = ?
		 WHERE id = ?`

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		cal.Name, cal.Description, cal.IsPublic, cal.OwnerID, cal.ID)
	if err != nil {
		return mapError(err)
	}

	return dbx.ExpectAffected(res, common.ErrorNotFound)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM calendars WHERE id = ?`), id)
	if err != nil {
		return mapError(err)
	}

	return dbx.ExpectAffected(res, common.ErrorNotFound)
}

// DeleteByOwner removes every calendar of ownerID and reports how many went.
func (r *SQLRepository) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM calendars WHERE owner_id = ?`), ownerID)
	if err != nil {
		return 0, mapError(err)
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

func scan(s scanner) (*models.Calendar, error) {
	c := &models.Calendar{}
	if err := s.Scan(&c.ID, &c.Name, &c.Description, &c.IsPublic, &c.CreatedAt, &c.OwnerID); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}

func mapError(err error) error {
	if dbx.IsForeignKeyViolation(err) {
		return common.NewFieldError("owner_id", common.ErrorDanglingReference)
	}
	return fmt.Errorf("db error: %w", err)
}
