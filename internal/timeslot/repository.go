package timeslot

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, slot *TimeSlot) error
	GetByID(ctx context.Context, id string) (*TimeSlot, error)
	List(ctx context.Context, filter Filter) ([]*TimeSlot, int, error)
	Update(ctx context.Context, slot *TimeSlot) error

	// UpsertByLabel inserts the slot if its label is unknown and does
	// nothing otherwise, so initialization routines are idempotent.
	UpsertByLabel(ctx context.Context, slot *TimeSlot) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var slotColumns = []string{
	"id", "label", "starts_at", "ends_at", "max_persons", "price_cents", "is_active", "created_at",
}

func (r *pgxRepository) Create(ctx context.Context, slot *TimeSlot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.time_slots").
		Columns("label", "starts_at", "ends_at", "max_persons", "price_cents", "is_active").
		Values(slot.Label, slot.StartsAt, slot.EndsAt, slot.MaxPersons, slot.PriceCents, slot.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create time slot query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&slot.ID, &slot.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("create time slot failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpsertByLabel(ctx context.Context, slot *TimeSlot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.time_slots").
		Columns("label", "starts_at", "ends_at", "max_persons", "price_cents", "is_active").
		Values(slot.Label, slot.StartsAt, slot.EndsAt, slot.MaxPersons, slot.PriceCents, slot.IsActive).
		Suffix("ON CONFLICT (label) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert time slot query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert time slot failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*TimeSlot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(slotColumns...).
		From("public.time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get time slot query failed: %w", err)
	}

	var slot TimeSlot
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&slot.ID, &slot.Label, &slot.StartsAt, &slot.EndsAt,
		&slot.MaxPersons, &slot.PriceCents, &slot.IsActive, &slot.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get time slot failed: %w", err)
	}
	return &slot, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*TimeSlot, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(slotColumns, "count(*) OVER() as total_count")...).
		From("public.time_slots")

	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}

	query = query.OrderBy("starts_at ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list time slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list time slots failed: %w", err)
	}
	defer rows.Close()

	var slots []*TimeSlot
	var total int

	for rows.Next() {
		var slot TimeSlot
		if err := rows.Scan(
			&slot.ID, &slot.Label, &slot.StartsAt, &slot.EndsAt,
			&slot.MaxPersons, &slot.PriceCents, &slot.IsActive, &slot.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan time slot failed: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, slot *TimeSlot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.time_slots").
		Set("max_persons", slot.MaxPersons).
		Set("price_cents", slot.PriceCents).
		Set("is_active", slot.IsActive).
		Where(squirrel.Eq{"id": slot.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update time slot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update time slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
