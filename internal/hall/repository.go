package hall

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
	Create(ctx context.Context, h *ConferenceHall) error
	GetByID(ctx context.Context, id string) (*ConferenceHall, error)
	List(ctx context.Context, filter Filter) ([]*ConferenceHall, int, error)
	Update(ctx context.Context, h *ConferenceHall) error

	// UpsertByCode inserts the hall if its code is unknown and does nothing
	// otherwise, so initialization routines are idempotent.
	UpsertByCode(ctx context.Context, h *ConferenceHall) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var hallColumns = []string{
	"id", "code", "name", "capacity", "hourly_rate_cents", "is_active",
	"COALESCE(photo_path, '')", "created_at", "updated_at",
}

func (r *pgxRepository) Create(ctx context.Context, h *ConferenceHall) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.conference_halls").
		Columns("code", "name", "capacity", "hourly_rate_cents", "is_active").
		Values(h.Code, h.Name, h.Capacity, h.HourlyRateCents, h.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create hall query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrCodeTaken
		}
		return fmt.Errorf("create hall failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpsertByCode(ctx context.Context, h *ConferenceHall) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.conference_halls").
		Columns("code", "name", "capacity", "hourly_rate_cents", "is_active").
		Values(h.Code, h.Name, h.Capacity, h.HourlyRateCents, h.IsActive).
		Suffix("ON CONFLICT (code) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert hall query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert hall failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*ConferenceHall, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(hallColumns...).
		From("public.conference_halls").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get hall query failed: %w", err)
	}

	var h ConferenceHall
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&h.ID, &h.Code, &h.Name, &h.Capacity, &h.HourlyRateCents,
		&h.IsActive, &h.PhotoPath, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get hall failed: %w", err)
	}
	return &h, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*ConferenceHall, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(hallColumns, "count(*) OVER() as total_count")...).
		From("public.conference_halls")

	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}
	if filter.MinCapacity > 0 {
		query = query.Where(squirrel.GtOrEq{"capacity": filter.MinCapacity})
	}

	query = query.OrderBy("code ASC")

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
		return nil, 0, fmt.Errorf("build list halls query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list halls failed: %w", err)
	}
	defer rows.Close()

	var halls []*ConferenceHall
	var total int

	for rows.Next() {
		var h ConferenceHall
		if err := rows.Scan(
			&h.ID, &h.Code, &h.Name, &h.Capacity, &h.HourlyRateCents,
			&h.IsActive, &h.PhotoPath, &h.CreatedAt, &h.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan hall failed: %w", err)
		}
		halls = append(halls, &h)
	}

	return halls, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, h *ConferenceHall) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.conference_halls").
		Set("name", h.Name).
		Set("capacity", h.Capacity).
		Set("hourly_rate_cents", h.HourlyRateCents).
		Set("is_active", h.IsActive).
		Set("photo_path", squirrel.Expr("NULLIF(?, '')", h.PhotoPath)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": h.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update hall query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update hall failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
