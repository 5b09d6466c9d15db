package roomtype

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
	Create(ctx context.Context, rt *RoomType) error
	GetByID(ctx context.Context, id string) (*RoomType, error)
	List(ctx context.Context, filter Filter) ([]*RoomType, int, error)
	Update(ctx context.Context, rt *RoomType) error

	// UpsertByCode inserts the room type if its code is unknown and does
	// nothing otherwise, so initialization routines are idempotent.
	UpsertByCode(ctx context.Context, rt *RoomType) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var typeColumns = []string{
	"id", "code", "name", "base_rate_cents", "max_occupancy", "created_at",
}

func (r *pgxRepository) Create(ctx context.Context, rt *RoomType) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.room_types").
		Columns("code", "name", "base_rate_cents", "max_occupancy").
		Values(rt.Code, rt.Name, rt.BaseRateCents, rt.MaxOccupancy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room type query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rt.ID, &rt.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrCodeTaken
		}
		return fmt.Errorf("create room type failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpsertByCode(ctx context.Context, rt *RoomType) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.room_types").
		Columns("code", "name", "base_rate_cents", "max_occupancy").
		Values(rt.Code, rt.Name, rt.BaseRateCents, rt.MaxOccupancy).
		Suffix("ON CONFLICT (code) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert room type query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert room type failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*RoomType, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(typeColumns...).
		From("public.room_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room type query failed: %w", err)
	}

	var rt RoomType
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&rt.ID, &rt.Code, &rt.Name, &rt.BaseRateCents, &rt.MaxOccupancy, &rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room type failed: %w", err)
	}
	return &rt, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*RoomType, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(typeColumns, "count(*) OVER() as total_count")...).
		From("public.room_types").
		OrderBy("code ASC")

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
		return nil, 0, fmt.Errorf("build list room types query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list room types failed: %w", err)
	}
	defer rows.Close()

	var types []*RoomType
	var total int

	for rows.Next() {
		var rt RoomType
		if err := rows.Scan(
			&rt.ID, &rt.Code, &rt.Name, &rt.BaseRateCents, &rt.MaxOccupancy, &rt.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan room type failed: %w", err)
		}
		types = append(types, &rt)
	}

	return types, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, rt *RoomType) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.room_types").
		Set("name", rt.Name).
		Set("base_rate_cents", rt.BaseRateCents).
		Set("max_occupancy", rt.MaxOccupancy).
		Where(squirrel.Eq{"id": rt.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room type query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update room type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
