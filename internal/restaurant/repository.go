package restaurant

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, s *Sale) error
	GetByID(ctx context.Context, id string) (*Sale, error)
	List(ctx context.Context, filter Filter) ([]*Sale, int, error)
	Update(ctx context.Context, s *Sale) error
	Delete(ctx context.Context, id string) error

	// NextRefSeq draws the next value from the sale reference sequence.
	NextRefSeq(ctx context.Context) (int64, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var saleColumns = []string{
	"id", "ref", "table_number", "covers", "sale_date", "status",
	"amount_cents", "paid_cents", "payment_status", "created_by",
	"created_at", "updated_at",
}

func (r *pgxRepository) Create(ctx context.Context, s *Sale) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.restaurant_sales").
		Columns("ref", "table_number", "covers", "sale_date", "status",
			"amount_cents", "paid_cents", "payment_status", "created_by").
		Values(s.Ref, s.TableNumber, s.Covers, s.SaleDate, s.Status,
			s.AmountCents, s.PaidCents, s.PaymentStatus, s.CreatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create restaurant sale query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("create restaurant sale failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Sale, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(saleColumns...).
		From("public.restaurant_sales").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get restaurant sale query failed: %w", err)
	}

	var s Sale
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.Ref, &s.TableNumber, &s.Covers, &s.SaleDate, &s.Status,
		&s.AmountCents, &s.PaidCents, &s.PaymentStatus, &s.CreatedBy,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get restaurant sale failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Sale, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(saleColumns, "count(*) OVER() as total_count")...).
		From("public.restaurant_sales")

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"sale_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"sale_date": *filter.DateTo})
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy("sale_date " + orderDir)

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
		return nil, 0, fmt.Errorf("build list restaurant sales query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list restaurant sales failed: %w", err)
	}
	defer rows.Close()

	var sales []*Sale
	var total int

	for rows.Next() {
		var s Sale
		if err := rows.Scan(
			&s.ID, &s.Ref, &s.TableNumber, &s.Covers, &s.SaleDate, &s.Status,
			&s.AmountCents, &s.PaidCents, &s.PaymentStatus, &s.CreatedBy,
			&s.CreatedAt, &s.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan restaurant sale failed: %w", err)
		}
		sales = append(sales, &s)
	}

	return sales, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Sale) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.restaurant_sales").
		Set("table_number", s.TableNumber).
		Set("covers", s.Covers).
		Set("status", s.Status).
		Set("amount_cents", s.AmountCents).
		Set("paid_cents", s.PaidCents).
		Set("payment_status", s.PaymentStatus).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update restaurant sale query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update restaurant sale failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.restaurant_sales").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete restaurant sale query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete restaurant sale failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) NextRefSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.pool.QueryRow(ctx, "SELECT nextval('public.restaurant_sale_ref_seq')").Scan(&seq); err != nil {
		return 0, fmt.Errorf("next restaurant sale ref failed: %w", err)
	}
	return seq, nil
}
