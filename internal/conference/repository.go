package conference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// CreateAdmitted persists the booking only if the hall exists, the
	// attendees fit its capacity and no active booking overlaps the window.
	// The checks and the insert run as one statement, so two concurrent
	// requests cannot both claim the hall.
	CreateAdmitted(ctx context.Context, b *Booking) error

	// UpdateAdmitted rewrites hall/window/attendees/status under the same
	// single-statement checks, excluding the booking's own claim.
	UpdateAdmitted(ctx context.Context, b *Booking) error

	// Update persists status, invoice and money fields without re-admission.
	Update(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Delete(ctx context.Context, id string) error

	// WindowFree reports whether no active booking overlaps [start, end) on
	// the hall, optionally excluding one booking id.
	WindowFree(ctx context.Context, hallID string, start, end time.Time, excludeID string) (bool, error)

	// NextRefSeq draws the next value from the booking reference sequence.
	NextRefSeq(ctx context.Context) (int64, error)

	// NextInvoiceSeq draws the next value from the invoice number sequence.
	NextInvoiceSeq(ctx context.Context) (int64, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const createAdmittedSQL = `
INSERT INTO public.conference_bookings
	(ref, hall_id, title, starts_at, ends_at, attendees, status, amount_cents, paid_cents, payment_status, created_by)
SELECT $1, h.id, $3, $4, $5, $6, $7, $8, $9, $10, $11
FROM public.conference_halls h
WHERE h.id = $2
  AND $6 <= h.capacity
  AND NOT EXISTS (
		SELECT 1 FROM public.conference_bookings o
		WHERE o.hall_id = $2 AND o.status <> 'cancelled'
		  AND o.starts_at < $5 AND o.ends_at > $4
	)
RETURNING id, created_at, updated_at
`

func (r *pgxRepository) CreateAdmitted(ctx context.Context, b *Booking) error {
	err := r.pool.QueryRow(ctx, createAdmittedSQL,
		b.Ref, b.HallID, b.Title, b.StartsAt, b.EndsAt, b.Attendees,
		b.Status, b.AmountCents, b.PaidCents, b.PaymentStatus, b.CreatedBy,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.admissionRejection(ctx, b.HallID, b.Attendees)
		}
		return fmt.Errorf("create conference booking failed: %w", err)
	}
	return nil
}

const updateAdmittedSQL = `
UPDATE public.conference_bookings b
SET hall_id = $2, title = $3, starts_at = $4, ends_at = $5, attendees = $6,
	status = $7, amount_cents = $8, payment_status = $9, updated_at = now()
WHERE b.id = $1
  AND $6 <= (SELECT h.capacity FROM public.conference_halls h WHERE h.id = $2)
  AND NOT EXISTS (
		SELECT 1 FROM public.conference_bookings o
		WHERE o.hall_id = $2 AND o.status <> 'cancelled' AND o.id <> $1
		  AND o.starts_at < $5 AND o.ends_at > $4
	)
`

func (r *pgxRepository) UpdateAdmitted(ctx context.Context, b *Booking) error {
	ct, err := r.pool.Exec(ctx, updateAdmittedSQL,
		b.ID, b.HallID, b.Title, b.StartsAt, b.EndsAt, b.Attendees,
		b.Status, b.AmountCents, b.PaymentStatus,
	)
	if err != nil {
		return fmt.Errorf("update conference booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// The booking exists (caller fetched it), so zero rows means an
		// admission predicate failed.
		return r.admissionRejection(ctx, b.HallID, b.Attendees)
	}
	return nil
}

// admissionRejection turns a zero-row admission into the precise error.
func (r *pgxRepository) admissionRejection(ctx context.Context, hallID string, attendees int) error {
	var capacity int
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("capacity").
		From("public.conference_halls").
		Where(squirrel.Eq{"id": hallID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build hall capacity query failed: %w", err)
	}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&capacity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrHallNotFound
		}
		return fmt.Errorf("get hall capacity failed: %w", err)
	}
	if attendees > capacity {
		return AttendeesError(capacity)
	}
	return ErrHallOccupied
}

func (r *pgxRepository) WindowFree(ctx context.Context, hallID string, start, end time.Time, excludeID string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("count(*)").
		From("public.conference_bookings").
		Where(squirrel.Eq{"hall_id": hallID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"starts_at": end}).
		Where(squirrel.Gt{"ends_at": start})

	if excludeID != "" {
		query = query.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("build window free query failed: %w", err)
	}

	var overlapping int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&overlapping); err != nil {
		return false, fmt.Errorf("count overlapping bookings failed: %w", err)
	}
	return overlapping == 0, nil
}

func (r *pgxRepository) NextRefSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.pool.QueryRow(ctx, "SELECT nextval('public.conference_booking_ref_seq')").Scan(&seq); err != nil {
		return 0, fmt.Errorf("next conference booking ref failed: %w", err)
	}
	return seq, nil
}

func (r *pgxRepository) NextInvoiceSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.pool.QueryRow(ctx, "SELECT nextval('public.invoice_seq')").Scan(&seq); err != nil {
		return 0, fmt.Errorf("next invoice number failed: %w", err)
	}
	return seq, nil
}

var bookingColumns = []string{
	"b.id", "b.ref", "b.hall_id", "h.code", "h.name", "b.title",
	"b.starts_at", "b.ends_at", "b.attendees", "b.status",
	"COALESCE(b.invoice_number, '')", "COALESCE(b.approved_by::text, '')", "b.approved_at",
	"b.amount_cents", "b.paid_cents", "b.payment_status", "b.created_by",
	"b.created_at", "b.updated_at",
}

func scanBooking(row pgx.Row, b *Booking, extra ...any) error {
	dest := []any{
		&b.ID, &b.Ref, &b.HallID, &b.HallCode, &b.HallName, &b.Title,
		&b.StartsAt, &b.EndsAt, &b.Attendees, &b.Status,
		&b.InvoiceNumber, &b.ApprovedBy, &b.ApprovedAt,
		&b.AmountCents, &b.PaidCents, &b.PaymentStatus, &b.CreatedBy,
		&b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.conference_bookings b").
		Join("public.conference_halls h ON b.hall_id = h.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get conference booking query failed: %w", err)
	}

	var b Booking
	if err := scanBooking(r.pool.QueryRow(ctx, query, args...), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get conference booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(bookingColumns, "count(*) OVER() as total_count")...).
		From("public.conference_bookings b").
		Join("public.conference_halls h ON b.hall_id = h.id")

	if filter.HallID != "" {
		query = query.Where(squirrel.Eq{"b.hall_id": filter.HallID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.CreatedBy != "" {
		query = query.Where(squirrel.Eq{"b.created_by": filter.CreatedBy})
	}
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"b.ends_at": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"b.starts_at": *filter.To})
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy("b.starts_at " + orderDir)

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
		return nil, 0, fmt.Errorf("build list conference bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list conference bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b, &total); err != nil {
			return nil, 0, fmt.Errorf("scan conference booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.conference_bookings").
		Set("title", b.Title).
		Set("status", b.Status).
		Set("invoice_number", squirrel.Expr("NULLIF(?, '')", b.InvoiceNumber)).
		Set("approved_by", squirrel.Expr("NULLIF(?, '')::uuid", b.ApprovedBy)).
		Set("approved_at", b.ApprovedAt).
		Set("paid_cents", b.PaidCents).
		Set("payment_status", b.PaymentStatus).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update conference booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update conference booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.conference_bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete conference booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete conference booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
