package pool

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
	// CreateAdmitted persists the booking only if the slot's remaining
	// capacity on the booking date covers the party. The capacity check and
	// the insert run as one statement, so two concurrent requests cannot
	// both slip past the limit. On rejection it returns a CapacityError
	// carrying the remaining spots.
	CreateAdmitted(ctx context.Context, b *Booking) error

	// UpdateAdmitted rewrites slot/date/party/status under the same
	// single-statement capacity check, excluding the booking's own demand.
	UpdateAdmitted(ctx context.Context, b *Booking) error

	// Update persists status and money fields without re-admission.
	Update(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Delete(ctx context.Context, id string) error

	// CommittedPersons sums the demand of active bookings on a slot/date,
	// optionally excluding one booking id.
	CommittedPersons(ctx context.Context, slotID string, date time.Time, excludeID string) (int, error)

	// NextRefSeq draws the next value from the booking reference sequence.
	NextRefSeq(ctx context.Context) (int64, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const createAdmittedSQL = `
INSERT INTO public.pool_bookings
	(ref, slot_id, booking_date, persons, status, amount_cents, paid_cents, payment_status, created_by)
SELECT $1, s.id, $3, $4, $5, $6, $7, $8, $9
FROM public.time_slots s
WHERE s.id = $2
  AND $4 + COALESCE((
		SELECT SUM(o.persons) FROM public.pool_bookings o
		WHERE o.slot_id = $2 AND o.booking_date = $3 AND o.status <> 'cancelled'
	), 0) <= s.max_persons
RETURNING id, created_at, updated_at
`

func (r *pgxRepository) CreateAdmitted(ctx context.Context, b *Booking) error {
	err := r.pool.QueryRow(ctx, createAdmittedSQL,
		b.Ref, b.SlotID, b.Date, b.Persons, b.Status,
		b.AmountCents, b.PaidCents, b.PaymentStatus, b.CreatedBy,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.capacityRejection(ctx, b.SlotID, b.Date, "")
		}
		return fmt.Errorf("create pool booking failed: %w", err)
	}
	return nil
}

const updateAdmittedSQL = `
UPDATE public.pool_bookings b
SET slot_id = $2, booking_date = $3, persons = $4, status = $5,
	amount_cents = $6, payment_status = $7, updated_at = now()
WHERE b.id = $1
  AND $4 + COALESCE((
		SELECT SUM(o.persons) FROM public.pool_bookings o
		WHERE o.slot_id = $2 AND o.booking_date = $3
		  AND o.status <> 'cancelled' AND o.id <> $1
	), 0) <= (SELECT s.max_persons FROM public.time_slots s WHERE s.id = $2)
`

func (r *pgxRepository) UpdateAdmitted(ctx context.Context, b *Booking) error {
	ct, err := r.pool.Exec(ctx, updateAdmittedSQL,
		b.ID, b.SlotID, b.Date, b.Persons, b.Status, b.AmountCents, b.PaymentStatus,
	)
	if err != nil {
		return fmt.Errorf("update pool booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// The booking exists (caller fetched it), so zero rows means the
		// capacity predicate failed.
		return r.capacityRejection(ctx, b.SlotID, b.Date, b.ID)
	}
	return nil
}

func (r *pgxRepository) capacityRejection(ctx context.Context, slotID string, date time.Time, excludeID string) error {
	var maxPersons int
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("max_persons").
		From("public.time_slots").
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build slot capacity query failed: %w", err)
	}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&maxPersons); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("get slot capacity failed: %w", err)
	}

	committed, err := r.CommittedPersons(ctx, slotID, date, excludeID)
	if err != nil {
		return err
	}
	return CapacityError(maxPersons - committed)
}

func (r *pgxRepository) CommittedPersons(ctx context.Context, slotID string, date time.Time, excludeID string) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("COALESCE(SUM(persons), 0)").
		From("public.pool_bookings").
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.NotEq{"status": StatusCancelled})

	if excludeID != "" {
		query = query.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build committed persons query failed: %w", err)
	}

	var committed int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&committed); err != nil {
		return 0, fmt.Errorf("sum committed persons failed: %w", err)
	}
	return committed, nil
}

func (r *pgxRepository) NextRefSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.pool.QueryRow(ctx, "SELECT nextval('public.pool_booking_ref_seq')").Scan(&seq); err != nil {
		return 0, fmt.Errorf("next pool booking ref failed: %w", err)
	}
	return seq, nil
}

var bookingColumns = []string{
	"b.id", "b.ref", "b.slot_id", "s.label", "b.booking_date", "b.persons", "b.status",
	"b.amount_cents", "b.paid_cents", "b.payment_status", "b.created_by",
	"b.created_at", "b.updated_at",
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.pool_bookings b").
		Join("public.time_slots s ON b.slot_id = s.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get pool booking query failed: %w", err)
	}

	var b Booking
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.Ref, &b.SlotID, &b.SlotLabel, &b.Date, &b.Persons, &b.Status,
		&b.AmountCents, &b.PaidCents, &b.PaymentStatus, &b.CreatedBy,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get pool booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(bookingColumns, "count(*) OVER() as total_count")...).
		From("public.pool_bookings b").
		Join("public.time_slots s ON b.slot_id = s.id")

	if filter.SlotID != "" {
		query = query.Where(squirrel.Eq{"b.slot_id": filter.SlotID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.CreatedBy != "" {
		query = query.Where(squirrel.Eq{"b.created_by": filter.CreatedBy})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"b.booking_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"b.booking_date": *filter.DateTo})
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy("b.booking_date " + orderDir)

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
		return nil, 0, fmt.Errorf("build list pool bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list pool bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.Ref, &b.SlotID, &b.SlotLabel, &b.Date, &b.Persons, &b.Status,
			&b.AmountCents, &b.PaidCents, &b.PaymentStatus, &b.CreatedBy,
			&b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan pool booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.pool_bookings").
		Set("status", b.Status).
		Set("paid_cents", b.PaidCents).
		Set("payment_status", b.PaymentStatus).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update pool booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update pool booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.pool_bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete pool booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete pool booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
