package hotel

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
	// CreateAdmitted persists the reservation only if the room exists, the
	// party fits the room type's occupancy and no active reservation
	// overlaps the night range. The checks and the insert run as one
	// statement, so two concurrent requests cannot both claim the room.
	CreateAdmitted(ctx context.Context, r *Reservation) error

	// UpdateAdmitted rewrites room/nights/party/status under the same
	// single-statement checks, excluding the reservation's own claim.
	UpdateAdmitted(ctx context.Context, r *Reservation) error

	// Update persists status, guest and money fields without re-admission.
	Update(ctx context.Context, r *Reservation) error

	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	Delete(ctx context.Context, id string) error

	// RangeFree reports whether no active reservation overlaps the night
	// range [checkIn, checkOut) on the room, optionally excluding one
	// reservation id.
	RangeFree(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error)

	// FreeRooms lists rooms with no active reservation overlapping the
	// night range. Rooms under maintenance are excluded.
	FreeRooms(ctx context.Context, checkIn, checkOut time.Time) ([]FreeRoom, error)

	// NextRefSeq draws the next value from the reservation reference
	// sequence.
	NextRefSeq(ctx context.Context) (int64, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const createAdmittedSQL = `
INSERT INTO public.room_reservations
	(ref, room_id, guest_name, check_in_date, check_out_date, adults, children,
	 status, amount_cents, paid_cents, payment_status, created_by)
SELECT $1, r.id, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
FROM public.rooms r
JOIN public.room_types t ON r.room_type_id = t.id
WHERE r.id = $2
  AND $6 + $7 <= t.max_occupancy
  AND NOT EXISTS (
		SELECT 1 FROM public.room_reservations o
		WHERE o.room_id = $2 AND o.status IN ('confirmed', 'checked_in')
		  AND o.check_in_date < $5 AND o.check_out_date > $4
	)
RETURNING id, created_at, updated_at
`

func (r *pgxRepository) CreateAdmitted(ctx context.Context, res *Reservation) error {
	err := r.pool.QueryRow(ctx, createAdmittedSQL,
		res.Ref, res.RoomID, res.GuestName, res.CheckInDate, res.CheckOutDate,
		res.Adults, res.Children, res.Status, res.AmountCents, res.PaidCents,
		res.PaymentStatus, res.CreatedBy,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.admissionRejection(ctx, res.RoomID, res.Adults+res.Children)
		}
		return fmt.Errorf("create room reservation failed: %w", err)
	}
	return nil
}

const updateAdmittedSQL = `
UPDATE public.room_reservations b
SET room_id = $2, guest_name = $3, check_in_date = $4, check_out_date = $5,
	adults = $6, children = $7, status = $8, amount_cents = $9,
	payment_status = $10, updated_at = now()
WHERE b.id = $1
  AND $6 + $7 <= (
		SELECT t.max_occupancy FROM public.rooms r
		JOIN public.room_types t ON r.room_type_id = t.id
		WHERE r.id = $2
	)
  AND NOT EXISTS (
		SELECT 1 FROM public.room_reservations o
		WHERE o.room_id = $2 AND o.status IN ('confirmed', 'checked_in') AND o.id <> $1
		  AND o.check_in_date < $5 AND o.check_out_date > $4
	)
`

func (r *pgxRepository) UpdateAdmitted(ctx context.Context, res *Reservation) error {
	ct, err := r.pool.Exec(ctx, updateAdmittedSQL,
		res.ID, res.RoomID, res.GuestName, res.CheckInDate, res.CheckOutDate,
		res.Adults, res.Children, res.Status, res.AmountCents, res.PaymentStatus,
	)
	if err != nil {
		return fmt.Errorf("update room reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// The reservation exists (caller fetched it), so zero rows means an
		// admission predicate failed.
		return r.admissionRejection(ctx, res.RoomID, res.Adults+res.Children)
	}
	return nil
}

// admissionRejection turns a zero-row admission into the precise error.
func (r *pgxRepository) admissionRejection(ctx context.Context, roomID string, guests int) error {
	var maxOccupancy int
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("t.max_occupancy").
		From("public.rooms r").
		Join("public.room_types t ON r.room_type_id = t.id").
		Where(squirrel.Eq{"r.id": roomID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build room occupancy query failed: %w", err)
	}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&maxOccupancy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("get room occupancy failed: %w", err)
	}
	if guests > maxOccupancy {
		return OccupancyError(maxOccupancy)
	}
	return ErrRoomReserved
}

func (r *pgxRepository) RangeFree(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("count(*)").
		From("public.room_reservations").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"status": []Status{StatusConfirmed, StatusCheckedIn}}).
		Where(squirrel.Lt{"check_in_date": checkOut}).
		Where(squirrel.Gt{"check_out_date": checkIn})

	if excludeID != "" {
		query = query.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("build range free query failed: %w", err)
	}

	var overlapping int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&overlapping); err != nil {
		return false, fmt.Errorf("count overlapping reservations failed: %w", err)
	}
	return overlapping == 0, nil
}

const freeRoomsSQL = `
SELECT r.id, r.number, t.code, t.name, t.base_rate_cents
FROM public.rooms r
JOIN public.room_types t ON r.room_type_id = t.id
WHERE r.status <> 'maintenance'
  AND NOT EXISTS (
		SELECT 1 FROM public.room_reservations o
		WHERE o.room_id = r.id AND o.status IN ('confirmed', 'checked_in')
		  AND o.check_in_date < $2 AND o.check_out_date > $1
	)
ORDER BY r.number ASC
`

func (r *pgxRepository) FreeRooms(ctx context.Context, checkIn, checkOut time.Time) ([]FreeRoom, error) {
	rows, err := r.pool.Query(ctx, freeRoomsSQL, checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("list free rooms failed: %w", err)
	}
	defer rows.Close()

	var free []FreeRoom
	for rows.Next() {
		var f FreeRoom
		if err := rows.Scan(&f.RoomID, &f.Number, &f.TypeCode, &f.TypeName, &f.BaseRateCents); err != nil {
			return nil, fmt.Errorf("scan free room failed: %w", err)
		}
		free = append(free, f)
	}
	return free, nil
}

func (r *pgxRepository) NextRefSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.pool.QueryRow(ctx, "SELECT nextval('public.room_reservation_ref_seq')").Scan(&seq); err != nil {
		return 0, fmt.Errorf("next room reservation ref failed: %w", err)
	}
	return seq, nil
}

var reservationColumns = []string{
	"b.id", "b.ref", "b.room_id", "r.number", "t.code", "b.guest_name",
	"b.check_in_date", "b.check_out_date", "b.adults", "b.children", "b.status",
	"b.amount_cents", "b.paid_cents", "b.payment_status", "b.created_by",
	"b.created_at", "b.updated_at",
}

func scanReservation(row pgx.Row, res *Reservation, extra ...any) error {
	dest := []any{
		&res.ID, &res.Ref, &res.RoomID, &res.RoomNumber, &res.RoomTypeCode, &res.GuestName,
		&res.CheckInDate, &res.CheckOutDate, &res.Adults, &res.Children, &res.Status,
		&res.AmountCents, &res.PaidCents, &res.PaymentStatus, &res.CreatedBy,
		&res.CreatedAt, &res.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(reservationColumns...).
		From("public.room_reservations b").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.room_types t ON r.room_type_id = t.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room reservation query failed: %w", err)
	}

	var res Reservation
	if err := scanReservation(r.pool.QueryRow(ctx, query, args...), &res); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room reservation failed: %w", err)
	}
	return &res, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(reservationColumns, "count(*) OVER() as total_count")...).
		From("public.room_reservations b").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.room_types t ON r.room_type_id = t.id")

	if filter.RoomID != "" {
		query = query.Where(squirrel.Eq{"b.room_id": filter.RoomID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.GuestName != "" {
		query = query.Where(squirrel.ILike{"b.guest_name": "%" + filter.GuestName + "%"})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.Gt{"b.check_out_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.Lt{"b.check_in_date": *filter.DateTo})
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy("b.check_in_date " + orderDir)

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
		return nil, 0, fmt.Errorf("build list room reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list room reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	var total int

	for rows.Next() {
		var res Reservation
		if err := scanReservation(rows, &res, &total); err != nil {
			return nil, 0, fmt.Errorf("scan room reservation failed: %w", err)
		}
		reservations = append(reservations, &res)
	}

	return reservations, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, res *Reservation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.room_reservations").
		Set("guest_name", res.GuestName).
		Set("status", res.Status).
		Set("paid_cents", res.PaidCents).
		Set("payment_status", res.PaymentStatus).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room reservation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update room reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.room_reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete room reservation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete room reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
