package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository aggregates across the booking tables. Everything is computed
// live from the rows; nothing here maintains counters.
type Repository interface {
	BookingCounts(ctx context.Context, date time.Time) (DomainCounts, error)
	CollectedRevenue(ctx context.Context, date time.Time) (DomainRevenue, error)
	RoomOccupancy(ctx context.Context) (Occupancy, error)
	UpcomingConferences(ctx context.Context, from time.Time, limit int) ([]UpcomingConference, error)
	RevenueSeries(ctx context.Context, domain string, granularity Granularity, from, to time.Time) ([]RevenuePoint, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const bookingCountsSQL = `
SELECT
	(SELECT count(*) FROM public.pool_bookings
		WHERE booking_date = $1 AND status <> 'cancelled'),
	(SELECT count(*) FROM public.conference_bookings
		WHERE starts_at::date = $1 AND status <> 'cancelled'),
	(SELECT count(*) FROM public.room_reservations
		WHERE check_in_date <= $1 AND check_out_date > $1
		  AND status IN ('confirmed', 'checked_in')),
	(SELECT count(*) FROM public.restaurant_sales
		WHERE sale_date = $1 AND status <> 'cancelled')
`

func (r *pgxRepository) BookingCounts(ctx context.Context, date time.Time) (DomainCounts, error) {
	var c DomainCounts
	err := r.pool.QueryRow(ctx, bookingCountsSQL, date).Scan(
		&c.Pool, &c.Conference, &c.Hotel, &c.Restaurant,
	)
	if err != nil {
		return DomainCounts{}, fmt.Errorf("count bookings failed: %w", err)
	}
	return c, nil
}

const collectedRevenueSQL = `
SELECT
	(SELECT COALESCE(SUM(paid_cents), 0) FROM public.pool_bookings
		WHERE booking_date = $1 AND payment_status <> 'refunded'),
	(SELECT COALESCE(SUM(paid_cents), 0) FROM public.conference_bookings
		WHERE starts_at::date = $1 AND payment_status <> 'refunded'),
	(SELECT COALESCE(SUM(paid_cents), 0) FROM public.room_reservations
		WHERE check_in_date = $1 AND payment_status <> 'refunded'),
	(SELECT COALESCE(SUM(paid_cents), 0) FROM public.restaurant_sales
		WHERE sale_date = $1 AND payment_status <> 'refunded')
`

func (r *pgxRepository) CollectedRevenue(ctx context.Context, date time.Time) (DomainRevenue, error) {
	var rev DomainRevenue
	err := r.pool.QueryRow(ctx, collectedRevenueSQL, date).Scan(
		&rev.Pool, &rev.Conference, &rev.Hotel, &rev.Restaurant,
	)
	if err != nil {
		return DomainRevenue{}, fmt.Errorf("sum collected revenue failed: %w", err)
	}
	return rev, nil
}

func (r *pgxRepository) RoomOccupancy(ctx context.Context) (Occupancy, error) {
	var occ Occupancy
	err := r.pool.QueryRow(ctx, `
SELECT count(*) FILTER (WHERE status = 'occupied'), count(*)
FROM public.rooms`).Scan(&occ.OccupiedRooms, &occ.TotalRooms)
	if err != nil {
		return Occupancy{}, fmt.Errorf("count room occupancy failed: %w", err)
	}
	if occ.TotalRooms > 0 {
		occ.Ratio = float64(occ.OccupiedRooms) / float64(occ.TotalRooms)
	}
	return occ, nil
}

const upcomingConferencesSQL = `
SELECT b.ref, h.code, b.title, b.starts_at, b.attendees, b.status
FROM public.conference_bookings b
JOIN public.conference_halls h ON b.hall_id = h.id
WHERE b.starts_at >= $1 AND b.status IN ('pending', 'approved', 'confirmed')
ORDER BY b.starts_at ASC
LIMIT $2
`

func (r *pgxRepository) UpcomingConferences(ctx context.Context, from time.Time, limit int) ([]UpcomingConference, error) {
	rows, err := r.pool.Query(ctx, upcomingConferencesSQL, from, limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming conferences failed: %w", err)
	}
	defer rows.Close()

	var upcoming []UpcomingConference
	for rows.Next() {
		var u UpcomingConference
		if err := rows.Scan(&u.Ref, &u.HallCode, &u.Title, &u.StartsAt, &u.Attendees, &u.Status); err != nil {
			return nil, fmt.Errorf("scan upcoming conference failed: %w", err)
		}
		upcoming = append(upcoming, u)
	}
	return upcoming, nil
}

// revenueSources maps a domain to its table and date column.
var revenueSources = map[string]struct {
	table   string
	dateCol string
}{
	DomainPool:       {"public.pool_bookings", "booking_date"},
	DomainConference: {"public.conference_bookings", "starts_at::date"},
	DomainHotel:      {"public.room_reservations", "check_in_date"},
	DomainRestaurant: {"public.restaurant_sales", "sale_date"},
}

func (r *pgxRepository) RevenueSeries(ctx context.Context, domain string, granularity Granularity, from, to time.Time) ([]RevenuePoint, error) {
	src, ok := revenueSources[domain]
	if !ok {
		return nil, ErrBadDomain
	}

	format := "YYYY-MM-DD"
	if granularity == ByMonth {
		format = "YYYY-MM"
	}

	// The table and column names come from the fixed map above, never from
	// the caller.
	sql := fmt.Sprintf(`
SELECT to_char(%s, '%s') AS bucket, COALESCE(SUM(paid_cents), 0)
FROM %s
WHERE %s >= $1 AND %s <= $2 AND payment_status <> 'refunded'
GROUP BY bucket
ORDER BY bucket ASC`,
		src.dateCol, format, src.table, src.dateCol, src.dateCol)

	rows, err := r.pool.Query(ctx, sql, from, to)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s revenue failed: %w", domain, err)
	}
	defer rows.Close()

	var points []RevenuePoint
	for rows.Next() {
		var p RevenuePoint
		if err := rows.Scan(&p.Bucket, &p.AmountCents); err != nil {
			return nil, fmt.Errorf("scan revenue bucket failed: %w", err)
		}
		points = append(points, p)
	}
	return points, nil
}
