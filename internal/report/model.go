package report

import (
	"net/http"
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/pkg/apperror"
)

var (
	ErrBadGranularity = apperror.New(http.StatusBadRequest, "granularity must be day or month")
	ErrBadDomain      = apperror.New(http.StatusBadRequest, "unknown revenue domain")
	ErrBadDateRange   = apperror.New(http.StatusBadRequest, "from must be before to")
)

// Granularity of a revenue series bucket.
type Granularity string

const (
	ByDay   Granularity = "day"
	ByMonth Granularity = "month"
)

// Domains that carry revenue.
const (
	DomainPool       = "pool"
	DomainConference = "conference"
	DomainHotel      = "hotel"
	DomainRestaurant = "restaurant"
)

// ValidDomain reports whether d names a revenue domain.
func ValidDomain(d string) bool {
	switch d {
	case DomainPool, DomainConference, DomainHotel, DomainRestaurant:
		return true
	}
	return false
}

// DomainCounts is today's booking volume per domain.
type DomainCounts struct {
	Pool       int `json:"pool"`
	Conference int `json:"conference"`
	Hotel      int `json:"hotel"`
	Restaurant int `json:"restaurant"`
}

// DomainRevenue is collected money per domain, in cents.
type DomainRevenue struct {
	Pool       int64 `json:"pool_cents"`
	Conference int64 `json:"conference_cents"`
	Hotel      int64 `json:"hotel_cents"`
	Restaurant int64 `json:"restaurant_cents"`
}

// Total sums the per-domain figures.
func (r DomainRevenue) Total() int64 {
	return r.Pool + r.Conference + r.Hotel + r.Restaurant
}

// Occupancy is the hotel's room occupancy snapshot.
type Occupancy struct {
	OccupiedRooms int     `json:"occupied_rooms"`
	TotalRooms    int     `json:"total_rooms"`
	Ratio         float64 `json:"ratio"`
}

// UpcomingConference is a dashboard line for a hall event ahead.
type UpcomingConference struct {
	Ref       string    `json:"ref"`
	HallCode  string    `json:"hall_code"`
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"starts_at"`
	Attendees int       `json:"attendees"`
	Status    string    `json:"status"`
}

// Dashboard is the daily operations snapshot.
type Dashboard struct {
	Date                string               `json:"date"`
	Bookings            DomainCounts         `json:"bookings_today"`
	Revenue             DomainRevenue        `json:"revenue_today"`
	RevenueTotalCents   int64                `json:"revenue_today_total_cents"`
	Occupancy           Occupancy            `json:"occupancy"`
	UpcomingConferences []UpcomingConference `json:"upcoming_conferences"`
	GeneratedAt         time.Time            `json:"generated_at"`
}

// RevenuePoint is one bucket of a revenue series.
type RevenuePoint struct {
	Bucket      string `json:"bucket"` // "2026-08-27" or "2026-08"
	AmountCents int64  `json:"amount_cents"`
}

// RevenueSeries is a domain's revenue aggregated over a date range.
type RevenueSeries struct {
	Domain      string         `json:"domain"`
	Granularity Granularity    `json:"granularity"`
	From        string         `json:"from"`
	To          string         `json:"to"`
	Points      []RevenuePoint `json:"points"`
	TotalCents  int64          `json:"total_cents"`
}
