package report

import (
	"context"
	"fmt"
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/cache"
)

const upcomingLimit = 5

type Service interface {
	// Dashboard builds the daily snapshot, served from cache when fresh.
	Dashboard(ctx context.Context) (*Dashboard, error)

	// Revenue aggregates one domain's collected revenue over a date range.
	Revenue(ctx context.Context, domain string, granularity Granularity, from, to time.Time) (*RevenueSeries, error)
}

type service struct {
	repo  Repository
	cache *cache.Cache
}

func NewService(repo Repository, c *cache.Cache) Service {
	return &service{repo: repo, cache: c}
}

// truncateDate normalizes a timestamp to its UTC calendar date.
func truncateDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	today := truncateDate(time.Now())
	key := "report:dashboard:" + today.Format("2006-01-02")

	var cached Dashboard
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	counts, err := s.repo.BookingCounts(ctx, today)
	if err != nil {
		return nil, err
	}
	revenue, err := s.repo.CollectedRevenue(ctx, today)
	if err != nil {
		return nil, err
	}
	occupancy, err := s.repo.RoomOccupancy(ctx)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.repo.UpcomingConferences(ctx, time.Now().UTC(), upcomingLimit)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Date:                today.Format("2006-01-02"),
		Bookings:            counts,
		Revenue:             revenue,
		RevenueTotalCents:   revenue.Total(),
		Occupancy:           occupancy,
		UpcomingConferences: upcoming,
		GeneratedAt:         time.Now().UTC(),
	}

	s.cache.SetJSON(ctx, key, d)
	return d, nil
}

func (s *service) Revenue(ctx context.Context, domain string, granularity Granularity, from, to time.Time) (*RevenueSeries, error) {
	if !ValidDomain(domain) {
		return nil, ErrBadDomain
	}
	if granularity != ByDay && granularity != ByMonth {
		return nil, ErrBadGranularity
	}

	from = truncateDate(from)
	to = truncateDate(to)
	if from.After(to) {
		return nil, ErrBadDateRange
	}

	key := fmt.Sprintf("report:revenue:%s:%s:%s:%s",
		domain, granularity, from.Format("2006-01-02"), to.Format("2006-01-02"))

	var cached RevenueSeries
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	points, err := s.repo.RevenueSeries(ctx, domain, granularity, from, to)
	if err != nil {
		return nil, err
	}

	series := &RevenueSeries{
		Domain:      domain,
		Granularity: granularity,
		From:        from.Format("2006-01-02"),
		To:          to.Format("2006-01-02"),
		Points:      points,
	}
	for _, p := range points {
		series.TotalCents += p.AmountCents
	}

	s.cache.SetJSON(ctx, key, series)
	return series, nil
}
