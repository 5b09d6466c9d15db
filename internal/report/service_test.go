package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sainamthip/resort-booking-backend/internal/cache"
)

type fakeRepo struct {
	counts   DomainCounts
	revenue  DomainRevenue
	occ      Occupancy
	upcoming []UpcomingConference
	points   []RevenuePoint

	seriesCalls int
}

func (f *fakeRepo) BookingCounts(ctx context.Context, date time.Time) (DomainCounts, error) {
	return f.counts, nil
}

func (f *fakeRepo) CollectedRevenue(ctx context.Context, date time.Time) (DomainRevenue, error) {
	return f.revenue, nil
}

func (f *fakeRepo) RoomOccupancy(ctx context.Context) (Occupancy, error) {
	return f.occ, nil
}

func (f *fakeRepo) UpcomingConferences(ctx context.Context, from time.Time, limit int) ([]UpcomingConference, error) {
	return f.upcoming, nil
}

func (f *fakeRepo) RevenueSeries(ctx context.Context, domain string, granularity Granularity, from, to time.Time) ([]RevenuePoint, error) {
	f.seriesCalls++
	return f.points, nil
}

func TestDashboardAggregates(t *testing.T) {
	repo := &fakeRepo{
		counts:  DomainCounts{Pool: 12, Conference: 2, Hotel: 7, Restaurant: 30},
		revenue: DomainRevenue{Pool: 100, Conference: 200, Hotel: 300, Restaurant: 400},
		occ:     Occupancy{OccupiedRooms: 6, TotalRooms: 10, Ratio: 0.6},
		upcoming: []UpcomingConference{
			{Ref: "CB-1-1", HallCode: "HALL-A", Title: "Summit"},
		},
	}
	svc := NewService(repo, cache.New(nil, 0))

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, d.Bookings.Pool)
	assert.Equal(t, int64(1000), d.RevenueTotalCents)
	assert.Equal(t, 0.6, d.Occupancy.Ratio)
	assert.Len(t, d.UpcomingConferences, 1)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), d.Date)
}

func TestRevenueValidatesAndTotals(t *testing.T) {
	repo := &fakeRepo{points: []RevenuePoint{
		{Bucket: "2026-08-01", AmountCents: 500},
		{Bucket: "2026-08-02", AmountCents: 700},
	}}
	svc := NewService(repo, cache.New(nil, 0))
	ctx := context.Background()

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	_, err := svc.Revenue(ctx, "spa", ByDay, from, to)
	assert.ErrorIs(t, err, ErrBadDomain)

	_, err = svc.Revenue(ctx, DomainPool, Granularity("week"), from, to)
	assert.ErrorIs(t, err, ErrBadGranularity)

	_, err = svc.Revenue(ctx, DomainPool, ByDay, to, from)
	assert.ErrorIs(t, err, ErrBadDateRange)

	series, err := svc.Revenue(ctx, DomainPool, ByDay, from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), series.TotalCents)
	assert.Len(t, series.Points, 2)
	assert.Equal(t, 1, repo.seriesCalls)
}
