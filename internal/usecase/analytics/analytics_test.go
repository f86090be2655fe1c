package analytics

import (
	"context"
	"testing"
	"time"

	"fleet-device-manager/internal/domain/ticket"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		previous int
		want     float64
	}{
		{"zero prior window defaults to ten percent", 14, 0, DefaultGrowthRate},
		{"doubling", 20, 10, 1.0},
		{"decline", 5, 10, -0.5},
		{"flat", 10, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, GrowthRate(tt.current, tt.previous), 1e-9)
		})
	}
}

func TestConfidenceTier(t *testing.T) {
	assert.Equal(t, ConfidenceHigh, ConfidenceTier(60))
	assert.Equal(t, ConfidenceHigh, ConfidenceTier(51))
	assert.Equal(t, ConfidenceMedium, ConfidenceTier(50))
	assert.Equal(t, ConfidenceMedium, ConfidenceTier(10))
	assert.Equal(t, ConfidenceLow, ConfidenceTier(8))
	assert.Equal(t, ConfidenceLow, ConfidenceTier(0))
}

func TestProjectDemand(t *testing.T) {
	assert.Equal(t, 22, ProjectDemand(20, 0.10))
	assert.Equal(t, 11, ProjectDemand(10, 0.05)) // 10.5 rounds up
	assert.Equal(t, 5, ProjectDemand(10, -0.5))
	assert.Equal(t, 0, ProjectDemand(0, 0.10))
}

func TestRequiredStock(t *testing.T) {
	// ceil(10*0.3 + 4*0.5) = ceil(5.0) = 5
	assert.Equal(t, 5, RequiredStock(10, 4))
	// ceil(7*0.3 + 0*0.5) = ceil(2.1) = 3
	assert.Equal(t, 3, RequiredStock(7, 0))
	assert.Equal(t, 0, RequiredStock(0, 0))
}

func TestSimulatedCurrentStock(t *testing.T) {
	assert.Equal(t, 7, SimulatedCurrentStock(10))
	assert.Equal(t, 2, SimulatedCurrentStock(3)) // floor(2.1)
	assert.Equal(t, 0, SimulatedCurrentStock(0))
}

func TestShortagePriority(t *testing.T) {
	assert.Equal(t, PriorityCritical, ShortagePriority(6, 10))
	assert.Equal(t, PriorityHigh, ShortagePriority(4, 10))
	assert.Equal(t, PriorityMedium, ShortagePriority(2, 10))
	assert.Equal(t, PriorityLow, ShortagePriority(1, 10))
	assert.Equal(t, PriorityLow, ShortagePriority(0, 10))
	assert.Equal(t, PriorityLow, ShortagePriority(5, 0))
}

type fakeTicketRepo struct {
	current  []ticket.DistributorVolume
	previous []ticket.DistributorVolume
	pivot    time.Time
}

func (f *fakeTicketRepo) BatchInsert(ctx context.Context, tickets []*ticket.Ticket) error {
	return nil
}

func (f *fakeTicketRepo) VolumeByDistributor(ctx context.Context, from, to time.Time) ([]ticket.DistributorVolume, error) {
	if !to.After(f.pivot) {
		return f.previous, nil
	}
	return f.current, nil
}

func TestBuildReport(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	busy := uuid.New()
	quiet := uuid.New()

	repo := &fakeTicketRepo{
		pivot: now.Add(-demandWindow),
		current: []ticket.DistributorVolume{
			{DistributorID: busy, DistributorName: "Norte", Total: 60, HardwareIssues: 20},
			{DistributorID: quiet, DistributorName: "Sur", Total: 8, HardwareIssues: 1},
		},
		previous: []ticket.DistributorVolume{
			{DistributorID: busy, DistributorName: "Norte", Total: 40},
		},
	}

	svc := NewService(repo)
	svc.now = func() time.Time { return now }

	report, err := svc.BuildReport(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Forecasts, 2)
	require.Len(t, report.Estimates, 2)

	norte := report.Forecasts[0]
	assert.Equal(t, 60, norte.CurrentDemand)
	assert.Equal(t, 40, norte.PreviousDemand)
	assert.InDelta(t, 0.5, norte.GrowthRate, 1e-9)
	assert.Equal(t, ConfidenceHigh, norte.Confidence)
	assert.Equal(t, 90, norte.ProjectedDemand)

	sur := report.Forecasts[1]
	assert.Equal(t, ConfidenceLow, sur.Confidence)
	assert.InDelta(t, DefaultGrowthRate, sur.GrowthRate, 1e-9)

	// ceil(60*0.3 + 20*0.5) = 28, simulated stock floor(28*0.7) = 19
	est := report.Estimates[0]
	assert.Equal(t, 28, est.RequiredStock)
	assert.Equal(t, 19, est.CurrentStock)
	assert.Equal(t, 9, est.Shortage)
	assert.Equal(t, PriorityHigh, est.Priority)
}
