package analytics

import (
	"context"
	"time"

	"fleet-device-manager/internal/domain/ticket"
	"fleet-device-manager/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const demandWindow = 7 * 24 * time.Hour

// DemandForecast is the per-distributor demand projection.
type DemandForecast struct {
	DistributorID   uuid.UUID `json:"distributor_id"`
	DistributorName string    `json:"distributor_name"`
	CurrentDemand   int       `json:"current_demand"`
	PreviousDemand  int       `json:"previous_demand"`
	GrowthRate      float64   `json:"growth_rate"`
	Confidence      string    `json:"confidence"`
	ProjectedDemand int       `json:"projected_demand"`
}

// StockEstimate is the per-distributor shortage estimate.
type StockEstimate struct {
	DistributorID   uuid.UUID `json:"distributor_id"`
	DistributorName string    `json:"distributor_name"`
	TicketCount     int       `json:"ticket_count"`
	HardwareIssues  int       `json:"hardware_issues"`
	RequiredStock   int       `json:"required_stock"`
	CurrentStock    int       `json:"current_stock"`
	Shortage        int       `json:"shortage"`
	Priority        string    `json:"priority"`
}

// Report bundles both views for the dashboard.
type Report struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Forecasts   []DemandForecast `json:"forecasts"`
	Estimates   []StockEstimate  `json:"estimates"`
}

// Service aggregates imported ticket volume into advisory demand and stock
// figures. Read-only; stale data degrades the output, never fails it.
type Service struct {
	ticketRepo ticket.Repository
	now        func() time.Time
}

func NewService(ticketRepo ticket.Repository) *Service {
	return &Service{
		ticketRepo: ticketRepo,
		now:        time.Now,
	}
}

// BuildReport computes the demand/stock report for the trailing week against
// the week before it. Missing data degrades to defaults rather than failing.
func (s *Service) BuildReport(ctx context.Context) (*Report, error) {
	now := s.now()
	currentFrom := now.Add(-demandWindow)
	previousFrom := now.Add(-2 * demandWindow)

	current, err := s.ticketRepo.VolumeByDistributor(ctx, currentFrom, now)
	if err != nil {
		return nil, err
	}
	previous, err := s.ticketRepo.VolumeByDistributor(ctx, previousFrom, currentFrom)
	if err != nil {
		logger.Warn("Prior-window ticket volume unavailable, defaulting growth rate",
			zap.Error(err),
		)
		previous = nil
	}

	previousByDistributor := make(map[uuid.UUID]int, len(previous))
	for _, vol := range previous {
		previousByDistributor[vol.DistributorID] = vol.Total
	}

	report := &Report{
		GeneratedAt: now,
		Forecasts:   make([]DemandForecast, 0, len(current)),
		Estimates:   make([]StockEstimate, 0, len(current)),
	}

	for _, vol := range current {
		prev := previousByDistributor[vol.DistributorID]
		growth := GrowthRate(vol.Total, prev)

		report.Forecasts = append(report.Forecasts, DemandForecast{
			DistributorID:   vol.DistributorID,
			DistributorName: vol.DistributorName,
			CurrentDemand:   vol.Total,
			PreviousDemand:  prev,
			GrowthRate:      growth,
			Confidence:      ConfidenceTier(vol.Total),
			ProjectedDemand: ProjectDemand(vol.Total, growth),
		})

		required := RequiredStock(vol.Total, vol.HardwareIssues)
		stock := SimulatedCurrentStock(required)
		shortage := required - stock

		report.Estimates = append(report.Estimates, StockEstimate{
			DistributorID:   vol.DistributorID,
			DistributorName: vol.DistributorName,
			TicketCount:     vol.Total,
			HardwareIssues:  vol.HardwareIssues,
			RequiredStock:   required,
			CurrentStock:    stock,
			Shortage:        shortage,
			Priority:        ShortagePriority(shortage, required),
		})
	}

	return report, nil
}
