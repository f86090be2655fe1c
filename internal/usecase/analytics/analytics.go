package analytics

import (
	"math"
)

// The figures in this package are heuristic estimates, not guarantees. The
// current-stock baseline in particular is simulated from the required-stock
// figure until real inventory counts are wired in; none of the constants
// below encode a confirmed business rule.

const (
	// DefaultGrowthRate is assumed when the prior window has no tickets.
	DefaultGrowthRate = 0.10

	highConfidenceThreshold = 50
	lowConfidenceThreshold  = 10

	ticketStockWeight   = 0.3
	hardwareStockWeight = 0.5

	simulatedStockRatio = 0.7
)

// Confidence tiers for a demand projection.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Shortage priority tiers.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// GrowthRate computes week-over-week ticket growth. A zero prior window
// defaults to +10% rather than dividing by zero or signalling an error:
// the output is advisory.
func GrowthRate(current, previous int) float64 {
	if previous == 0 {
		return DefaultGrowthRate
	}
	return float64(current-previous) / float64(previous)
}

// ConfidenceTier grades how much ticket volume backs the projection.
func ConfidenceTier(current int) string {
	switch {
	case current > highConfidenceThreshold:
		return ConfidenceHigh
	case current < lowConfidenceThreshold:
		return ConfidenceLow
	default:
		return ConfidenceMedium
	}
}

// ProjectDemand estimates next-period ticket volume.
func ProjectDemand(current int, growthRate float64) int {
	return int(math.Round(float64(current) * (1 + growthRate)))
}

// RequiredStock estimates how many devices a distributor should hold given
// its ticket volume; hardware issues weigh heavier because they consume a
// replacement device.
func RequiredStock(ticketCount, hardwareIssueCount int) int {
	return int(math.Ceil(float64(ticketCount)*ticketStockWeight + float64(hardwareIssueCount)*hardwareStockWeight))
}

// SimulatedCurrentStock stands in for real inventory counts.
func SimulatedCurrentStock(requiredStock int) int {
	return int(math.Floor(float64(requiredStock) * simulatedStockRatio))
}

// ShortagePriority grades a shortage relative to the required stock.
func ShortagePriority(shortage, requiredStock int) string {
	if requiredStock <= 0 || shortage <= 0 {
		return PriorityLow
	}
	ratio := float64(shortage) / float64(requiredStock)
	switch {
	case ratio > 0.5:
		return PriorityCritical
	case ratio > 0.3:
		return PriorityHigh
	case ratio > 0.1:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
