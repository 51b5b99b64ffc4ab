package utils

import (
	"math"
)

// Level status constants
const (
	LevelStatusActive = "active"
	LevelStatusLocked = "locked"
)

// DefaultUnlockedLevels is how many sponsor-chain levels pay out without the
// robot addon.
const DefaultUnlockedLevels = 5

// RoiMaxFactor is the spread applied over the base daily return rate to get
// the upper ROI bound.
const RoiMaxFactor = 1.4

// MatchingResult represents the outcome of one matching-bonus computation
type MatchingResult struct {
	AvailableLesser float64 `json:"available_lesser"`
	RawBonus        float64 `json:"raw_bonus"`
	Payout          float64 `json:"payout"`
	ResidualVolume  float64 `json:"residual_volume"`
	Capped          bool    `json:"capped"`
}

// ComputeMatchingPayout applies the matching percentage to the lesser-leg
// volume (plus unexpired carry-forward volume) and, when capping is enabled,
// clamps the payout to the smallest remaining headroom across the enabled
// windows. ResidualVolume is the portion of lesser-leg volume whose bonus was
// not paid, converted back to volume terms.
func ComputeMatchingPayout(leftVolume, rightVolume, carryVolume, percentage float64, cappingEnabled bool, headrooms ...float64) MatchingResult {
	lesser := math.Min(leftVolume, rightVolume) + carryVolume
	rawBonus := lesser * percentage / 100

	payout := rawBonus
	if cappingEnabled {
		for _, room := range headrooms {
			if room < 0 {
				room = 0
			}
			if room < payout {
				payout = room
			}
		}
	}
	if payout < 0 {
		payout = 0
	}

	result := MatchingResult{
		AvailableLesser: lesser,
		RawBonus:        rawBonus,
		Payout:          payout,
		Capped:          payout < rawBonus,
	}

	if percentage > 0 {
		result.ResidualVolume = lesser - payout/percentage*100
		if result.ResidualVolume < 0 {
			result.ResidualVolume = 0
		}
	}

	return result
}

// LevelRow is one row of the per-level commission breakdown
type LevelRow struct {
	Level      int     `json:"level"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
	Cumulative float64 `json:"cumulative"`
	Status     string  `json:"status"` // active or locked
}

// ActiveLevels returns how many levels pay out for the given package depth
// and robot addon flag.
func ActiveLevels(levelDepth int, hasRobotAddon bool) int {
	if hasRobotAddon {
		return levelDepth
	}
	if levelDepth < DefaultUnlockedLevels {
		return levelDepth
	}
	return DefaultUnlockedLevels
}

// ComputeLevelBreakdown builds the full per-level table for one investment.
// Cumulative keeps running over all levels regardless of lock status; the
// returned total sums active levels only.
func ComputeLevelBreakdown(investmentAmount float64, rates []float64, activeLevels int) ([]LevelRow, float64) {
	rows := make([]LevelRow, 0, len(rates))
	var cumulative float64
	var totalActive float64

	for i, rate := range rates {
		level := i + 1
		amount := investmentAmount * rate / 100
		cumulative += amount

		status := LevelStatusLocked
		if level <= activeLevels {
			status = LevelStatusActive
			totalActive += amount
		}

		rows = append(rows, LevelRow{
			Level:      level,
			Percentage: rate,
			Amount:     amount,
			Cumulative: cumulative,
			Status:     status,
		})
	}

	return rows, totalActive
}

// ComputeDirectCommission returns the immediate sponsor's cut of one
// investment.
func ComputeDirectCommission(investmentAmount, directCommissionPercentage float64) float64 {
	return investmentAmount * directCommissionPercentage / 100
}

// RoiProjection represents the investor-facing return projection shown by the
// simulator. The binary estimate here is illustrative only and is not
// reconciled against per-node matching.
type RoiProjection struct {
	DailyRoiMin    float64 `json:"daily_roi_min"`
	DailyRoiMax    float64 `json:"daily_roi_max"`
	TotalReturnMin float64 `json:"total_return_min"`
	TotalReturnMax float64 `json:"total_return_max"`
}

// ComputeRoiProjection projects daily and total ROI for one investment.
func ComputeRoiProjection(investmentAmount, dailyReturnPercentage float64, durationDays int) RoiProjection {
	dailyMin := investmentAmount * dailyReturnPercentage / 100
	dailyMax := investmentAmount * (dailyReturnPercentage * RoiMaxFactor / 100)

	return RoiProjection{
		DailyRoiMin:    dailyMin,
		DailyRoiMax:    dailyMax,
		TotalReturnMin: dailyMin * float64(durationDays),
		TotalReturnMax: dailyMax * float64(durationDays),
	}
}
