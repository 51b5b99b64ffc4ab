package business

import (
	"compcontrol/internal/models"
	"compcontrol/pkg/utils"
)

// SimulationInput parameterizes a preview run. LeftVolume/RightVolume let the
// caller preview the matching computation against hypothetical legs.
type SimulationInput struct {
	InvestmentAmount float64
	HasRobotAddon    bool
	LeftVolume       float64
	RightVolume      float64
	CarryVolume      float64
}

// SimulationResult is the full preview for one hypothetical investment.
type SimulationResult struct {
	InvestmentAmount    float64              `json:"investment_amount"`
	ActiveLevels        int                  `json:"active_levels"`
	Levels              []utils.LevelRow     `json:"levels"`
	TotalLevelIncome    float64              `json:"total_level_income"`
	DirectCommission    float64              `json:"direct_commission"`
	BinaryBonusEstimate float64              `json:"binary_bonus_estimate"`
	Matching            utils.MatchingResult `json:"matching"`
	Roi                 utils.RoiProjection  `json:"roi"`
}

// Simulate produces the preview for one hypothetical investment. It calls
// exactly the pure functions the production engines use, with zero side
// effects: no tree mutation, no counters, no ledger writes, no events. Given
// identical inputs the output is identical to what production would compute.
//
// BinaryBonusEstimate is the simulator's illustrative package-percentage
// figure; it is not reconciled against the per-node matching computation.
func Simulate(pkg *models.PackageConfig, rates []float64, settings *models.BinarySettings,
	input SimulationInput) SimulationResult {

	activeLevels := utils.ActiveLevels(pkg.LevelDepth, input.HasRobotAddon)
	rows, totalActive := utils.ComputeLevelBreakdown(input.InvestmentAmount, rates, activeLevels)

	// matching preview assumes a fresh period: full headroom under every cap
	rooms := capHeadrooms(settings, 0, 0, 0)
	matching := utils.ComputeMatchingPayout(input.LeftVolume, input.RightVolume, input.CarryVolume,
		settings.MatchingBonusPercentage, settings.CappingEnabled, rooms...)

	return SimulationResult{
		InvestmentAmount:    input.InvestmentAmount,
		ActiveLevels:        activeLevels,
		Levels:              rows,
		TotalLevelIncome:    totalActive,
		DirectCommission:    utils.ComputeDirectCommission(input.InvestmentAmount, pkg.DirectCommissionPercentage),
		BinaryBonusEstimate: input.InvestmentAmount * pkg.BinaryBonusPercentage / 100,
		Matching:            matching,
		Roi:                 utils.ComputeRoiProjection(input.InvestmentAmount, pkg.DailyReturnPercentage, pkg.DurationDays),
	}
}
