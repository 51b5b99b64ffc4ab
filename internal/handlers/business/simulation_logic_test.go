package business

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compcontrol/internal/models"
	"compcontrol/pkg/utils"
)

func simTestPackage() (*models.PackageConfig, []float64) {
	pkg := &models.PackageConfig{
		ID:                         1,
		Name:                       "Growth",
		MinInvestment:              100,
		MaxInvestment:              10000,
		DailyReturnPercentage:      5,
		DurationDays:               30,
		DirectCommissionPercentage: 5,
		BinaryBonusPercentage:      10,
		LevelDepth:                 10,
		IsActive:                   true,
	}
	rates := []float64{10, 5, 3, 2, 1, 1, 1, 1, 1, 1}
	return pkg, rates
}

func simTestSettings() *models.BinarySettings {
	return &models.BinarySettings{
		SpilloverEnabled:        true,
		SpilloverRule:           models.SpilloverAuto,
		PlacementPriority:       models.PriorityWeakerLeg,
		CappingEnabled:          true,
		DailyCap:                500,
		MatchingBonusPercentage: 10,
		CarryForwardEnabled:     true,
		MaxCarryForwardDays:     7,
	}
}

func TestSimulate(t *testing.T) {
	pkg, rates := simTestPackage()
	settings := simTestSettings()

	input := SimulationInput{
		InvestmentAmount: 1000,
		HasRobotAddon:    false,
		LeftVolume:       8000,
		RightVolume:      6000,
	}

	result := Simulate(pkg, rates, settings, input)

	// Level income: 5 active levels without the robot addon
	assert.Equal(t, 5, result.ActiveLevels)
	assert.Len(t, result.Levels, 10)
	assert.Equal(t, 210.0, result.TotalLevelIncome)
	assert.Equal(t, utils.LevelStatusLocked, result.Levels[9].Status)

	// Direct commission and illustrative binary figure
	assert.Equal(t, 50.0, result.DirectCommission)
	assert.Equal(t, 100.0, result.BinaryBonusEstimate)

	// Matching preview: 6000 lesser at 10% clamped to the 500 daily cap
	assert.Equal(t, 6000.0, result.Matching.AvailableLesser)
	assert.Equal(t, 600.0, result.Matching.RawBonus)
	assert.Equal(t, 500.0, result.Matching.Payout)
	assert.Equal(t, 1000.0, result.Matching.ResidualVolume)
	assert.True(t, result.Matching.Capped)

	// ROI projection
	assert.Equal(t, 50.0, result.Roi.DailyRoiMin)
	assert.Equal(t, 1500.0, result.Roi.TotalReturnMin)
}

func TestSimulateRobotAddonUnlocksAllLevels(t *testing.T) {
	pkg, rates := simTestPackage()
	settings := simTestSettings()

	result := Simulate(pkg, rates, settings, SimulationInput{
		InvestmentAmount: 1000,
		HasRobotAddon:    true,
	})

	assert.Equal(t, 10, result.ActiveLevels)
	assert.Equal(t, 260.0, result.TotalLevelIncome)
	for _, row := range result.Levels {
		assert.Equal(t, utils.LevelStatusActive, row.Status)
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	pkg, rates := simTestPackage()
	settings := simTestSettings()

	input := SimulationInput{
		InvestmentAmount: 2500,
		HasRobotAddon:    true,
		LeftVolume:       4000,
		RightVolume:      9000,
		CarryVolume:      500,
	}

	first := Simulate(pkg, rates, settings, input)
	second := Simulate(pkg, rates, settings, input)

	// Same inputs, same outputs: the preview calls exactly the pure
	// functions production uses
	require.Equal(t, first, second)
}

func TestSimulateMatchesProductionMath(t *testing.T) {
	pkg, rates := simTestPackage()
	settings := simTestSettings()

	input := SimulationInput{
		InvestmentAmount: 1000,
		LeftVolume:       4000,
		RightVolume:      9000,
		CarryVolume:      500,
	}

	result := Simulate(pkg, rates, settings, input)

	expected := utils.ComputeMatchingPayout(input.LeftVolume, input.RightVolume, input.CarryVolume,
		settings.MatchingBonusPercentage, settings.CappingEnabled,
		capHeadrooms(settings, 0, 0, 0)...)
	assert.Equal(t, expected, result.Matching)
}
