package business

import (
	"errors"
	"fmt"

	"compcontrol/internal/models"
	dbconfig "compcontrol/pkg/config"

	"gorm.io/gorm"
)

// ValidateBinarySettings rejects settings the engines must never run with.
// The cap hierarchy (daily <= weekly <= monthly) is deliberately not enforced:
// headroom is taken as the minimum over enabled windows, which is
// order-insensitive.
func ValidateBinarySettings(s *models.BinarySettings) error {
	if s.MatchingBonusPercentage < 0 || s.MatchingBonusPercentage > 100 {
		return fmt.Errorf("matching_bonus_percentage must be in [0,100]: %w", ErrInvalidConfiguration)
	}
	if s.DailyCap < 0 || s.WeeklyCap < 0 || s.MonthlyCap < 0 {
		return fmt.Errorf("caps must be >= 0: %w", ErrInvalidConfiguration)
	}
	if s.MaxCarryForwardDays < 0 {
		return fmt.Errorf("max_carry_forward_days must be >= 0: %w", ErrInvalidConfiguration)
	}
	switch s.SpilloverRule {
	case models.SpilloverAuto, models.SpilloverManual:
	default:
		return fmt.Errorf("unknown spillover_rule %q: %w", s.SpilloverRule, ErrInvalidConfiguration)
	}
	switch s.PlacementPriority {
	case models.PriorityLeft, models.PriorityRight, models.PriorityWeakerLeg, models.PriorityBalanced:
	default:
		return fmt.Errorf("unknown placement_priority %q: %w", s.PlacementPriority, ErrInvalidConfiguration)
	}
	return nil
}

// LoadBinarySettings reads the singleton settings row, creating the default
// row on first use. Settings are assumed validated at write time; an invalid
// row fails fast here instead of guessing.
func LoadBinarySettings() (*models.BinarySettings, error) {
	var settings models.BinarySettings
	err := dbconfig.DB.Order("id asc").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.BinarySettings{
			SpilloverEnabled:        true,
			SpilloverRule:           models.SpilloverAuto,
			PlacementPriority:       models.PriorityWeakerLeg,
			CappingEnabled:          true,
			MatchingBonusPercentage: 10,
			CarryForwardEnabled:     true,
			MaxCarryForwardDays:     7,
		}
		if err := dbconfig.DB.Create(&settings).Error; err != nil {
			return nil, fmt.Errorf("create default binary settings: %w", ErrDependencyUnavailable)
		}
		return &settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load binary settings: %w", ErrDependencyUnavailable)
	}

	if err := ValidateBinarySettings(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// LoadPackage reads one package and its level rate table sorted by level.
func LoadPackage(packageID uint) (*models.PackageConfig, []float64, error) {
	var pkg models.PackageConfig
	err := dbconfig.DB.Preload("LevelRates", func(db *gorm.DB) *gorm.DB {
		return db.Order("level asc")
	}).First(&pkg, packageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("package %d not found: %w", packageID, ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load package %d: %w", packageID, ErrDependencyUnavailable)
	}

	if pkg.MinInvestment > pkg.MaxInvestment {
		return nil, nil, fmt.Errorf("package %d min_investment > max_investment: %w", packageID, ErrInvalidConfiguration)
	}
	if pkg.LevelDepth < 1 || pkg.LevelDepth > 30 {
		return nil, nil, fmt.Errorf("package %d level_depth out of range: %w", packageID, ErrInvalidConfiguration)
	}

	rates := make([]float64, 0, len(pkg.LevelRates))
	for _, lr := range pkg.LevelRates {
		rates = append(rates, lr.Percentage)
	}
	if len(rates) != pkg.LevelDepth {
		return nil, nil, fmt.Errorf("package %d level table has %d rows, expected %d: %w",
			packageID, len(rates), pkg.LevelDepth, ErrInvalidConfiguration)
	}

	return &pkg, rates, nil
}

// GetSponsor returns the sponsor of userID, or (0, nil) when the chain ends.
func GetSponsor(userID uint) (uint, error) {
	var link models.SponsorLink
	err := dbconfig.DB.Where("user_id = ?", userID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("sponsor lookup for user %d: %w", userID, ErrDependencyUnavailable)
	}
	return link.SponsorUserID, nil
}
