package models

import (
	"time"
)

// PackageConfig describes one investment package. LevelDepth bounds how many
// sponsor-chain levels the package can ever unlock (1..30); the actual unlock
// at computation time also depends on the robot addon flag.
type PackageConfig struct {
	ID                         uint               `gorm:"primarykey" json:"id"`
	Name                       string             `gorm:"column:name;size:64;not null" json:"name"`
	MinInvestment              float64            `gorm:"column:min_investment;not null" json:"min_investment"`
	MaxInvestment              float64            `gorm:"column:max_investment;not null" json:"max_investment"`
	DailyReturnPercentage      float64            `gorm:"column:daily_return_percentage;default:0" json:"daily_return_percentage"`
	DurationDays               int                `gorm:"column:duration_days;default:0" json:"duration_days"`
	DirectCommissionPercentage float64            `gorm:"column:direct_commission_percentage;default:0" json:"direct_commission_percentage"`
	BinaryBonusPercentage      float64            `gorm:"column:binary_bonus_percentage;default:0" json:"binary_bonus_percentage"`
	LevelDepth                 int                `gorm:"column:level_depth;default:5" json:"level_depth"`
	IsActive                   bool               `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt                  time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt                  time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	LevelRates                 []PackageLevelRate `gorm:"foreignKey:PackageID" json:"level_rates,omitempty"`
}

func (PackageConfig) TableName() string {
	return "package_config"
}

// PackageLevelRate is one row of the per-level commission percentage table.
type PackageLevelRate struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	PackageID  uint    `gorm:"column:package_id;not null;uniqueIndex:idx_package_level" json:"package_id"`
	Level      int     `gorm:"column:level;not null;uniqueIndex:idx_package_level" json:"level"`
	Percentage float64 `gorm:"column:percentage;not null" json:"percentage"`
}

func (PackageLevelRate) TableName() string {
	return "package_level_rates"
}
