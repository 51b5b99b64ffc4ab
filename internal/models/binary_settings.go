package models

import (
	"time"
)

// Spillover rule values
const (
	SpilloverAuto   = "auto"
	SpilloverManual = "manual"
)

// BinarySettings is the singleton configuration row driving placement and
// matching-bonus behavior. It is admin-mutable and read on every operation;
// the engines assume it was validated at write time and fail fast otherwise.
type BinarySettings struct {
	ID                      uint      `gorm:"primarykey" json:"id"`
	SpilloverEnabled        bool      `gorm:"column:spillover_enabled;default:true" json:"spillover_enabled"`
	SpilloverRule           string    `gorm:"column:spillover_rule;size:10;default:'auto'" json:"spillover_rule"` // 'auto' or 'manual'
	PlacementPriority       string    `gorm:"column:placement_priority;size:20;default:'weaker-leg'" json:"placement_priority"`
	CappingEnabled          bool      `gorm:"column:capping_enabled;default:true" json:"capping_enabled"`
	DailyCap                float64   `gorm:"column:daily_cap;default:0" json:"daily_cap"`
	WeeklyCap               float64   `gorm:"column:weekly_cap;default:0" json:"weekly_cap"`
	MonthlyCap              float64   `gorm:"column:monthly_cap;default:0" json:"monthly_cap"`
	MatchingBonusPercentage float64   `gorm:"column:matching_bonus_percentage;default:10" json:"matching_bonus_percentage"`
	CarryForwardEnabled     bool      `gorm:"column:carry_forward_enabled;default:true" json:"carry_forward_enabled"`
	MaxCarryForwardDays     int       `gorm:"column:max_carry_forward_days;default:7" json:"max_carry_forward_days"`
	CreatedAt               time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BinarySettings) TableName() string {
	return "binary_settings"
}
