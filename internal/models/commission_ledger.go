package models

import (
	"time"
)

// Commission kinds written to the ledger
const (
	CommissionMatchingBonus    = "matching_bonus"
	CommissionLevelIncome      = "level_income"
	CommissionDirectCommission = "direct_commission"
)

// InvestmentRecord 记录每笔投资事件，作为业绩和佣金计算的数据源
type InvestmentRecord struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	NodeID        uint      `gorm:"column:node_id;not null;index" json:"node_id"`
	UserID        uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	PackageID     uint      `gorm:"column:package_id;default:0" json:"package_id"`
	Amount        float64   `gorm:"column:amount;not null" json:"amount"`
	HasRobotAddon bool      `gorm:"column:has_robot_addon;default:false" json:"has_robot_addon"`
	SourceEvent   string    `gorm:"column:source_event;size:40;index" json:"source_event"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (InvestmentRecord) TableName() string {
	return "investment_records"
}

// CommissionEntry is one ledger row produced by the bonus/level engines.
// Appends are fire-and-forget from the engines' perspective: a failed append
// is logged, never retried here.
type CommissionEntry struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	RecipientUserID uint      `gorm:"column:recipient_user_id;not null;index" json:"recipient_user_id"`
	Kind            string    `gorm:"column:kind;size:24;not null" json:"kind"`
	Level           int       `gorm:"column:level;default:0" json:"level"` // 0 for non-level kinds
	Amount          float64   `gorm:"column:amount;not null" json:"amount"`
	SourceEvent     string    `gorm:"column:source_event;size:40;index" json:"source_event"`
	Meta            JSONMap   `gorm:"column:meta;type:jsonb" json:"meta"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CommissionEntry) TableName() string {
	return "commission_entries"
}
