package models

import (
	"time"
)

// Period granularity values
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// PeriodCounter tracks matching-bonus payout accumulated by one node inside
// the current capping window. Created lazily on first bonus computation and
// reset in place when the wall-clock boundary is crossed.
type PeriodCounter struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	NodeID            uint      `gorm:"column:node_id;not null;uniqueIndex:idx_counter_node_granularity" json:"node_id"`
	Granularity       string    `gorm:"column:granularity;size:10;not null;uniqueIndex:idx_counter_node_granularity" json:"granularity"` // day, week, month
	AccumulatedPayout float64   `gorm:"column:accumulated_payout;default:0" json:"accumulated_payout"`
	PeriodStart       time.Time `gorm:"column:period_start;not null" json:"period_start"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PeriodCounter) TableName() string {
	return "period_counters"
}

// CarryForwardEntry holds lesser-leg volume that produced a capped (unpaid)
// bonus. At most one live entry per node; it is consumed by the next
// computation before ExpiresAt and silently dropped afterwards.
type CarryForwardEntry struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	NodeID         uint      `gorm:"column:node_id;not null;uniqueIndex" json:"node_id"`
	Leg            string    `gorm:"column:leg;size:10;not null" json:"leg"` // which leg was the lesser one
	ResidualVolume float64   `gorm:"column:residual_volume;not null" json:"residual_volume"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ExpiresAt      time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
}

func (CarryForwardEntry) TableName() string {
	return "carry_forward_entries"
}
