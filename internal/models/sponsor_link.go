package models

import (
	"time"
)

// SponsorLink maps a user to the sponsor who referred them. The sponsor chain
// is walked by level-income computation and is independent of the binary
// parent/child relation.
type SponsorLink struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UserID        uint      `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	SponsorUserID uint      `gorm:"column:sponsor_user_id;not null;index" json:"sponsor_user_id"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SponsorLink) TableName() string {
	return "sponsor_links"
}
