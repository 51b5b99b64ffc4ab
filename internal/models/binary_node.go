package models

import (
	"time"
)

// Position values for BinaryNode.Position
const (
	PositionRoot  = "root"
	PositionLeft  = "left"
	PositionRight = "right"
)

// Placement priority values for BinarySettings.PlacementPriority
const (
	PriorityLeft      = "left"
	PriorityRight     = "right"
	PriorityWeakerLeg = "weaker-leg"
	PriorityBalanced  = "balanced"
)

// BinaryNode represents one slot in the binary placement tree.
// LeftVolume/RightVolume are maintained incrementally on every investment and
// must always equal the sum of PersonalVolume over the respective subtree.
type BinaryNode struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	UserID         uint      `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	ParentID       *uint     `gorm:"column:parent_id;index" json:"parent_id"` // nil only for the root
	Position       string    `gorm:"column:position;size:10;not null" json:"position"`
	LeftChildID    *uint     `gorm:"column:left_child_id" json:"left_child_id"`
	RightChildID   *uint     `gorm:"column:right_child_id" json:"right_child_id"`
	PersonalVolume float64   `gorm:"column:personal_volume;default:0" json:"personal_volume"`
	LeftVolume     float64   `gorm:"column:left_volume;default:0" json:"left_volume"`
	RightVolume    float64   `gorm:"column:right_volume;default:0" json:"right_volume"`
	IsActive       bool      `gorm:"column:is_active;default:true" json:"is_active"`
	Level          int       `gorm:"column:level;default:0" json:"level"` // depth from root
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BinaryNode) TableName() string {
	return "binary_nodes"
}

// Rule values for PlacementRecord.Rule
const (
	PlacementRuleRequested = "requested"
	PlacementRuleSpillover = "spillover"
)

// PlacementRecord 记录每次下线放置的结果，供审计/报表模块消费
type PlacementRecord struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	NodeID            uint      `gorm:"column:node_id;not null;index" json:"node_id"`
	UserID            uint      `gorm:"column:user_id;not null" json:"user_id"`
	SponsorID         uint      `gorm:"column:sponsor_id;not null;index" json:"sponsor_id"`
	RequestedPosition string    `gorm:"column:requested_position;size:10;default:''" json:"requested_position"`
	PlacedUnderID     uint      `gorm:"column:placed_under_id;not null" json:"placed_under_id"`
	Position          string    `gorm:"column:position;size:10;not null" json:"position"`
	Rule              string    `gorm:"column:rule;size:20;not null" json:"rule"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PlacementRecord) TableName() string {
	return "placement_records"
}
