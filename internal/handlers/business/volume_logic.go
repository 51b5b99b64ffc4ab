package business

import (
	"errors"
	"fmt"

	"compcontrol/internal/models"
	dbconfig "compcontrol/pkg/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordInvestment adds amount to the node's personal volume and rolls the
// amount up every ancestor's facing leg. The whole ancestor path updates in
// one transaction: either every ancestor sees the amount or none does.
// Rows lock child-before-parent, so concurrent investments into siblings
// serialize only at their shared ancestors. No cap is applied here.
func RecordInvestment(nodeID, userID, packageID uint, amount float64, hasRobotAddon bool) (*models.InvestmentRecord, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("investment amount must be positive: %w", ErrInvalidConfiguration)
	}

	record := models.InvestmentRecord{
		NodeID:        nodeID,
		UserID:        userID,
		PackageID:     packageID,
		Amount:        amount,
		HasRobotAddon: hasRobotAddon,
		SourceEvent:   uuid.NewString(),
	}

	err := dbconfig.DB.Transaction(func(tx *gorm.DB) error {
		// 1. lock and credit the investing node
		var node models.BinaryNode
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&node, nodeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("node %d not found: %w", nodeID, ErrInvalidTreeState)
			}
			return fmt.Errorf("lock node %d: %w", nodeID, ErrDependencyUnavailable)
		}
		if err := tx.Model(&node).
			Update("personal_volume", gorm.Expr("personal_volume + ?", amount)).Error; err != nil {
			return err
		}

		// 2. walk the parent chain to the root, crediting the facing leg
		childID := node.ID
		parentID := node.ParentID
		for steps := 0; parentID != nil; steps++ {
			if steps >= maxWalkDepth {
				return fmt.Errorf("ancestor path of node %d exceeds max depth, cycle suspected: %w", nodeID, ErrInvalidTreeState)
			}

			var parent models.BinaryNode
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&parent, *parentID).Error; err != nil {
				return fmt.Errorf("dangling parent reference %d: %w", *parentID, ErrInvalidTreeState)
			}

			var legColumn string
			switch {
			case parent.LeftChildID != nil && *parent.LeftChildID == childID:
				legColumn = "left_volume"
			case parent.RightChildID != nil && *parent.RightChildID == childID:
				legColumn = "right_volume"
			default:
				return fmt.Errorf("node %d is not linked as a child of %d: %w", childID, parent.ID, ErrInvalidTreeState)
			}

			if err := tx.Model(&parent).
				Update(legColumn, gorm.Expr(legColumn+" + ?", amount)).Error; err != nil {
				return err
			}

			childID = parent.ID
			parentID = parent.ParentID
		}

		// 3. investment record is part of the same atomic event
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}

	PublishEvent(EventInvestmentRecorded, models.JSONMap{
		"node_id":      nodeID,
		"user_id":      userID,
		"package_id":   packageID,
		"amount":       amount,
		"source_event": record.SourceEvent,
	})

	return &record, nil
}
