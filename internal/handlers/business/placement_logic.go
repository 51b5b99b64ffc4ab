package business

import (
	"errors"
	"fmt"
	"sync"

	"compcontrol/internal/models"
	dbconfig "compcontrol/pkg/config"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Parent walks beyond this depth are treated as a cycle.
const maxWalkDepth = 1 << 16

// placementLocks serializes placements per tree root. Two concurrent
// placements under the same sponsor must not both win the same empty slot;
// the loser re-searches.
var placementLocks sync.Map // root node id -> *sync.Mutex

func placementLock(rootID uint) *sync.Mutex {
	mu, _ := placementLocks.LoadOrStore(rootID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// findRootID walks parent links up from nodeID to the tree root.
func findRootID(nodeID uint) (uint, error) {
	cur := nodeID
	for steps := 0; steps < maxWalkDepth; steps++ {
		var node models.BinaryNode
		if err := dbconfig.DB.First(&node, cur).Error; err != nil {
			return 0, fmt.Errorf("orphaned node %d: %w", cur, ErrInvalidTreeState)
		}
		if node.ParentID == nil {
			return node.ID, nil
		}
		cur = *node.ParentID
	}
	return 0, fmt.Errorf("parent chain of node %d exceeds max depth, cycle suspected: %w", nodeID, ErrInvalidTreeState)
}

// PlaceUser attaches newUserID to the binary tree under sponsorUserID.
//
// A non-empty requestedPosition attaches directly to that slot and fails with
// ErrSlotOccupied when taken. Otherwise spillover search runs per the
// configured placement priority; with spillover disabled (or rule "manual")
// auto placement fails with ErrPlacementDenied.
//
// sponsorUserID 0 bootstraps the root node of an empty tree.
func PlaceUser(newUserID, sponsorUserID uint, requestedPosition string) (*models.BinaryNode, error) {
	settings, err := LoadBinarySettings()
	if err != nil {
		return nil, err
	}

	var existing models.BinaryNode
	if err := dbconfig.DB.Where("user_id = ?", newUserID).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("user %d is already placed at node %d: %w", newUserID, existing.ID, ErrSlotOccupied)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("placement lookup for user %d: %w", newUserID, ErrDependencyUnavailable)
	}

	if sponsorUserID == 0 {
		return placeRoot(newUserID)
	}

	var sponsor models.BinaryNode
	if err := dbconfig.DB.Where("user_id = ?", sponsorUserID).First(&sponsor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sponsor %d has no binary node: %w", sponsorUserID, ErrInvalidTreeState)
		}
		return nil, fmt.Errorf("sponsor lookup: %w", ErrDependencyUnavailable)
	}

	rootID, err := findRootID(sponsor.ID)
	if err != nil {
		return nil, err
	}

	mu := placementLock(rootID)
	mu.Lock()
	defer mu.Unlock()

	var placed *models.BinaryNode
	var rule string

	err = dbconfig.DB.Transaction(func(tx *gorm.DB) error {
		var parent models.BinaryNode
		var position string

		if requestedPosition != "" {
			if requestedPosition != models.PositionLeft && requestedPosition != models.PositionRight {
				return fmt.Errorf("unknown requested position %q: %w", requestedPosition, ErrPlacementDenied)
			}
			// 1. manual placement: the requested slot or nothing
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&parent, sponsor.ID).Error; err != nil {
				return fmt.Errorf("lock sponsor node %d: %w", sponsor.ID, ErrInvalidTreeState)
			}
			if slotTaken(&parent, requestedPosition) {
				return fmt.Errorf("%s slot under node %d: %w", requestedPosition, parent.ID, ErrSlotOccupied)
			}
			position = requestedPosition
			rule = models.PlacementRuleRequested
		} else {
			// 2. spillover search for the nearest empty slot
			if !settings.SpilloverEnabled || settings.SpilloverRule == models.SpilloverManual {
				return fmt.Errorf("no position requested and spillover is off: %w", ErrPlacementDenied)
			}

			var nodes []models.BinaryNode
			if err := tx.Find(&nodes).Error; err != nil {
				return fmt.Errorf("load tree: %w", ErrDependencyUnavailable)
			}
			arena := NewTreeArena(nodes)

			parentID, pos, err := arena.FindSpilloverSlot(sponsor.ID, settings.PlacementPriority)
			if err != nil {
				return err
			}

			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&parent, parentID).Error; err != nil {
				return fmt.Errorf("lock parent node %d: %w", parentID, ErrInvalidTreeState)
			}
			if slotTaken(&parent, pos) {
				// lost a cross-process race; caller re-searches
				return fmt.Errorf("%s slot under node %d: %w", pos, parent.ID, ErrSlotOccupied)
			}
			position = pos
			rule = models.PlacementRuleSpillover
		}

		// 3. create the node and link it in
		node := models.BinaryNode{
			UserID:   newUserID,
			ParentID: &parent.ID,
			Position: position,
			IsActive: true,
			Level:    parent.Level + 1,
		}
		if err := tx.Create(&node).Error; err != nil {
			return err
		}

		childColumn := "left_child_id"
		if position == models.PositionRight {
			childColumn = "right_child_id"
		}
		if err := tx.Model(&parent).Update(childColumn, node.ID).Error; err != nil {
			return err
		}

		// 4. placement record for audit/reporting collaborators
		record := models.PlacementRecord{
			NodeID:            node.ID,
			UserID:            newUserID,
			SponsorID:         sponsorUserID,
			RequestedPosition: requestedPosition,
			PlacedUnderID:     parent.ID,
			Position:          position,
			Rule:              rule,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		placed = &node
		return nil
	})
	if err != nil {
		return nil, err
	}

	PublishEvent(EventNodePlaced, models.JSONMap{
		"node_id":    placed.ID,
		"user_id":    newUserID,
		"sponsor_id": sponsorUserID,
		"parent_id":  *placed.ParentID,
		"position":   placed.Position,
		"rule":       rule,
	})
	logSystem(placed.ID, "INFO", "PlacementEngine", "node placed",
		models.JSONMap{"user_id": newUserID, "rule": rule, "position": placed.Position})

	return placed, nil
}

func placeRoot(userID uint) (*models.BinaryNode, error) {
	var root *models.BinaryNode

	err := dbconfig.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.BinaryNode{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count nodes: %w", ErrDependencyUnavailable)
		}
		if count > 0 {
			return fmt.Errorf("tree already has a root: %w", ErrSlotOccupied)
		}

		node := models.BinaryNode{
			UserID:   userID,
			Position: models.PositionRoot,
			IsActive: true,
			Level:    0,
		}
		if err := tx.Create(&node).Error; err != nil {
			return err
		}

		record := models.PlacementRecord{
			NodeID:        node.ID,
			UserID:        userID,
			PlacedUnderID: node.ID,
			Position:      models.PositionRoot,
			Rule:          models.PlacementRuleRequested,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		root = &node
		return nil
	})
	if err != nil {
		return nil, err
	}

	PublishEvent(EventNodePlaced, models.JSONMap{
		"node_id":  root.ID,
		"user_id":  userID,
		"position": models.PositionRoot,
	})
	return root, nil
}

func slotTaken(node *models.BinaryNode, position string) bool {
	if position == models.PositionLeft {
		return node.LeftChildID != nil
	}
	return node.RightChildID != nil
}
