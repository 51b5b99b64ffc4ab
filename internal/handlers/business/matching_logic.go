package business

import (
	"errors"
	"fmt"
	"time"

	"compcontrol/internal/models"
	dbconfig "compcontrol/pkg/config"
	"compcontrol/pkg/utils"

	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BonusResult is the outcome of one matching-bonus computation for one node.
type BonusResult struct {
	NodeID          uint    `json:"node_id"`
	AvailableLesser float64 `json:"available_lesser"`
	RawBonus        float64 `json:"raw_bonus"`
	Payout          float64 `json:"payout"`
	ResidualVolume  float64 `json:"residual_volume"`
	CarriedForward  bool    `json:"carried_forward"`
	Capped          bool    `json:"capped"`
	SourceEvent     string  `json:"source_event"`
}

// capHeadrooms returns the remaining room under each enabled capping window.
// A cap of 0 means the window is disabled. Pure; the simulator reuses it with
// zero accumulated payouts.
func capHeadrooms(settings *models.BinarySettings, dayUsed, weekUsed, monthUsed float64) []float64 {
	if !settings.CappingEnabled {
		return nil
	}
	var rooms []float64
	if settings.DailyCap > 0 {
		rooms = append(rooms, settings.DailyCap-dayUsed)
	}
	if settings.WeeklyCap > 0 {
		rooms = append(rooms, settings.WeeklyCap-weekUsed)
	}
	if settings.MonthlyCap > 0 {
		rooms = append(rooms, settings.MonthlyCap-monthUsed)
	}
	return rooms
}

// refreshCounter zeroes a counter in place when now has crossed the counter's
// period boundary, and reports whether it did. Pure.
func refreshCounter(counter *models.PeriodCounter, now time.Time) bool {
	if utils.SamePeriod(counter.PeriodStart, now, counter.Granularity) {
		return false
	}
	counter.AccumulatedPayout = 0
	counter.PeriodStart = utils.PeriodStart(now, counter.Granularity)
	return true
}

// liveCarryVolume returns the volume a stored carry-forward entry contributes
// at now. Expired entries contribute nothing and must be dropped. Pure.
func liveCarryVolume(carry *models.CarryForwardEntry, now time.Time) (volume float64, expired bool) {
	if now.After(carry.ExpiresAt) {
		return 0, true
	}
	return carry.ResidualVolume, false
}

// ensurePeriodCounter loads (FOR UPDATE) the node's counter for one window,
// creating it lazily and resetting it in place when the wall-clock boundary
// has passed. Must run inside the computation's transaction so the cap
// check-and-increment stays a single atomic read-modify-write.
func ensurePeriodCounter(tx *gorm.DB, nodeID uint, granularity string, now time.Time) (*models.PeriodCounter, error) {
	var counter models.PeriodCounter
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("node_id = ? AND granularity = ?", nodeID, granularity).
		First(&counter).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = models.PeriodCounter{
			NodeID:      nodeID,
			Granularity: granularity,
			PeriodStart: utils.PeriodStart(now, granularity),
		}
		if err := tx.Create(&counter).Error; err != nil {
			return nil, err
		}
		return &counter, nil
	}
	if err != nil {
		return nil, err
	}

	if refreshCounter(&counter, now) {
		if err := tx.Save(&counter).Error; err != nil {
			return nil, err
		}
	}
	return &counter, nil
}

// ComputeMatchingBonus runs one matching-bonus computation for one node.
//
// Lesser-leg volume plus unexpired carry-forward is matched at the configured
// percentage, clamped to the minimum remaining headroom across enabled cap
// windows. The unpaid part is carried forward (replacing any prior entry) or
// flushed. Leg volumes themselves stay untouched; only the period counters
// record what has been paid.
func ComputeMatchingBonus(nodeID uint, now time.Time) (*BonusResult, error) {
	settings, err := LoadBinarySettings()
	if err != nil {
		return nil, err
	}

	result := &BonusResult{NodeID: nodeID, SourceEvent: uuid.NewString()}
	var recipientUserID uint
	var nodeActive bool

	err = dbconfig.DB.Transaction(func(tx *gorm.DB) error {
		// 1. lock the node; per-node computations serialize here
		var node models.BinaryNode
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&node, nodeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("node %d not found: %w", nodeID, ErrInvalidTreeState)
			}
			return fmt.Errorf("lock node %d: %w", nodeID, ErrDependencyUnavailable)
		}
		recipientUserID = node.UserID

		if !node.IsActive {
			return nil
		}
		nodeActive = true

		// 2. refresh period counters before any headroom is read
		day, err := ensurePeriodCounter(tx, nodeID, models.PeriodDay, now)
		if err != nil {
			return err
		}
		week, err := ensurePeriodCounter(tx, nodeID, models.PeriodWeek, now)
		if err != nil {
			return err
		}
		month, err := ensurePeriodCounter(tx, nodeID, models.PeriodMonth, now)
		if err != nil {
			return err
		}

		// 3. consume unexpired carry-forward; expired entries drop silently
		var carryVolume float64
		var carry models.CarryForwardEntry
		carryErr := tx.Where("node_id = ?", nodeID).First(&carry).Error
		haveCarry := carryErr == nil
		if carryErr != nil && !errors.Is(carryErr, gorm.ErrRecordNotFound) {
			return carryErr
		}
		if haveCarry {
			volume, expired := liveCarryVolume(&carry, now)
			if expired {
				if err := tx.Delete(&carry).Error; err != nil {
					return err
				}
				haveCarry = false
			} else {
				carryVolume = volume
			}
		}

		// 4. pure computation, shared with the simulator
		rooms := capHeadrooms(settings, day.AccumulatedPayout, week.AccumulatedPayout, month.AccumulatedPayout)
		calc := utils.ComputeMatchingPayout(node.LeftVolume, node.RightVolume, carryVolume,
			settings.MatchingBonusPercentage, settings.CappingEnabled, rooms...)

		result.AvailableLesser = calc.AvailableLesser
		result.RawBonus = calc.RawBonus
		result.Payout = calc.Payout
		result.ResidualVolume = calc.ResidualVolume
		result.Capped = calc.Capped

		// 5. carry the residual forward or flush it
		lesserLeg := models.PositionLeft
		if node.RightVolume < node.LeftVolume {
			lesserLeg = models.PositionRight
		}
		if settings.CarryForwardEnabled && calc.ResidualVolume > 0 {
			if haveCarry {
				if err := tx.Delete(&carry).Error; err != nil {
					return err
				}
			}
			entry := models.CarryForwardEntry{
				NodeID:         nodeID,
				Leg:            lesserLeg,
				ResidualVolume: calc.ResidualVolume,
				CreatedAt:      now,
				ExpiresAt:      now.AddDate(0, 0, settings.MaxCarryForwardDays),
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			result.CarriedForward = true
		} else if haveCarry {
			// consumed (or flushed, with carry-forward disabled)
			if err := tx.Delete(&carry).Error; err != nil {
				return err
			}
		}

		// 6. single atomic check-and-increment of all counters
		if calc.Payout > 0 {
			for _, counter := range []*models.PeriodCounter{day, week, month} {
				counter.AccumulatedPayout += calc.Payout
				if err := tx.Save(counter).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	emitBonusOutcome(nodeID, nodeActive, recipientUserID, result)
	return result, nil
}

// emitBonusOutcome appends the ledger row and publishes bonus.computed,
// outside the computation's transaction: fire-and-forget. Inactive nodes
// were skipped by the computation and stay silent on the event stream.
func emitBonusOutcome(nodeID uint, active bool, recipientUserID uint, result *BonusResult) {
	if !active {
		return
	}

	if result.Payout > 0 {
		entry := models.CommissionEntry{
			RecipientUserID: recipientUserID,
			Kind:            models.CommissionMatchingBonus,
			Amount:          result.Payout,
			SourceEvent:     result.SourceEvent,
			Meta: models.JSONMap{
				"node_id":          nodeID,
				"available_lesser": result.AvailableLesser,
				"raw_bonus":        result.RawBonus,
				"capped":           result.Capped,
				"carried_forward":  result.CarriedForward,
			},
		}
		if err := AppendCommission(&entry); err != nil {
			logrus.Warnf("Matching bonus for node %d computed but ledger append failed: %v", nodeID, err)
		}
		logSystem(nodeID, "INFO", "MatchingBonusCalculator", "bonus computed", models.JSONMap{
			"payout":          result.Payout,
			"capped":          result.Capped,
			"carried_forward": result.CarriedForward,
			"source_event":    result.SourceEvent,
		})
	}

	PublishEvent(EventBonusComputed, models.JSONMap{
		"node_id":         nodeID,
		"payout":          result.Payout,
		"residual_volume": result.ResidualVolume,
		"carried_forward": result.CarriedForward,
		"source_event":    result.SourceEvent,
	})
}

// ComputeBonusForAllActiveNodes runs the matching computation for every
// active node, batched to keep memory flat. A failed node is reported and
// skipped; it never blocks the rest of the close.
func ComputeBonusForAllActiveNodes(now time.Time) (processed int, totalPayout float64, failed []uint, err error) {
	const batchSize = 200
	var batch []models.BinaryNode

	err = dbconfig.DB.Where("is_active = ?", true).Order("id asc").
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, batchNum int) error {
			for i := range batch {
				result, computeErr := ComputeMatchingBonus(batch[i].ID, now)
				if computeErr != nil {
					logrus.Errorf("Bonus computation failed for node %d: %v", batch[i].ID, computeErr)
					failed = append(failed, batch[i].ID)
					continue
				}
				processed++
				totalPayout += result.Payout
			}
			return nil
		}).Error

	return processed, totalPayout, failed, err
}

// GetCarryForward returns the node's live carry-forward entry, nil when none
// exists or it already expired.
func GetCarryForward(nodeID uint, now time.Time) (*models.CarryForwardEntry, error) {
	var carry models.CarryForwardEntry
	err := dbconfig.DB.Where("node_id = ?", nodeID).First(&carry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load carry-forward for node %d: %w", nodeID, ErrDependencyUnavailable)
	}
	if now.After(carry.ExpiresAt) {
		return nil, nil
	}
	return &carry, nil
}
