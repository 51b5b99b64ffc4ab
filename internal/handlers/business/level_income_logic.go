package business

import (
	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"

	"compcontrol/internal/models"
	"compcontrol/pkg/utils"
)

// LevelResult is one row of the level-income breakdown, enriched with the
// sponsor-chain recipient. Locked and undisbursed rows still appear so the
// preview table stays transparent.
type LevelResult struct {
	utils.LevelRow
	RecipientUserID uint `json:"recipient_user_id"` // 0 when the chain is shorter than the level
	Disbursed       bool `json:"disbursed"`
}

// LevelIncomeOutcome aggregates one investment's unilevel computation.
type LevelIncomeOutcome struct {
	Levels           []LevelResult `json:"levels"`
	TotalLevelIncome float64       `json:"total_level_income"`
	DirectCommission float64       `json:"direct_commission"`
	ActiveLevels     int           `json:"active_levels"`
	SourceEvent      string        `json:"source_event"`
}

// sponsorChain resolves the ancestors up to maxLevels hops above userID on
// the sponsor chain. Index i holds the level i+1 recipient; the slice is
// short when the chain ends early.
func sponsorChain(userID uint, maxLevels int) ([]uint, error) {
	chain := make([]uint, 0, maxLevels)
	cur := userID
	for level := 1; level <= maxLevels; level++ {
		sponsor, err := GetSponsor(cur)
		if err != nil {
			return nil, err
		}
		if sponsor == 0 {
			break
		}
		chain = append(chain, sponsor)
		cur = sponsor
	}
	return chain, nil
}

// ComputeLevelIncome computes unilevel commissions for one investment along
// the investor's sponsor chain. Active levels depend on the robot addon
// (otherwise capped at 5); every level of the package still appears in the
// result with a running cumulative. Levels with no recipient are shown but
// not disbursed. The immediate sponsor additionally receives the direct
// commission.
func ComputeLevelIncome(investorUserID uint, investmentAmount float64, pkg *models.PackageConfig,
	rates []float64, hasRobotAddon bool, sourceEvent string) (*LevelIncomeOutcome, error) {

	if sourceEvent == "" {
		sourceEvent = uuid.NewString()
	}

	activeLevels := utils.ActiveLevels(pkg.LevelDepth, hasRobotAddon)
	rows, totalActive := utils.ComputeLevelBreakdown(investmentAmount, rates, activeLevels)

	chain, err := sponsorChain(investorUserID, len(rows))
	if err != nil {
		return nil, err
	}

	outcome := &LevelIncomeOutcome{
		Levels:           make([]LevelResult, 0, len(rows)),
		TotalLevelIncome: totalActive,
		ActiveLevels:     activeLevels,
		SourceEvent:      sourceEvent,
	}

	for i, row := range rows {
		result := LevelResult{LevelRow: row}
		if i < len(chain) {
			result.RecipientUserID = chain[i]
		}

		// disburse active levels that have a recipient
		if row.Status == utils.LevelStatusActive && result.RecipientUserID != 0 && row.Amount > 0 {
			entry := models.CommissionEntry{
				RecipientUserID: result.RecipientUserID,
				Kind:            models.CommissionLevelIncome,
				Level:           row.Level,
				Amount:          row.Amount,
				SourceEvent:     sourceEvent,
				Meta: models.JSONMap{
					"investor_user_id": investorUserID,
					"package_id":       pkg.ID,
					"percentage":       row.Percentage,
				},
			}
			if err := AppendCommission(&entry); err != nil {
				logrus.Warnf("Level %d income for user %d not appended: %v", row.Level, result.RecipientUserID, err)
			} else {
				result.Disbursed = true
			}
		}

		outcome.Levels = append(outcome.Levels, result)
	}

	// direct commission goes to the immediate sponsor only
	outcome.DirectCommission = utils.ComputeDirectCommission(investmentAmount, pkg.DirectCommissionPercentage)
	if len(chain) > 0 && outcome.DirectCommission > 0 {
		entry := models.CommissionEntry{
			RecipientUserID: chain[0],
			Kind:            models.CommissionDirectCommission,
			Amount:          outcome.DirectCommission,
			SourceEvent:     sourceEvent,
			Meta: models.JSONMap{
				"investor_user_id": investorUserID,
				"package_id":       pkg.ID,
				"percentage":       pkg.DirectCommissionPercentage,
			},
		}
		if err := AppendCommission(&entry); err != nil {
			logrus.Warnf("Direct commission for user %d not appended: %v", chain[0], err)
		}
	}

	return outcome, nil
}
