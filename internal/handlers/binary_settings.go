package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"compcontrol/internal/handlers/business"
	"compcontrol/internal/models"
	dbconfig "compcontrol/pkg/config"
)

// UpdateBinarySettingsRequest represents the request body for updating the
// singleton binary settings row. All fields are mandatory so a partial update
// can never leave the row half-configured.
type UpdateBinarySettingsRequest struct {
	SpilloverEnabled        *bool   `json:"spillover_enabled" binding:"required"`
	SpilloverRule           string  `json:"spillover_rule" binding:"required"`
	PlacementPriority       string  `json:"placement_priority" binding:"required"`
	CappingEnabled          *bool   `json:"capping_enabled" binding:"required"`
	DailyCap                float64 `json:"daily_cap"`
	WeeklyCap               float64 `json:"weekly_cap"`
	MonthlyCap              float64 `json:"monthly_cap"`
	MatchingBonusPercentage float64 `json:"matching_bonus_percentage"`
	CarryForwardEnabled     *bool   `json:"carry_forward_enabled" binding:"required"`
	MaxCarryForwardDays     int     `json:"max_carry_forward_days"`
}

// GetBinarySettings returns the singleton settings row, creating the default
// row on first access
func GetBinarySettings(c *gin.Context) {
	settings, err := business.LoadBinarySettings()
	if err != nil {
		respondBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateBinarySettings replaces the singleton settings row after validation
func UpdateBinarySettings(c *gin.Context) {
	var request UpdateBinarySettingsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := business.LoadBinarySettings()
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	settings.SpilloverEnabled = *request.SpilloverEnabled
	settings.SpilloverRule = request.SpilloverRule
	settings.PlacementPriority = request.PlacementPriority
	settings.CappingEnabled = *request.CappingEnabled
	settings.DailyCap = request.DailyCap
	settings.WeeklyCap = request.WeeklyCap
	settings.MonthlyCap = request.MonthlyCap
	settings.MatchingBonusPercentage = request.MatchingBonusPercentage
	settings.CarryForwardEnabled = *request.CarryForwardEnabled
	settings.MaxCarryForwardDays = request.MaxCarryForwardDays

	// Reject invalid settings before they can reach the engines
	if err := business.ValidateBinarySettings(settings); err != nil {
		respondBusinessError(c, err)
		return
	}

	if err := dbconfig.DB.Save(settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Audit trail: settings changes affect every subsequent computation.
	// A failed audit write never fails the update itself.
	dbconfig.DB.Create(&models.SystemLog{
		Level:   "INFO",
		Module:  "BinarySettings",
		Message: "binary settings updated",
		Meta: models.JSONMap{
			"placement_priority":        settings.PlacementPriority,
			"capping_enabled":           settings.CappingEnabled,
			"matching_bonus_percentage": settings.MatchingBonusPercentage,
			"carry_forward_enabled":     settings.CarryForwardEnabled,
		},
	})

	c.JSON(http.StatusOK, settings)
}
