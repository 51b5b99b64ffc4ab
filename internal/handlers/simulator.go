package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"compcontrol/internal/handlers/business"
	"compcontrol/pkg/utils"
)

// SimulateRequest represents the request body for a compensation preview
type SimulateRequest struct {
	PackageID     uint    `json:"package_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	HasRobotAddon bool    `json:"has_robot_addon"`
	LeftVolume    float64 `json:"left_volume"`
	RightVolume   float64 `json:"right_volume"`
	CarryVolume   float64 `json:"carry_volume"`
}

// Simulate previews the full compensation outcome for a hypothetical
// investment without touching any state
func Simulate(c *gin.Context) {
	var request SimulateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pkg, rates, err := business.LoadPackage(request.PackageID)
	if err != nil {
		respondBusinessError(c, err)
		return
	}
	if request.Amount < pkg.MinInvestment || request.Amount > pkg.MaxInvestment {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Amount must be between %.2f and %.2f for this package",
				pkg.MinInvestment, pkg.MaxInvestment),
		})
		return
	}

	settings, err := business.LoadBinarySettings()
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	result := business.Simulate(pkg, rates, settings, business.SimulationInput{
		InvestmentAmount: request.Amount,
		HasRobotAddon:    request.HasRobotAddon,
		LeftVolume:       request.LeftVolume,
		RightVolume:      request.RightVolume,
		CarryVolume:      request.CarryVolume,
	})

	c.JSON(http.StatusOK, result)
}

// RoiProjectionRequest represents the request body for an ROI projection
type RoiProjectionRequest struct {
	Amount                float64 `json:"amount" binding:"required"`
	DailyReturnPercentage float64 `json:"daily_return_percentage" binding:"required"`
	DurationDays          int     `json:"duration_days" binding:"required"`
}

// ProjectRoi computes the daily/total return projection for arbitrary
// parameters, without requiring a stored package
func ProjectRoi(c *gin.Context) {
	var request RoiProjectionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	projection := utils.ComputeRoiProjection(request.Amount, request.DailyReturnPercentage, request.DurationDays)
	c.JSON(http.StatusOK, projection)
}
