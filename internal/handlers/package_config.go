package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"compcontrol/internal/models"
	dbconfig "compcontrol/pkg/config"
)

// PackageLevelRateRequest is one row of the per-level percentage table
type PackageLevelRateRequest struct {
	Level      int     `json:"level" binding:"required"`
	Percentage float64 `json:"percentage"`
}

// PackageConfigRequest represents the request body for creating/updating a package
type PackageConfigRequest struct {
	Name                       string                    `json:"name" binding:"required"`
	MinInvestment              float64                   `json:"min_investment" binding:"required"`
	MaxInvestment              float64                   `json:"max_investment" binding:"required"`
	DailyReturnPercentage      float64                   `json:"daily_return_percentage"`
	DurationDays               int                       `json:"duration_days"`
	DirectCommissionPercentage float64                   `json:"direct_commission_percentage"`
	BinaryBonusPercentage      float64                   `json:"binary_bonus_percentage"`
	LevelDepth                 int                       `json:"level_depth" binding:"required"`
	IsActive                   *bool                     `json:"is_active"`
	LevelRates                 []PackageLevelRateRequest `json:"level_rates" binding:"required"`
}

func validatePackageRequest(req *PackageConfigRequest) string {
	if req.MinInvestment > req.MaxInvestment {
		return "min_investment must not exceed max_investment"
	}
	if req.LevelDepth < 1 || req.LevelDepth > 30 {
		return "level_depth must be between 1 and 30"
	}
	if len(req.LevelRates) != req.LevelDepth {
		return "level_rates must have exactly level_depth rows"
	}
	// Levels must be the contiguous range 1..level_depth
	seen := make(map[int]bool, len(req.LevelRates))
	for _, lr := range req.LevelRates {
		if lr.Level < 1 || lr.Level > req.LevelDepth {
			return "level_rates contains a level outside 1..level_depth"
		}
		if lr.Percentage < 0 || lr.Percentage > 100 {
			return "level_rates percentage must be in [0,100]"
		}
		if seen[lr.Level] {
			return "level_rates contains a duplicate level"
		}
		seen[lr.Level] = true
	}
	return ""
}

// ListPackageConfigs returns a list of all investment packages
func ListPackageConfigs(c *gin.Context) {
	var packages []models.PackageConfig
	query := dbconfig.DB.Preload("LevelRates", func(db *gorm.DB) *gorm.DB {
		return db.Order("level asc")
	})
	if isActive := c.Query("is_active"); isActive != "" {
		if parsed, err := strconv.ParseBool(isActive); err == nil {
			query = query.Where("is_active = ?", parsed)
		}
	}
	if err := query.Find(&packages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, packages)
}

// GetPackageConfig returns a specific package by ID
func GetPackageConfig(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var pkg models.PackageConfig
	if err := dbconfig.DB.Preload("LevelRates", func(db *gorm.DB) *gorm.DB {
		return db.Order("level asc")
	}).First(&pkg, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// CreatePackageConfig creates a new investment package with its level table
func CreatePackageConfig(c *gin.Context) {
	var request PackageConfigRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if msg := validatePackageRequest(&request); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	isActive := true
	if request.IsActive != nil {
		isActive = *request.IsActive
	}

	pkg := models.PackageConfig{
		Name:                       request.Name,
		MinInvestment:              request.MinInvestment,
		MaxInvestment:              request.MaxInvestment,
		DailyReturnPercentage:      request.DailyReturnPercentage,
		DurationDays:               request.DurationDays,
		DirectCommissionPercentage: request.DirectCommissionPercentage,
		BinaryBonusPercentage:      request.BinaryBonusPercentage,
		LevelDepth:                 request.LevelDepth,
		IsActive:                   isActive,
	}
	for _, lr := range request.LevelRates {
		pkg.LevelRates = append(pkg.LevelRates, models.PackageLevelRate{
			Level:      lr.Level,
			Percentage: lr.Percentage,
		})
	}

	if err := dbconfig.DB.Create(&pkg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

// UpdatePackageConfig updates an existing package and replaces its level table
func UpdatePackageConfig(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request PackageConfigRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if msg := validatePackageRequest(&request); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var pkg models.PackageConfig
	if err := dbconfig.DB.First(&pkg, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	pkg.Name = request.Name
	pkg.MinInvestment = request.MinInvestment
	pkg.MaxInvestment = request.MaxInvestment
	pkg.DailyReturnPercentage = request.DailyReturnPercentage
	pkg.DurationDays = request.DurationDays
	pkg.DirectCommissionPercentage = request.DirectCommissionPercentage
	pkg.BinaryBonusPercentage = request.BinaryBonusPercentage
	pkg.LevelDepth = request.LevelDepth
	if request.IsActive != nil {
		pkg.IsActive = *request.IsActive
	}

	// Package row and level table change together or not at all
	err = dbconfig.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&pkg).Error; err != nil {
			return err
		}
		if err := tx.Where("package_id = ?", pkg.ID).Delete(&models.PackageLevelRate{}).Error; err != nil {
			return err
		}
		for _, lr := range request.LevelRates {
			rate := models.PackageLevelRate{
				PackageID:  pkg.ID,
				Level:      lr.Level,
				Percentage: lr.Percentage,
			}
			if err := tx.Create(&rate).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Reload with the fresh level table
	if err := dbconfig.DB.Preload("LevelRates", func(db *gorm.DB) *gorm.DB {
		return db.Order("level asc")
	}).First(&pkg, pkg.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load updated package"})
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// DeletePackageConfig deletes a package and its level table
func DeletePackageConfig(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	err = dbconfig.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", id).Delete(&models.PackageLevelRate{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PackageConfig{}, id).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully"})
}
