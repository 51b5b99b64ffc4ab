package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"compcontrol/internal/handlers/business"
	"compcontrol/internal/models"
	dbconfig "compcontrol/pkg/config"
)

// Sponsor chains longer than this are never walked; the level table caps at 30
const maxSponsorChainDepth = 30

// SponsorLinkRequest represents the request body for creating a sponsor link
type SponsorLinkRequest struct {
	UserID        uint `json:"user_id" binding:"required"`
	SponsorUserID uint `json:"sponsor_user_id" binding:"required"`
}

// ListSponsorLinks returns all sponsor links, optionally filtered by sponsor
func ListSponsorLinks(c *gin.Context) {
	query := dbconfig.DB.Model(&models.SponsorLink{})
	if sponsorID := c.Query("sponsor_user_id"); sponsorID != "" {
		if parsed, err := strconv.Atoi(sponsorID); err == nil {
			query = query.Where("sponsor_user_id = ?", parsed)
		}
	}

	var links []models.SponsorLink
	if err := query.Find(&links).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, links)
}

// CreateSponsorLink records who referred a user
func CreateSponsorLink(c *gin.Context) {
	var request SponsorLinkRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if request.UserID == request.SponsorUserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A user cannot sponsor themselves"})
		return
	}

	var existing models.SponsorLink
	if err := dbconfig.DB.Where("user_id = ?", request.UserID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already has a sponsor"})
		return
	}

	link := models.SponsorLink{
		UserID:        request.UserID,
		SponsorUserID: request.SponsorUserID,
	}
	if err := dbconfig.DB.Create(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, link)
}

// GetSponsorChain walks the sponsor chain upward from a user
func GetSponsorChain(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id format"})
		return
	}

	chain := make([]uint, 0, maxSponsorChainDepth)
	cur := uint(userID)
	for level := 1; level <= maxSponsorChainDepth; level++ {
		sponsor, err := business.GetSponsor(cur)
		if err != nil {
			respondBusinessError(c, err)
			return
		}
		if sponsor == 0 {
			break
		}
		chain = append(chain, sponsor)
		cur = sponsor
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"chain":   chain,
		"depth":   len(chain),
	})
}

// DeleteSponsorLink removes a sponsor link by ID
func DeleteSponsorLink(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	if err := dbconfig.DB.Delete(&models.SponsorLink{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully"})
}
