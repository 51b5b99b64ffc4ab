package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"compcontrol/internal/handlers/business"
	"compcontrol/internal/models"
	dbconfig "compcontrol/pkg/config"
)

// PlaceNodeRequest represents the request body for placing a user in the tree
type PlaceNodeRequest struct {
	UserID        uint   `json:"user_id" binding:"required"`
	SponsorUserID uint   `json:"sponsor_user_id"`
	Position      string `json:"position"` // "left", "right", or empty for spillover
}

// PlaceNode places a new user in the binary tree
func PlaceNode(c *gin.Context) {
	var request PlaceNodeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	node, err := business.PlaceUser(request.UserID, request.SponsorUserID, request.Position)
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, node)
}

// GetBinaryNode returns a specific binary node by ID
func GetBinaryNode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var node models.BinaryNode
	if err := dbconfig.DB.First(&node, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, node)
}

// GetBinaryNodeByUser returns the binary node owned by a user
func GetBinaryNodeByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id format"})
		return
	}

	var node models.BinaryNode
	if err := dbconfig.DB.Where("user_id = ?", userID).First(&node).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, node)
}

// GetSubtree returns the node and every descendant below it
func GetSubtree(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	arena, err := business.LoadTreeArena()
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	ids, err := arena.SubtreeIDs(uint(id))
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	nodes := make([]*models.BinaryNode, 0, len(ids))
	for _, nodeID := range ids {
		nodes = append(nodes, arena.Get(nodeID))
	}

	c.JSON(http.StatusOK, gin.H{
		"root_id": id,
		"count":   len(nodes),
		"nodes":   nodes,
	})
}

// CheckConsistency recomputes every leg volume and reports drift
func CheckConsistency(c *gin.Context) {
	mismatches, err := business.CheckTreeConsistency()
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"consistent": len(mismatches) == 0,
		"mismatches": mismatches,
	})
}

// ListPlacementRecords returns paginated placement records with optional filters
func ListPlacementRecords(c *gin.Context) {
	// Parse query parameters
	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	pageSize := 10
	if ps := c.Query("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}
	orderField := "id"
	if of := c.Query("order_field"); of != "" {
		valid := map[string]bool{
			"id": true, "node_id": true, "sponsor_id": true, "rule": true, "created_at": true,
		}
		if valid[of] {
			orderField = of
		}
	}
	orderType := "desc"
	if ot := c.Query("order_type"); ot == "asc" || ot == "desc" {
		orderType = ot
	}

	var query = dbconfig.DB.Model(&models.PlacementRecord{})
	// Filters
	if sponsorID := c.Query("sponsor_id"); sponsorID != "" {
		if parsed, err := strconv.Atoi(sponsorID); err == nil {
			query = query.Where("sponsor_id = ?", parsed)
		}
	}
	if rule := c.Query("rule"); rule != "" {
		query = query.Where("rule = ?", rule)
	}
	if userID := c.Query("user_id"); userID != "" {
		if parsed, err := strconv.Atoi(userID); err == nil {
			query = query.Where("user_id = ?", parsed)
		}
	}

	// Get total
	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	offset := (page - 1) * pageSize

	var records []models.PlacementRecord
	if err := query.Order(orderField + " " + orderType).
		Offset(offset).Limit(pageSize).Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	c.JSON(http.StatusOK, gin.H{
		"data": records,
		"pagination": gin.H{
			"current_page": page,
			"page_size":    pageSize,
			"total_pages":  totalPages,
			"total_count":  total,
			"has_next":     page < int(totalPages),
			"has_prev":     page > 1,
		},
	})
}
