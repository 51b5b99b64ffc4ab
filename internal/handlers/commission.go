package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"compcontrol/internal/handlers/business"
	"compcontrol/internal/models"
	dbconfig "compcontrol/pkg/config"
)

// ComputeNodeBonus runs the matching-bonus computation for one node
func ComputeNodeBonus(c *gin.Context) {
	nodeID, err := strconv.Atoi(c.Param("node_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid node_id format"})
		return
	}

	result, err := business.ComputeMatchingBonus(uint(nodeID), time.Now())
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ComputeAllBonuses runs the matching-bonus computation for every active node
func ComputeAllBonuses(c *gin.Context) {
	processed, totalPayout, failed, err := business.ComputeBonusForAllActiveNodes(time.Now())
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"processed":    processed,
		"total_payout": totalPayout,
		"failed_nodes": failed,
	})
}

// GetCarryForward returns the node's live carry-forward entry
func GetCarryForward(c *gin.Context) {
	nodeID, err := strconv.Atoi(c.Param("node_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid node_id format"})
		return
	}

	carry, err := business.GetCarryForward(uint(nodeID), time.Now())
	if err != nil {
		respondBusinessError(c, err)
		return
	}
	if carry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No live carry-forward for this node"})
		return
	}

	c.JSON(http.StatusOK, carry)
}

// ListCommissionEntries returns paginated ledger rows with optional filters
func ListCommissionEntries(c *gin.Context) {
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
			"id": true, "recipient_user_id": true, "kind": true, "amount": true, "created_at": true,
		}
		if valid[of] {
			orderField = of
		}
	}
	orderType := "desc"
	if ot := c.Query("order_type"); ot == "asc" || ot == "desc" {
		orderType = ot
	}

	var query = dbconfig.DB.Model(&models.CommissionEntry{})
	// Filters
	if recipient := c.Query("recipient_user_id"); recipient != "" {
		if parsed, err := strconv.Atoi(recipient); err == nil {
			query = query.Where("recipient_user_id = ?", parsed)
		}
	}
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if sourceEvent := c.Query("source_event"); sourceEvent != "" {
		query = query.Where("source_event = ?", sourceEvent)
	}

	// Get total
	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	offset := (page - 1) * pageSize

	var entries []models.CommissionEntry
	if err := query.Order(orderField + " " + orderType).
		Offset(offset).Limit(pageSize).Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	c.JSON(http.StatusOK, gin.H{
		"data": entries,
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

// GetPeriodCounters returns the node's current capping-window counters
func GetPeriodCounters(c *gin.Context) {
	nodeID, err := strconv.Atoi(c.Param("node_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid node_id format"})
		return
	}

	var counters []models.PeriodCounter
	if err := dbconfig.DB.Where("node_id = ?", nodeID).
		Order("granularity asc").Find(&counters).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, counters)
}
