package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"compcontrol/internal/models"
	dbconfig "compcontrol/pkg/config"
)

// CreateSystemLogRequest represents the request payload for creating a system log
type CreateSystemLogRequest struct {
	NodeID     *uint           `json:"node_id"`
	Level      string          `json:"level" binding:"required"`   // DEBUG, INFO, WARN, ERROR, FATAL
	Message    string          `json:"message" binding:"required"` // log body
	Module     string          `json:"module"`                     // e.g. "PlacementEngine", "MatchingBonus"
	ErrorStack string          `json:"error_stack"`
	Meta       json.RawMessage `json:"meta"` // optional json payload
}

// ListSystemLogs returns paginated system logs with optional filters
func ListSystemLogs(c *gin.Context) {
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
			"id": true, "node_id": true, "level": true, "created_at": true,
		}
		if valid[of] {
			orderField = of
		}
	}
	orderType := "desc"
	if ot := c.Query("order_type"); ot == "asc" || ot == "desc" {
		orderType = ot
	}

	var query = dbconfig.DB.Model(&models.SystemLog{})
	// Filters
	if level := c.Query("level"); level != "" {
		query = query.Where("level = ?", level)
	}
	if module := c.Query("module"); module != "" {
		query = query.Where("module = ?", module)
	}
	if nid := c.Query("node_id"); nid != "" {
		if parsed, err := strconv.Atoi(nid); err == nil {
			query = query.Where("node_id = ?", parsed)
		}
	}

	// Get total
	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	offset := (page - 1) * pageSize

	var logs []models.SystemLog
	if err := query.Order(orderField + " " + orderType).
		Offset(offset).Limit(pageSize).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	c.JSON(http.StatusOK, gin.H{
		"data": logs,
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

// GetSystemLog returns a specific system log by ID
func GetSystemLog(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	var log models.SystemLog
	if err := dbconfig.DB.First(&log, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, log)
}

// CreateSystemLog creates a new system log
func CreateSystemLog(c *gin.Context) {
	var req CreateSystemLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var metaMap map[string]interface{}
	if len(req.Meta) > 0 {
		_ = json.Unmarshal(req.Meta, &metaMap)
	}

	nodeID := uint(0)
	if req.NodeID != nil {
		nodeID = *req.NodeID
	}

	log := models.SystemLog{
		NodeID:     nodeID,
		Level:      req.Level,
		Message:    req.Message,
		Module:     req.Module,
		ErrorStack: req.ErrorStack,
		Meta:       models.JSONMap(metaMap),
	}

	if err := dbconfig.DB.Create(&log).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, log)
}

// DeleteSystemLog deletes a system log by ID
func DeleteSystemLog(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	if err := dbconfig.DB.Delete(&models.SystemLog{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "System log deleted successfully"})
}

// ListSystemLogsByNode lists logs filtered by node_id with pagination
func ListSystemLogsByNode(c *gin.Context) {
	nodeID, err := strconv.Atoi(c.Param("node_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid node_id format"})
		return
	}

	// Reuse pagination/order query params
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
			"id": true, "node_id": true, "level": true, "created_at": true,
		}
		if valid[of] {
			orderField = of
		}
	}
	orderType := "desc"
	if ot := c.Query("order_type"); ot == "asc" || ot == "desc" {
		orderType = ot
	}

	var query = dbconfig.DB.Model(&models.SystemLog{}).Where("node_id = ?", nodeID)
	// Optional filters still allowed
	if level := c.Query("level"); level != "" {
		query = query.Where("level = ?", level)
	}
	if module := c.Query("module"); module != "" {
		query = query.Where("module = ?", module)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	offset := (page - 1) * pageSize
	var logs []models.SystemLog
	if err := query.Order(orderField + " " + orderType).
		Offset(offset).Limit(pageSize).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	c.JSON(http.StatusOK, gin.H{
		"data": logs,
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
