package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"compcontrol/internal/handlers/business"
	"compcontrol/internal/models"
	dbconfig "compcontrol/pkg/config"
)

// CreateInvestmentRequest represents the request body for recording an investment
type CreateInvestmentRequest struct {
	UserID        uint    `json:"user_id" binding:"required"`
	PackageID     uint    `json:"package_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	HasRobotAddon bool    `json:"has_robot_addon"`
}

// CreateInvestment records an investment, rolls volume up the tree and
// disburses level income along the sponsor chain. The matching-bonus
// computation itself is deferred to the worker via the compute queue.
func CreateInvestment(c *gin.Context) {
	var request CreateInvestmentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 1. the investor must already hold a tree slot
	node, err := business.GetNodeByUser(request.UserID)
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	// 2. the amount must fit the package bounds
	pkg, rates, err := business.LoadPackage(request.PackageID)
	if err != nil {
		respondBusinessError(c, err)
		return
	}
	if !pkg.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Package is not active"})
		return
	}
	if request.Amount < pkg.MinInvestment || request.Amount > pkg.MaxInvestment {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Amount must be between %.2f and %.2f for this package",
				pkg.MinInvestment, pkg.MaxInvestment),
		})
		return
	}

	// 3. atomic volume roll-up
	record, err := business.RecordInvestment(node.ID, request.UserID, request.PackageID,
		request.Amount, request.HasRobotAddon)
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	// 4. level income along the sponsor chain
	levelOutcome, err := business.ComputeLevelIncome(request.UserID, request.Amount,
		pkg, rates, request.HasRobotAddon, record.SourceEvent)
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	// 5. queue the matching-bonus computation for the worker
	if dbconfig.RabbitMQ != nil {
		go func(nodeID uint) {
			publisher, err := dbconfig.NewPublisher()
			if err != nil {
				log.Errorf("Failed to create compute publisher: %v", err)
				return
			}
			defer publisher.Close()

			if err := publisher.Publish(business.ComputeQueue, business.ComputeRequest{NodeID: nodeID}); err != nil {
				log.Errorf("Failed to queue bonus computation for node %d: %v", nodeID, err)
			}
		}(node.ID)
	}

	c.JSON(http.StatusCreated, gin.H{
		"investment":   record,
		"level_income": levelOutcome,
	})
}

// ListInvestments returns paginated investment records with optional filters
func ListInvestments(c *gin.Context) {
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
			"id": true, "node_id": true, "user_id": true, "amount": true, "created_at": true,
		}
		if valid[of] {
			orderField = of
		}
	}
	orderType := "desc"
	if ot := c.Query("order_type"); ot == "asc" || ot == "desc" {
		orderType = ot
	}

	var query = dbconfig.DB.Model(&models.InvestmentRecord{})
	// Filters
	if nodeID := c.Query("node_id"); nodeID != "" {
		if parsed, err := strconv.Atoi(nodeID); err == nil {
			query = query.Where("node_id = ?", parsed)
		}
	}
	if userID := c.Query("user_id"); userID != "" {
		if parsed, err := strconv.Atoi(userID); err == nil {
			query = query.Where("user_id = ?", parsed)
		}
	}
	if packageID := c.Query("package_id"); packageID != "" {
		if parsed, err := strconv.Atoi(packageID); err == nil {
			query = query.Where("package_id = ?", parsed)
		}
	}

	// Get total
	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	offset := (page - 1) * pageSize

	var records []models.InvestmentRecord
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
