package business

import (
	"errors"
	"fmt"

	"compcontrol/internal/models"
	dbconfig "compcontrol/pkg/config"

	"gorm.io/gorm"
)

// LoadTreeArena reads the whole node table into a flat arena.
func LoadTreeArena() (*TreeArena, error) {
	var nodes []models.BinaryNode
	if err := dbconfig.DB.Find(&nodes).Error; err != nil {
		return nil, fmt.Errorf("load tree: %w", ErrDependencyUnavailable)
	}
	return NewTreeArena(nodes), nil
}

// GetNodeByUser returns the node owned by userID.
func GetNodeByUser(userID uint) (*models.BinaryNode, error) {
	var node models.BinaryNode
	err := dbconfig.DB.Where("user_id = ?", userID).First(&node).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %d has no binary node: %w", userID, ErrInvalidTreeState)
	}
	if err != nil {
		return nil, fmt.Errorf("load node for user %d: %w", userID, ErrDependencyUnavailable)
	}
	return &node, nil
}

// CheckTreeConsistency recomputes leg volumes for every stored node and
// reports drift between the stored aggregates and the subtree sums.
func CheckTreeConsistency() ([]VolumeMismatch, error) {
	arena, err := LoadTreeArena()
	if err != nil {
		return nil, err
	}
	return arena.CheckVolumeConsistency()
}
