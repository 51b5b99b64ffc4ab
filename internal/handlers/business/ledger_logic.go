package business

import (
	"compcontrol/internal/models"
	dbconfig "compcontrol/pkg/config"

	logrus "github.com/sirupsen/logrus"
)

// AppendCommission writes one ledger row. Appends are fire-and-forget from
// the engines' perspective: a failure is logged and reported, the engines do
// not retry (the ledger collaborator owns retries).
func AppendCommission(entry *models.CommissionEntry) error {
	if err := dbconfig.DB.Create(entry).Error; err != nil {
		logrus.Errorf("Failed to append commission entry (recipient %d, kind %s): %v",
			entry.RecipientUserID, entry.Kind, err)
		return err
	}
	return nil
}

// logSystem appends an audit row; failures are swallowed so audit logging
// can never break a computation.
func logSystem(nodeID uint, level, module, message string, meta models.JSONMap) {
	entry := models.SystemLog{
		NodeID:  nodeID,
		Level:   level,
		Message: message,
		Module:  module,
		Meta:    meta,
	}
	if err := dbconfig.DB.Create(&entry).Error; err != nil {
		logrus.Warnf("Failed to write system log (%s/%s): %v", module, level, err)
	}
}
