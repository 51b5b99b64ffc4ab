package main

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	logrus "github.com/sirupsen/logrus"

	"compcontrol/internal/handlers/business"
	"compcontrol/pkg/config"
)

const (
	maxErrorCount = 3 // Maximum consecutive failures before a node is skipped
)

var (
	// errorCounts tracks consecutive computation failures per node
	errorCounts   = make(map[uint]int)
	errorCountsMu sync.RWMutex
)

func main() {
	// Initialize logger
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	config.InitDB()

	// Initialize RabbitMQ
	config.InitRabbitMQ()
	defer config.RabbitMQ.Close()

	// Create consumer for the commission compute queue
	msgConsumer, err := config.NewConsumer(business.ComputeQueue)
	if err != nil {
		logrus.Fatal("Failed to create consumer: ", err)
	}
	defer msgConsumer.Close()

	logrus.Info("Commission compute worker started, waiting for messages...")

	// Start consuming messages
	err = msgConsumer.Consume(func(msg []byte) error {
		var request business.ComputeRequest
		if err := json.Unmarshal(msg, &request); err != nil {
			logrus.Errorf("Failed to unmarshal message: %v", err)
			return err
		}

		logrus.Infof("Received compute request for node %d", request.NodeID)

		result, err := business.ComputeMatchingBonus(request.NodeID, time.Now())
		if err != nil {
			logrus.Errorf("Failed to compute matching bonus for node %d: %v", request.NodeID, err)

			// Increment error count and check if we should drop the message
			count := incrementErrorCount(request.NodeID)
			if count >= maxErrorCount {
				logrus.Warnf("Skipping node %d after %d consecutive failures", request.NodeID, count)
				resetErrorCount(request.NodeID)
				// Ack by returning nil so the message stops requeueing
				return nil
			}
			return err
		}

		resetErrorCount(request.NodeID)
		logrus.WithFields(logrus.Fields{
			"node_id":          result.NodeID,
			"available_lesser": result.AvailableLesser,
			"payout":           result.Payout,
			"residual_volume":  result.ResidualVolume,
			"carried_forward":  result.CarriedForward,
			"capped":           result.Capped,
		}).Info("Matching bonus computed")

		return nil
	})

	if err != nil {
		log.Fatal("Failed to start consumer: ", err)
	}
}

// incrementErrorCount increments the consecutive failure count for a node
func incrementErrorCount(nodeID uint) int {
	errorCountsMu.Lock()
	defer errorCountsMu.Unlock()

	errorCounts[nodeID]++
	count := errorCounts[nodeID]
	logrus.Warnf("Error count for node %d: %d/%d", nodeID, count, maxErrorCount)
	return count
}

// resetErrorCount resets the consecutive failure count for a node
func resetErrorCount(nodeID uint) {
	errorCountsMu.Lock()
	defer errorCountsMu.Unlock()

	if errorCounts[nodeID] > 0 {
		delete(errorCounts, nodeID)
	}
}
