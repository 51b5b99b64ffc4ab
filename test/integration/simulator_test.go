package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type PackageConfig struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	LevelDepth int    `json:"level_depth"`
}

type SimulationResult struct {
	InvestmentAmount float64 `json:"investment_amount"`
	ActiveLevels     int     `json:"active_levels"`
	TotalLevelIncome float64 `json:"total_level_income"`
	DirectCommission float64 `json:"direct_commission"`
	Matching         struct {
		AvailableLesser float64 `json:"available_lesser"`
		Payout          float64 `json:"payout"`
		Capped          bool    `json:"capped"`
	} `json:"matching"`
}

func createSimulatorTestPackage(t *testing.T) uint {
	t.Helper()

	pkg := map[string]interface{}{
		"name":                         "Simulator Test Package",
		"min_investment":               100.0,
		"max_investment":               10000.0,
		"daily_return_percentage":      5.0,
		"duration_days":                30,
		"direct_commission_percentage": 5.0,
		"binary_bonus_percentage":      10.0,
		"level_depth":                  10,
		"level_rates": []map[string]interface{}{
			{"level": 1, "percentage": 10.0},
			{"level": 2, "percentage": 5.0},
			{"level": 3, "percentage": 3.0},
			{"level": 4, "percentage": 2.0},
			{"level": 5, "percentage": 1.0},
			{"level": 6, "percentage": 1.0},
			{"level": 7, "percentage": 1.0},
			{"level": 8, "percentage": 1.0},
			{"level": 9, "percentage": 1.0},
			{"level": 10, "percentage": 1.0},
		},
	}

	payload, err := json.Marshal(pkg)
	require.NoError(t, err)

	resp, err := http.Post(BaseURL+"/package-config", "application/json", bytes.NewBuffer(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created PackageConfig
	err = json.NewDecoder(resp.Body).Decode(&created)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	return created.ID
}

func TestSimulatorAPI(t *testing.T) {
	packageID := createSimulatorTestPackage(t)

	// Test Case 1: Simulate Without Robot Addon
	t.Run("Simulate Without Robot Addon", func(t *testing.T) {
		request := map[string]interface{}{
			"package_id":      packageID,
			"amount":          1000.0,
			"has_robot_addon": false,
			"left_volume":     8000.0,
			"right_volume":    6000.0,
		}

		payload, err := json.Marshal(request)
		require.NoError(t, err)

		resp, err := http.Post(BaseURL+"/simulator/simulate", "application/json", bytes.NewBuffer(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result SimulationResult
		err = json.NewDecoder(resp.Body).Decode(&result)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, result.InvestmentAmount)
		assert.Equal(t, 5, result.ActiveLevels)
		assert.Equal(t, 50.0, result.DirectCommission)
		assert.Equal(t, 6000.0, result.Matching.AvailableLesser)
	})

	// Test Case 2: Robot Addon Unlocks Full Depth
	t.Run("Robot Addon Unlocks Full Depth", func(t *testing.T) {
		request := map[string]interface{}{
			"package_id":      packageID,
			"amount":          1000.0,
			"has_robot_addon": true,
		}

		payload, err := json.Marshal(request)
		require.NoError(t, err)

		resp, err := http.Post(BaseURL+"/simulator/simulate", "application/json", bytes.NewBuffer(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result SimulationResult
		err = json.NewDecoder(resp.Body).Decode(&result)
		require.NoError(t, err)
		assert.Equal(t, 10, result.ActiveLevels)
	})

	// Test Case 3: Reject Amount Below Package Minimum
	t.Run("Reject Amount Below Package Minimum", func(t *testing.T) {
		request := map[string]interface{}{
			"package_id": packageID,
			"amount":     50.0,
		}

		payload, err := json.Marshal(request)
		require.NoError(t, err)

		resp, err := http.Post(BaseURL+"/simulator/simulate", "application/json", bytes.NewBuffer(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	// Test Case 4: ROI Projection
	t.Run("ROI Projection", func(t *testing.T) {
		request := map[string]interface{}{
			"amount":                  1000.0,
			"daily_return_percentage": 5.0,
			"duration_days":           30,
		}

		payload, err := json.Marshal(request)
		require.NoError(t, err)

		resp, err := http.Post(BaseURL+"/simulator/roi", "application/json", bytes.NewBuffer(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var projection map[string]float64
		err = json.NewDecoder(resp.Body).Decode(&projection)
		require.NoError(t, err)
		assert.Equal(t, 50.0, projection["daily_roi_min"])
		assert.Equal(t, 1500.0, projection["total_return_min"])
	})

	// Cleanup
	t.Run("Delete Test Package", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/package-config/%d", BaseURL, packageID), nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
