package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type BinarySettings struct {
	ID                      uint    `json:"id"`
	SpilloverEnabled        bool    `json:"spillover_enabled"`
	SpilloverRule           string  `json:"spillover_rule"`
	PlacementPriority       string  `json:"placement_priority"`
	CappingEnabled          bool    `json:"capping_enabled"`
	DailyCap                float64 `json:"daily_cap"`
	WeeklyCap               float64 `json:"weekly_cap"`
	MonthlyCap              float64 `json:"monthly_cap"`
	MatchingBonusPercentage float64 `json:"matching_bonus_percentage"`
	CarryForwardEnabled     bool    `json:"carry_forward_enabled"`
	MaxCarryForwardDays     int     `json:"max_carry_forward_days"`
}

func TestBinarySettingsAPI(t *testing.T) {
	// Test Case 1: Get Default Settings
	t.Run("Get Default Settings", func(t *testing.T) {
		resp, err := http.Get(BaseURL + "/binary-settings")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var settings BinarySettings
		err = json.NewDecoder(resp.Body).Decode(&settings)
		require.NoError(t, err)
		assert.NotZero(t, settings.ID)
		assert.NotEmpty(t, settings.PlacementPriority)
	})

	// Test Case 2: Update Settings
	t.Run("Update Settings", func(t *testing.T) {
		update := map[string]interface{}{
			"spillover_enabled":         true,
			"spillover_rule":            "auto",
			"placement_priority":        "weaker-leg",
			"capping_enabled":           true,
			"daily_cap":                 500.0,
			"weekly_cap":                3000.0,
			"monthly_cap":               10000.0,
			"matching_bonus_percentage": 10.0,
			"carry_forward_enabled":     true,
			"max_carry_forward_days":    7,
		}

		payload, err := json.Marshal(update)
		require.NoError(t, err)

		req, err := http.NewRequest(http.MethodPut, BaseURL+"/binary-settings", bytes.NewBuffer(payload))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var settings BinarySettings
		err = json.NewDecoder(resp.Body).Decode(&settings)
		require.NoError(t, err)
		assert.Equal(t, 500.0, settings.DailyCap)
		assert.Equal(t, "weaker-leg", settings.PlacementPriority)
	})

	// Test Case 3: Reject Invalid Percentage
	t.Run("Reject Invalid Percentage", func(t *testing.T) {
		update := map[string]interface{}{
			"spillover_enabled":         true,
			"spillover_rule":            "auto",
			"placement_priority":        "weaker-leg",
			"capping_enabled":           true,
			"matching_bonus_percentage": 150.0,
			"carry_forward_enabled":     true,
			"max_carry_forward_days":    7,
		}

		payload, err := json.Marshal(update)
		require.NoError(t, err)

		req, err := http.NewRequest(http.MethodPut, BaseURL+"/binary-settings", bytes.NewBuffer(payload))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	// Test Case 4: Reject Unknown Placement Priority
	t.Run("Reject Unknown Placement Priority", func(t *testing.T) {
		update := map[string]interface{}{
			"spillover_enabled":         true,
			"spillover_rule":            "auto",
			"placement_priority":        "outside-in",
			"capping_enabled":           true,
			"matching_bonus_percentage": 10.0,
			"carry_forward_enabled":     true,
			"max_carry_forward_days":    7,
		}

		payload, err := json.Marshal(update)
		require.NoError(t, err)

		req, err := http.NewRequest(http.MethodPut, BaseURL+"/binary-settings", bytes.NewBuffer(payload))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
