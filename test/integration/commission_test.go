package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type BinaryNode struct {
	ID          uint    `json:"id"`
	UserID      uint    `json:"user_id"`
	LeftVolume  float64 `json:"left_volume"`
	RightVolume float64 `json:"right_volume"`
}

type BonusResult struct {
	NodeID          uint    `json:"node_id"`
	AvailableLesser float64 `json:"available_lesser"`
	Payout          float64 `json:"payout"`
	ResidualVolume  float64 `json:"residual_volume"`
	CarriedForward  bool    `json:"carried_forward"`
	Capped          bool    `json:"capped"`
}

func putSettings(t *testing.T, settings map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(settings)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, BaseURL+"/binary-settings", bytes.NewBuffer(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func placeTestNode(t *testing.T, userID, sponsorUserID uint, position string) BinaryNode {
	t.Helper()

	request := map[string]interface{}{
		"user_id":         userID,
		"sponsor_user_id": sponsorUserID,
		"position":        position,
	}
	payload, err := json.Marshal(request)
	require.NoError(t, err)

	resp, err := http.Post(BaseURL+"/binary-tree/place", "application/json", bytes.NewBuffer(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var node BinaryNode
	err = json.NewDecoder(resp.Body).Decode(&node)
	require.NoError(t, err)
	require.NotZero(t, node.ID)
	return node
}

func investFor(t *testing.T, userID, packageID uint, amount float64) {
	t.Helper()

	request := map[string]interface{}{
		"user_id":    userID,
		"package_id": packageID,
		"amount":     amount,
	}
	payload, err := json.Marshal(request)
	require.NoError(t, err)

	resp, err := http.Post(BaseURL+"/investment", "application/json", bytes.NewBuffer(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func computeBonus(t *testing.T, nodeID uint) BonusResult {
	t.Helper()

	resp, err := http.Post(fmt.Sprintf("%s/commission/compute/%d", BaseURL, nodeID), "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result BonusResult
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)
	return result
}

func TestCommissionAPI(t *testing.T) {
	// Tight daily cap so the first computation is capped and leaves a
	// carry-forward; weekly/monthly windows disabled
	putSettings(t, map[string]interface{}{
		"spillover_enabled":         true,
		"spillover_rule":            "auto",
		"placement_priority":        "weaker-leg",
		"capping_enabled":           true,
		"daily_cap":                 30.0,
		"weekly_cap":                0.0,
		"monthly_cap":               0.0,
		"matching_bonus_percentage": 10.0,
		"carry_forward_enabled":     true,
		"max_carry_forward_days":    7,
	})

	packageID := createSimulatorTestPackage(t)

	// Fresh user ids per run so reruns against a persistent database don't collide
	base := uint(time.Now().UnixNano() % 1_000_000_000)
	root := placeTestNode(t, base, 0, "")
	left := placeTestNode(t, base+1, base, "left")
	right := placeTestNode(t, base+2, base, "right")

	investFor(t, left.UserID, packageID, 1000)
	investFor(t, right.UserID, packageID, 500)

	// Test Case 1: Capped Computation Creates Carry-Forward
	t.Run("Capped Computation Creates Carry-Forward", func(t *testing.T) {
		// lesser leg 500 at 10% is 50, clamped to the 30 daily headroom;
		// 300 of volume is consumed, 200 carries forward
		result := computeBonus(t, root.ID)
		assert.Equal(t, 500.0, result.AvailableLesser)
		assert.Equal(t, 30.0, result.Payout)
		assert.Equal(t, 200.0, result.ResidualVolume)
		assert.True(t, result.Capped)
		assert.True(t, result.CarriedForward)
	})

	// Test Case 2: Carry-Forward Entry Is Readable
	t.Run("Carry-Forward Entry Is Readable", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("%s/commission/carry-forward/%d", BaseURL, root.ID))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var carry struct {
			NodeID         uint    `json:"node_id"`
			ResidualVolume float64 `json:"residual_volume"`
		}
		err = json.NewDecoder(resp.Body).Decode(&carry)
		require.NoError(t, err)
		assert.Equal(t, root.ID, carry.NodeID)
		assert.Equal(t, 200.0, carry.ResidualVolume)
	})

	// Test Case 3: Exhausted Daily Headroom Replaces The Carry-Forward
	t.Run("Exhausted Daily Headroom Replaces The Carry-Forward", func(t *testing.T) {
		// same day, headroom already spent: nothing pays out and the prior
		// entry is replaced by the full lesser volume plus consumed carry
		result := computeBonus(t, root.ID)
		assert.Equal(t, 700.0, result.AvailableLesser)
		assert.Zero(t, result.Payout)
		assert.Equal(t, 700.0, result.ResidualVolume)
		assert.True(t, result.Capped)
		assert.True(t, result.CarriedForward)

		resp, err := http.Get(fmt.Sprintf("%s/commission/carry-forward/%d", BaseURL, root.ID))
		require.NoError(t, err)
		defer resp.Body.Close()

		var carry struct {
			ResidualVolume float64 `json:"residual_volume"`
		}
		err = json.NewDecoder(resp.Body).Decode(&carry)
		require.NoError(t, err)
		assert.Equal(t, 700.0, carry.ResidualVolume)
	})

	// Test Case 4: Period Counters Track The Payout
	t.Run("Period Counters Track The Payout", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("%s/commission/counters/%d", BaseURL, root.ID))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var counters []struct {
			Granularity       string  `json:"granularity"`
			AccumulatedPayout float64 `json:"accumulated_payout"`
		}
		err = json.NewDecoder(resp.Body).Decode(&counters)
		require.NoError(t, err)
		require.Len(t, counters, 3)
		for _, counter := range counters {
			assert.Equal(t, 30.0, counter.AccumulatedPayout, "granularity %s", counter.Granularity)
		}
	})

	// Restore settings so later tests see sane caps
	putSettings(t, map[string]interface{}{
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
	})
}
