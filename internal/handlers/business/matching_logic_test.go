package business

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"compcontrol/internal/models"
	"compcontrol/pkg/utils"
)

func TestRefreshCounter(t *testing.T) {
	// Thursday noon
	now := time.Date(2026, 3, 19, 12, 0, 0, 0, time.UTC)

	t.Run("Same day keeps the accumulated payout", func(t *testing.T) {
		counter := models.PeriodCounter{
			Granularity:       models.PeriodDay,
			AccumulatedPayout: 300,
			PeriodStart:       utils.PeriodStart(now.Add(-6*time.Hour), models.PeriodDay),
		}
		assert.False(t, refreshCounter(&counter, now))
		assert.Equal(t, 300.0, counter.AccumulatedPayout)
	})

	t.Run("Crossed day boundary resets in place", func(t *testing.T) {
		counter := models.PeriodCounter{
			Granularity:       models.PeriodDay,
			AccumulatedPayout: 300,
			PeriodStart:       utils.PeriodStart(now.AddDate(0, 0, -1), models.PeriodDay),
		}
		assert.True(t, refreshCounter(&counter, now))
		assert.Zero(t, counter.AccumulatedPayout)
		assert.Equal(t, utils.PeriodStart(now, models.PeriodDay), counter.PeriodStart)
	})

	t.Run("Same week survives a day change", func(t *testing.T) {
		// Monday of the same week
		counter := models.PeriodCounter{
			Granularity:       models.PeriodWeek,
			AccumulatedPayout: 1200,
			PeriodStart:       utils.PeriodStart(time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC), models.PeriodWeek),
		}
		assert.False(t, refreshCounter(&counter, now))
		assert.Equal(t, 1200.0, counter.AccumulatedPayout)
	})

	t.Run("Crossed week boundary resets", func(t *testing.T) {
		// previous Sunday belongs to the preceding Monday's week
		counter := models.PeriodCounter{
			Granularity:       models.PeriodWeek,
			AccumulatedPayout: 1200,
			PeriodStart:       utils.PeriodStart(time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC), models.PeriodWeek),
		}
		assert.True(t, refreshCounter(&counter, now))
		assert.Zero(t, counter.AccumulatedPayout)
		assert.Equal(t, utils.PeriodStart(now, models.PeriodWeek), counter.PeriodStart)
	})

	t.Run("Crossed month boundary resets", func(t *testing.T) {
		counter := models.PeriodCounter{
			Granularity:       models.PeriodMonth,
			AccumulatedPayout: 9000,
			PeriodStart:       utils.PeriodStart(time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC), models.PeriodMonth),
		}
		assert.True(t, refreshCounter(&counter, now))
		assert.Zero(t, counter.AccumulatedPayout)
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), counter.PeriodStart)
	})
}

func TestLiveCarryVolume(t *testing.T) {
	now := time.Date(2026, 3, 19, 12, 0, 0, 0, time.UTC)

	t.Run("Unexpired entry is consumed in full", func(t *testing.T) {
		carry := models.CarryForwardEntry{ResidualVolume: 200, ExpiresAt: now.AddDate(0, 0, 3)}
		volume, expired := liveCarryVolume(&carry, now)
		assert.False(t, expired)
		assert.Equal(t, 200.0, volume)
	})

	t.Run("Entry expiring exactly now still counts", func(t *testing.T) {
		carry := models.CarryForwardEntry{ResidualVolume: 200, ExpiresAt: now}
		volume, expired := liveCarryVolume(&carry, now)
		assert.False(t, expired)
		assert.Equal(t, 200.0, volume)
	})

	t.Run("Expired entry drops silently", func(t *testing.T) {
		carry := models.CarryForwardEntry{ResidualVolume: 200, ExpiresAt: now.Add(-time.Second)}
		volume, expired := liveCarryVolume(&carry, now)
		assert.True(t, expired)
		assert.Zero(t, volume)
	})
}

func TestEmitBonusOutcomeSkipsInactiveNodes(t *testing.T) {
	events, cancel := SubscribeEvents()
	defer cancel()

	// inactive node: nothing reaches the stream even with a non-zero result
	emitBonusOutcome(7, false, 70, &BonusResult{NodeID: 7, Payout: 125})
	select {
	case evt := <-events:
		t.Fatalf("unexpected %s event for inactive node", evt.Kind)
	case <-time.After(50 * time.Millisecond):
	}

	// active node with zero payout still announces the computation
	emitBonusOutcome(8, true, 80, &BonusResult{NodeID: 8, SourceEvent: "evt-8"})
	select {
	case evt := <-events:
		assert.Equal(t, EventBonusComputed, evt.Kind)
		assert.EqualValues(t, 8, evt.Payload["node_id"])
		assert.Equal(t, "evt-8", evt.Payload["source_event"])
	case <-time.After(time.Second):
		t.Fatal("expected a bonus.computed event for the active node")
	}
}
