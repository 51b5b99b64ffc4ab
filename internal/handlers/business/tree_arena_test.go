package business

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compcontrol/internal/models"
)

func uintPtr(v uint) *uint {
	return &v
}

// buildTestArena constructs a small three-level tree:
//
//	        1
//	      /   \
//	     2     3
//	    / \
//	   4   5
//
// Node 2 carries the heavier legs; node 3 has both slots free.
func buildTestArena() *TreeArena {
	nodes := []models.BinaryNode{
		{ID: 1, UserID: 101, Position: models.PositionRoot,
			LeftChildID: uintPtr(2), RightChildID: uintPtr(3),
			LeftVolume: 300, RightVolume: 700},
		{ID: 2, UserID: 102, ParentID: uintPtr(1), Position: models.PositionLeft,
			LeftChildID: uintPtr(4), RightChildID: uintPtr(5),
			PersonalVolume: 100, LeftVolume: 120, RightVolume: 80},
		{ID: 3, UserID: 103, ParentID: uintPtr(1), Position: models.PositionRight,
			PersonalVolume: 700},
		{ID: 4, UserID: 104, ParentID: uintPtr(2), Position: models.PositionLeft,
			PersonalVolume: 120},
		{ID: 5, UserID: 105, ParentID: uintPtr(2), Position: models.PositionRight,
			PersonalVolume: 80},
	}
	return NewTreeArena(nodes)
}

func TestSubtreeIDs(t *testing.T) {
	arena := buildTestArena()

	ids, err := arena.SubtreeIDs(1)
	require.NoError(t, err)
	assert.Len(t, ids, 5)

	ids, err = arena.SubtreeIDs(2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{2, 4, 5}, ids)

	_, err = arena.SubtreeIDs(99)
	assert.ErrorIs(t, err, ErrInvalidTreeState)
}

func TestSubtreeIDsDetectsCycle(t *testing.T) {
	nodes := []models.BinaryNode{
		{ID: 1, UserID: 101, LeftChildID: uintPtr(2)},
		{ID: 2, UserID: 102, ParentID: uintPtr(1), LeftChildID: uintPtr(1)},
	}
	arena := NewTreeArena(nodes)

	_, err := arena.SubtreeIDs(1)
	assert.ErrorIs(t, err, ErrInvalidTreeState)
}

func TestSubtreeIDsDetectsDanglingChild(t *testing.T) {
	nodes := []models.BinaryNode{
		{ID: 1, UserID: 101, LeftChildID: uintPtr(42)},
	}
	arena := NewTreeArena(nodes)

	_, err := arena.SubtreeIDs(1)
	assert.ErrorIs(t, err, ErrInvalidTreeState)
}

func TestSubtreeVolume(t *testing.T) {
	arena := buildTestArena()

	total, err := arena.SubtreeVolume(2)
	require.NoError(t, err)
	assert.Equal(t, 300.0, total)

	total, err = arena.SubtreeVolume(3)
	require.NoError(t, err)
	assert.Equal(t, 700.0, total)
}

func TestFindSpilloverSlot(t *testing.T) {
	t.Run("Weaker leg follows the lighter volume", func(t *testing.T) {
		arena := buildTestArena()

		// Root: left 300 < right 700, descend to node 2. Node 2: right 80 <
		// left 120, but node 5 sits there, so descend to 5 which is empty.
		parentID, position, err := arena.FindSpilloverSlot(1, models.PriorityWeakerLeg)
		require.NoError(t, err)
		assert.Equal(t, uint(5), parentID)
		assert.Equal(t, models.PositionLeft, position) // tie at 0/0 goes left
	})

	t.Run("Left priority walks the left spine", func(t *testing.T) {
		arena := buildTestArena()

		parentID, position, err := arena.FindSpilloverSlot(1, models.PriorityLeft)
		require.NoError(t, err)
		assert.Equal(t, uint(4), parentID)
		assert.Equal(t, models.PositionLeft, position)
	})

	t.Run("Right priority walks the right spine", func(t *testing.T) {
		arena := buildTestArena()

		parentID, position, err := arena.FindSpilloverSlot(1, models.PriorityRight)
		require.NoError(t, err)
		assert.Equal(t, uint(3), parentID)
		assert.Equal(t, models.PositionRight, position)
	})

	t.Run("Balanced prefers the smaller subtree", func(t *testing.T) {
		arena := buildTestArena()

		// Left subtree has 3 nodes, right has 1, so descend right; node 3 is
		// a leaf and its left slot wins the tie.
		parentID, position, err := arena.FindSpilloverSlot(1, models.PriorityBalanced)
		require.NoError(t, err)
		assert.Equal(t, uint(3), parentID)
		assert.Equal(t, models.PositionLeft, position)
	})

	t.Run("Search from a leaf lands on the leaf itself", func(t *testing.T) {
		arena := buildTestArena()

		parentID, position, err := arena.FindSpilloverSlot(3, models.PriorityWeakerLeg)
		require.NoError(t, err)
		assert.Equal(t, uint(3), parentID)
		assert.Equal(t, models.PositionLeft, position)
	})

	t.Run("Unknown start node fails", func(t *testing.T) {
		arena := buildTestArena()

		_, _, err := arena.FindSpilloverSlot(99, models.PriorityWeakerLeg)
		assert.ErrorIs(t, err, ErrInvalidTreeState)
	})
}

func TestCheckVolumeConsistency(t *testing.T) {
	t.Run("Consistent tree reports nothing", func(t *testing.T) {
		arena := buildTestArena()

		mismatches, err := arena.CheckVolumeConsistency()
		require.NoError(t, err)
		assert.Empty(t, mismatches)
	})

	t.Run("Drifted leg volume is reported", func(t *testing.T) {
		arena := buildTestArena()
		arena.Nodes[1].LeftVolume = 250 // subtree sum is 300

		mismatches, err := arena.CheckVolumeConsistency()
		require.NoError(t, err)
		require.Len(t, mismatches, 1)
		assert.Equal(t, uint(1), mismatches[0].NodeID)
		assert.Equal(t, models.PositionLeft, mismatches[0].Leg)
		assert.Equal(t, 250.0, mismatches[0].StoredVolume)
		assert.Equal(t, 300.0, mismatches[0].ComputedVolume)
	})
}
