package business

import (
	"fmt"

	"compcontrol/internal/models"
)

// TreeArena is a flat id-indexed view of binary tree nodes. All traversals
// are iterative; children hold no back references beyond the id lookup, so
// arbitrarily deep trees are safe.
type TreeArena struct {
	Nodes map[uint]*models.BinaryNode
}

// NewTreeArena builds an arena from a node slice.
func NewTreeArena(nodes []models.BinaryNode) *TreeArena {
	arena := &TreeArena{Nodes: make(map[uint]*models.BinaryNode, len(nodes))}
	for i := range nodes {
		arena.Nodes[nodes[i].ID] = &nodes[i]
	}
	return arena
}

// Get returns the node with the given id, or nil.
func (a *TreeArena) Get(id uint) *models.BinaryNode {
	return a.Nodes[id]
}

// SubtreeIDs collects the ids under rootID (inclusive), depth-first with an
// explicit stack. A revisited id means a cycle, a missing child id means a
// dangling reference; both are ErrInvalidTreeState.
func (a *TreeArena) SubtreeIDs(rootID uint) ([]uint, error) {
	if a.Get(rootID) == nil {
		return nil, fmt.Errorf("node %d not found: %w", rootID, ErrInvalidTreeState)
	}

	var ids []uint
	visited := make(map[uint]bool)
	stack := []uint{rootID}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[id] {
			return nil, fmt.Errorf("cycle detected at node %d: %w", id, ErrInvalidTreeState)
		}
		visited[id] = true

		node := a.Get(id)
		if node == nil {
			return nil, fmt.Errorf("dangling child reference %d: %w", id, ErrInvalidTreeState)
		}

		ids = append(ids, id)
		if node.LeftChildID != nil {
			stack = append(stack, *node.LeftChildID)
		}
		if node.RightChildID != nil {
			stack = append(stack, *node.RightChildID)
		}
	}

	return ids, nil
}

// SubtreeVolume sums PersonalVolume over the subtree rooted at rootID.
func (a *TreeArena) SubtreeVolume(rootID uint) (float64, error) {
	ids, err := a.SubtreeIDs(rootID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, id := range ids {
		total += a.Nodes[id].PersonalVolume
	}
	return total, nil
}

// SubtreeCount counts the nodes in the subtree rooted at rootID.
func (a *TreeArena) SubtreeCount(rootID uint) (int, error) {
	ids, err := a.SubtreeIDs(rootID)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// legMetricVolume returns the stored aggregate volume of both legs of a node.
// The stored legs are maintained incrementally and equal the subtree sums by
// invariant, so the search does not recompute them.
func legMetricVolume(node *models.BinaryNode) (left float64, right float64) {
	return node.LeftVolume, node.RightVolume
}

// FindSpilloverSlot searches outward from startID for the nearest empty slot
// according to the placement priority and returns the parent id and side.
func (a *TreeArena) FindSpilloverSlot(startID uint, priority string) (uint, string, error) {
	cur := a.Get(startID)
	if cur == nil {
		return 0, "", fmt.Errorf("start node %d not found: %w", startID, ErrInvalidTreeState)
	}

	// A well-formed tree is exhausted before len(Nodes)+1 descents.
	for steps := 0; steps <= len(a.Nodes); steps++ {
		switch priority {
		case models.PriorityLeft:
			if cur.LeftChildID == nil {
				return cur.ID, models.PositionLeft, nil
			}
			cur = a.Get(*cur.LeftChildID)

		case models.PriorityRight:
			if cur.RightChildID == nil {
				return cur.ID, models.PositionRight, nil
			}
			cur = a.Get(*cur.RightChildID)

		case models.PriorityBalanced:
			leftCount, rightCount := 0, 0
			var err error
			if cur.LeftChildID != nil {
				if leftCount, err = a.SubtreeCount(*cur.LeftChildID); err != nil {
					return 0, "", err
				}
			}
			if cur.RightChildID != nil {
				if rightCount, err = a.SubtreeCount(*cur.RightChildID); err != nil {
					return 0, "", err
				}
			}
			// tie goes left
			if leftCount <= rightCount {
				if cur.LeftChildID == nil {
					return cur.ID, models.PositionLeft, nil
				}
				cur = a.Get(*cur.LeftChildID)
			} else {
				if cur.RightChildID == nil {
					return cur.ID, models.PositionRight, nil
				}
				cur = a.Get(*cur.RightChildID)
			}

		default: // weaker-leg
			leftVol, rightVol := legMetricVolume(cur)
			// tie goes left
			if leftVol <= rightVol {
				if cur.LeftChildID == nil {
					return cur.ID, models.PositionLeft, nil
				}
				cur = a.Get(*cur.LeftChildID)
			} else {
				if cur.RightChildID == nil {
					return cur.ID, models.PositionRight, nil
				}
				cur = a.Get(*cur.RightChildID)
			}
		}

		if cur == nil {
			return 0, "", fmt.Errorf("dangling child reference during placement search: %w", ErrInvalidTreeState)
		}
	}

	return 0, "", fmt.Errorf("placement search exceeded node count, cycle suspected: %w", ErrInvalidTreeState)
}

// VolumeMismatch is one node whose stored leg volume disagrees with the
// recomputed subtree sum.
type VolumeMismatch struct {
	NodeID         uint    `json:"node_id"`
	Leg            string  `json:"leg"`
	StoredVolume   float64 `json:"stored_volume"`
	ComputedVolume float64 `json:"computed_volume"`
}

const volumeEpsilon = 1e-6

// CheckVolumeConsistency recomputes every node's leg volumes from subtree
// personal-volume sums and reports nodes where the stored aggregates drifted.
// The legs are incrementally maintained, so this is the required invariant
// check, not an assumption.
func (a *TreeArena) CheckVolumeConsistency() ([]VolumeMismatch, error) {
	var mismatches []VolumeMismatch

	for id, node := range a.Nodes {
		var leftSum, rightSum float64
		var err error

		if node.LeftChildID != nil {
			if leftSum, err = a.SubtreeVolume(*node.LeftChildID); err != nil {
				return nil, err
			}
		}
		if node.RightChildID != nil {
			if rightSum, err = a.SubtreeVolume(*node.RightChildID); err != nil {
				return nil, err
			}
		}

		if diff := node.LeftVolume - leftSum; diff > volumeEpsilon || diff < -volumeEpsilon {
			mismatches = append(mismatches, VolumeMismatch{
				NodeID: id, Leg: models.PositionLeft,
				StoredVolume: node.LeftVolume, ComputedVolume: leftSum,
			})
		}
		if diff := node.RightVolume - rightSum; diff > volumeEpsilon || diff < -volumeEpsilon {
			mismatches = append(mismatches, VolumeMismatch{
				NodeID: id, Leg: models.PositionRight,
				StoredVolume: node.RightVolume, ComputedVolume: rightSum,
			})
		}
	}

	return mismatches, nil
}
