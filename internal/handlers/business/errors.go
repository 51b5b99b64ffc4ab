package business

import (
	"errors"
)

// Domain errors surfaced to callers. CapExceeded is intentionally absent:
// hitting a cap triggers carry-forward or flush, it is never an error.
var (
	// ErrSlotOccupied means the requested position under the sponsor is taken.
	ErrSlotOccupied = errors.New("requested slot is occupied")

	// ErrPlacementDenied means auto placement was needed but spillover is
	// disabled or set to manual.
	ErrPlacementDenied = errors.New("automatic placement is disabled")

	// ErrInvalidTreeState covers cycles, orphaned nodes and dangling child
	// references. Processing for the affected subtree halts.
	ErrInvalidTreeState = errors.New("invalid tree state")

	// ErrDependencyUnavailable wraps failed settings/package/sponsor lookups.
	// The caller retries with backoff; the engines never retry internally.
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrInvalidConfiguration means the engines received settings that should
	// have been rejected at write time.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
