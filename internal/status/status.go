// Package status tracks the per-user state of background scrape and analyze
// pipelines. The contract is deliberately coarse: one marker per user,
// last write wins, no history.
package status

import (
	"context"
	"time"
)

// State is the lifecycle of a user's most recent pipeline run.
type State string

// Pipeline states. A user with no recorded run is StateIdle.
const (
	StateIdle       State = "idle"
	StateProcessing State = "processing"
	StateFinished   State = "finished"
	StateFailed     State = "failed"
)

// Status is the marker stored per user.
type Status struct {
	State State `json:"status"`
	// FinishedAt is set for terminal states only.
	FinishedAt *time.Time `json:"finished_at"`
}

// Idle is the zero-value marker returned for unknown users.
func Idle() Status {
	return Status{State: StateIdle}
}

// Store persists per-user pipeline status markers. Implementations must
// treat Set as last-write-wins; concurrent pipelines for the same user are
// an accepted race, not a serialized contract.
type Store interface {
	Get(ctx context.Context, userID string) (Status, error)
	Set(ctx context.Context, userID string, s Status) error
}
