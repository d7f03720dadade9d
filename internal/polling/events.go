// Package polling refreshes build snapshots in the background and delivers
// them as tea.Msg values for Bubble Tea integration.
package polling

import "github.com/Elpulgo/azdo-buildstats/internal/buildstats"

// SnapshotUpdated is a tea.Msg sent when a snapshot fetch completes.
// It contains either the snapshot or an error.
type SnapshotUpdated struct {
	Snapshot buildstats.Snapshot
	Err      error
}

// TickMsg is a tea.Msg sent on each polling interval tick.
// It signals that it's time to fetch updated data.
type TickMsg struct{}

// ConnectionState represents the current state of the API connection.
type ConnectionState int

const (
	// StateConnected indicates successful API communication
	StateConnected ConnectionState = iota
	// StateConnecting indicates an initial connection attempt
	StateConnecting
	// StateDisconnected indicates no active connection
	StateDisconnected
	// StateError indicates a connection error occurred
	StateError
)

// String returns a human-readable string for the connection state.
func (s ConnectionState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateConnecting:
		return "connecting"
	case StateDisconnected:
		return "disconnected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ConnectionStateChanged is a tea.Msg sent when the connection state changes.
type ConnectionStateChanged struct {
	State ConnectionState
	Err   error
}
