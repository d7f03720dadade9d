package polling

import (
	"errors"
	"sync"
	"time"

	"github.com/Elpulgo/azdo-buildstats/internal/azdevops"
	"github.com/Elpulgo/azdo-buildstats/internal/buildstats"
)

// MaxRecoverableErrors is the threshold after which errors are considered non-recoverable.
const MaxRecoverableErrors = 5

// ErrorHandler manages error state for the polling system.
// When a fetch fails it hands back the last snapshot that succeeded.
type ErrorHandler struct {
	currentError      error
	consecutiveErrors int
	lastErrorTime     time.Time
	lastKnownGood     buildstats.Snapshot
	hasData           bool
	mu                sync.RWMutex
}

// NewErrorHandler creates a new ErrorHandler.
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// SetError sets the current error and increments the consecutive error count.
func (h *ErrorHandler) SetError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentError = err
	h.consecutiveErrors++
	h.lastErrorTime = time.Now()
}

// ClearError clears the current error and resets the consecutive error count.
func (h *ErrorHandler) ClearError() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentError = nil
	h.consecutiveErrors = 0
}

// HasError returns true if there is a current error.
func (h *ErrorHandler) HasError() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.currentError != nil
}

// GetError returns the current error.
func (h *ErrorHandler) GetError() error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.currentError
}

// ConsecutiveErrors returns the number of consecutive errors.
func (h *ErrorHandler) ConsecutiveErrors() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.consecutiveErrors
}

// SetLastKnownGood stores the last successful snapshot.
func (h *ErrorHandler) SetLastKnownGood(s buildstats.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastKnownGood = s
	h.hasData = true
}

// LastKnownGood returns the last successful snapshot and whether one exists.
func (h *ErrorHandler) LastKnownGood() (buildstats.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.lastKnownGood, h.hasData
}

// ProcessUpdate processes a SnapshotUpdated message.
// On success, it stores the snapshot and clears errors.
// On error, it sets the error and returns the last known good snapshot.
// Returns the snapshot to display and whether there was an error.
func (h *ErrorHandler) ProcessUpdate(msg SnapshotUpdated) (buildstats.Snapshot, bool) {
	if msg.Err != nil {
		h.SetError(msg.Err)
		snapshot, _ := h.LastKnownGood()
		return snapshot, true
	}

	h.SetLastKnownGood(msg.Snapshot)
	h.ClearError()
	return msg.Snapshot, false
}

// ErrorMessage returns the error message if there is an error.
func (h *ErrorHandler) ErrorMessage() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.currentError == nil {
		return ""
	}
	return h.currentError.Error()
}

// LastErrorTime returns the time of the last error.
func (h *ErrorHandler) LastErrorTime() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.lastErrorTime
}

// IsRecoverable returns true if the error is likely recoverable (transient).
// Authentication failures never recover without user action.
func (h *ErrorHandler) IsRecoverable() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if errors.Is(h.currentError, azdevops.ErrUnauthorized) {
		return false
	}
	return h.consecutiveErrors <= MaxRecoverableErrors
}

// RecoveryMessage returns a user-friendly message about the error state.
func (h *ErrorHandler) RecoveryMessage() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch {
	case h.currentError == nil:
		return ""
	case errors.Is(h.currentError, azdevops.ErrUnauthorized):
		return "Authentication failed. Run 'azdo-buildstats auth' to update your PAT."
	case h.consecutiveErrors <= MaxRecoverableErrors:
		return "Connection issue. Retrying..."
	default:
		return "Connection failed. Check your network and press 'r' to retry."
	}
}
