// Package policy centralizes every status-based gating decision for a
// walk's map, GPS record list and chat. The status switches used to be
// scattered across the view components; they live here once, as pure
// functions over the seven walk statuses.
//
// Any status outside the known set fails closed: nothing visible, nothing
// interactive. Status strings ultimately come from the backend and are not
// fully under this system's control.
package policy

import (
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
)

// IsMapVisible reports whether the walk's map should be shown at all.
// The map appears once a walk is scheduled and never disappears afterwards:
// finished walks keep showing their completed route.
func IsMapVisible(status types.WalkStatus) bool {
	switch status {
	case types.StatusScheduled, types.StatusActive, types.StatusFinished:
		return true
	default:
		return false
	}
}

// IsMapInteractive reports whether the map accepts pan/zoom and live
// updates. Only an in-progress walk is interactive; a finished walk shows a
// frozen historical rendering.
func IsMapInteractive(status types.WalkStatus) bool {
	return status == types.StatusActive
}

// IsTrackingVisible gates the GPS record list. Same rule as the map.
func IsTrackingVisible(status types.WalkStatus) bool {
	return IsMapVisible(status)
}

// IsChatVisible reports whether the chat transcript can be opened.
// The transcript is readable for every live status, including the
// pre-confirmation ones, so owner and walker can coordinate before payment.
// It stays readable after the walk finishes. Rejected and cancelled walks
// never expose a chat.
func IsChatVisible(status types.WalkStatus) bool {
	switch status {
	case types.StatusRequested, types.StatusAwaitingPay,
		types.StatusScheduled, types.StatusActive, types.StatusFinished:
		return true
	default:
		return false
	}
}

// CanSendMessages reports whether new messages are accepted. Writing is
// allowed while the walk is scheduled or in progress; a finished walk keeps
// a read-only transcript.
func CanSendMessages(status types.WalkStatus) bool {
	switch status {
	case types.StatusScheduled, types.StatusActive:
		return true
	default:
		return false
	}
}

// Capabilities is the full gating snapshot for one status value. Handy for
// views that need several gates at once and for testing the whole matrix.
type Capabilities struct {
	MapVisible      bool `json:"map_visible"`
	MapInteractive  bool `json:"map_interactive"`
	TrackingVisible bool `json:"tracking_visible"`
	ChatVisible     bool `json:"chat_visible"`
	CanSendMessages bool `json:"can_send_messages"`
}

// For evaluates every gate from a single status read. Views must call this
// with the latest status value on every render, nothing here is cached.
func For(status types.WalkStatus) Capabilities {
	return Capabilities{
		MapVisible:      IsMapVisible(status),
		MapInteractive:  IsMapInteractive(status),
		TrackingVisible: IsTrackingVisible(status),
		ChatVisible:     IsChatVisible(status),
		CanSendMessages: CanSendMessages(status),
	}
}
