package policy

import (
	"testing"

	"github.com/pasealo/walk-tracking-system/internal/domain/types"
)

func TestCapabilitiesMatrix(t *testing.T) {
	tests := []struct {
		status types.WalkStatus
		want   Capabilities
	}{
		{types.StatusRequested, Capabilities{ChatVisible: true}},
		{types.StatusAwaitingPay, Capabilities{ChatVisible: true}},
		{types.StatusScheduled, Capabilities{
			MapVisible:      true,
			TrackingVisible: true,
			ChatVisible:     true,
			CanSendMessages: true,
		}},
		{types.StatusActive, Capabilities{
			MapVisible:      true,
			MapInteractive:  true,
			TrackingVisible: true,
			ChatVisible:     true,
			CanSendMessages: true,
		}},
		{types.StatusFinished, Capabilities{
			MapVisible:      true,
			TrackingVisible: true,
			ChatVisible:     true,
		}},
		{types.StatusRejected, Capabilities{}},
		{types.StatusCancelled, Capabilities{}},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			got := For(tt.status)
			if got != tt.want {
				t.Fatalf("For(%q) = %+v, want %+v", tt.status, got, tt.want)
			}
		})
	}
}

func TestUnknownStatusFailsClosed(t *testing.T) {
	for _, s := range []types.WalkStatus{"", "ACTIVO", "activo", "En camino", "garbage", "Finalizado "} {
		if got := For(s); got != (Capabilities{}) {
			t.Fatalf("unknown status %q must gate everything off, got %+v", s, got)
		}
	}
}

func TestInteractiveImpliesVisible(t *testing.T) {
	statuses := append([]types.WalkStatus{}, types.AllStatuses...)
	statuses = append(statuses, "", "unknown")

	for _, s := range statuses {
		if IsMapInteractive(s) && !IsMapVisible(s) {
			t.Fatalf("status %q: interactive map without visibility", s)
		}
	}
}

func TestSendableImpliesChatVisible(t *testing.T) {
	statuses := append([]types.WalkStatus{}, types.AllStatuses...)
	statuses = append(statuses, "", "unknown")

	for _, s := range statuses {
		if CanSendMessages(s) && !IsChatVisible(s) {
			t.Fatalf("status %q: sendable chat without visibility", s)
		}
	}
}

func TestFinishedChatIsReadOnly(t *testing.T) {
	if !IsChatVisible(types.StatusFinished) {
		t.Fatal("finished walk must keep its transcript readable")
	}
	if CanSendMessages(types.StatusFinished) {
		t.Fatal("finished walk must not accept new messages")
	}
}

func TestDeterministic(t *testing.T) {
	for _, s := range types.AllStatuses {
		first := For(s)
		for i := 0; i < 3; i++ {
			if got := For(s); got != first {
				t.Fatalf("For(%q) is not deterministic", s)
			}
		}
	}
}

func TestStatusMessagesCoverAllStatuses(t *testing.T) {
	for _, s := range types.AllStatuses {
		if MapStatusMessage(s) == "" {
			t.Fatalf("no map message for %q", s)
		}
		if TrackingStatusMessage(s) == "" {
			t.Fatalf("no tracking message for %q", s)
		}
		if ChatStatusMessage(s) == "" {
			t.Fatalf("no chat message for %q", s)
		}
	}

	// Unknown statuses still get a generic "not available" line.
	if MapStatusMessage("???") != "Mapa no disponible" {
		t.Fatalf("unexpected map fallback message: %q", MapStatusMessage("???"))
	}
}

// Cross-component check: a walk awaiting payment shows no map and no
// tracking, and its chat is readable but does not accept new messages.
func TestAwaitingPaymentScenario(t *testing.T) {
	caps := For(types.StatusAwaitingPay)

	if caps.MapVisible || caps.TrackingVisible {
		t.Fatalf("awaiting payment must hide map and tracking, got %+v", caps)
	}
	if !caps.ChatVisible {
		t.Fatalf("awaiting payment must keep chat readable, got %+v", caps)
	}
	if caps.CanSendMessages {
		t.Fatalf("awaiting payment must not allow sending, got %+v", caps)
	}
}
