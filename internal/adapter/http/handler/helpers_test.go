package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
)

// Repos and services both wrap with the log context before the error reaches
// a handler. GetCode has to resolve that chain to the sentinel and return.
func TestGetCodeDoubleWrappedError(t *testing.T) {
	tests := []struct {
		name     string
		sentinel error
		want     int
	}{
		{"walk not found", types.ErrWalkNotFound, http.StatusNotFound},
		{"chat unavailable", types.ErrChatUnavailable, http.StatusForbidden},
		{"invalid latitude", types.ErrInvalidLatitude, http.StatusUnprocessableEntity},
		{"unknown", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := wrap.WithWalkID(context.Background(), "walk-1")
			repoErr := wrap.Error(ctx, fmt.Errorf("WalkRepo.Get: %w", tt.sentinel))
			svcErr := wrap.Error(ctx, fmt.Errorf("tracking.Service.GetWalkRoute: %w", repoErr))

			code := make(chan int, 1)
			go func() {
				code <- GetCode(svcErr)
			}()

			select {
			case got := <-code:
				if got != tt.want {
					t.Errorf("GetCode() = %d, want %d", got, tt.want)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("GetCode did not terminate on a re-wrapped error")
			}
		})
	}
}
