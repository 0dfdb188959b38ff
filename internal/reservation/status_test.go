// server/internal/reservation/status_test.go
package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKnownStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusAccepted, StatusOffered, StatusConfirmed, StatusPrevious} {
		assert.True(t, IsKnownStatus(s), s)
	}
	assert.False(t, IsKnownStatus("pending")) // case-sensitive
	assert.False(t, IsKnownStatus("Cancelled"))
	assert.False(t, IsKnownStatus(""))
}

func TestTransitionWarning(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		warned   bool
	}{
		{"pending to accepted", StatusPending, StatusAccepted, false},
		{"pending to offered", StatusPending, StatusOffered, false},
		{"accepted to confirmed", StatusAccepted, StatusConfirmed, false},
		{"offered to confirmed", StatusOffered, StatusConfirmed, false},
		{"confirmed to previous", StatusConfirmed, StatusPrevious, false},
		{"no-op is never warned", StatusConfirmed, StatusConfirmed, false},
		{"pending straight to confirmed", StatusPending, StatusConfirmed, true},
		{"previous cannot move on", StatusPrevious, StatusPending, true},
		{"backwards", StatusConfirmed, StatusPending, true},
		{"unknown target", StatusPending, "Cancelled", true},
		{"legacy free-form source is accepted", "on-hold", StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := TransitionWarning(tt.from, tt.to)
			if tt.warned {
				assert.NotEmpty(t, warning)
			} else {
				assert.Empty(t, warning)
			}
		})
	}
}
