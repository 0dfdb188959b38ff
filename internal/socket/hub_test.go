// server/internal/socket/hub_test.go
package socket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendToUnknownClientIsNotAnError(t *testing.T) {
	hub := NewHub()
	// An offline client is normal; delivery is best-effort.
	err := hub.Send("missing-user", []byte(`{"event":"noop"}`))
	assert.NoError(t, err)
}

func TestUnregisterUnknownClientIsSafe(t *testing.T) {
	hub := NewHub()
	hub.Unregister("never-registered")
}

func TestBroadcastToDriversSkipsRiders(t *testing.T) {
	hub := NewHub()
	// No driver connections; broadcasting must not panic or block.
	hub.BroadcastToDrivers("new_reservation", map[string]string{"reservationId": "abc"})
}
