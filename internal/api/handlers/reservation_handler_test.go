// server/internal/api/handlers/reservation_handler_test.go
package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newReservationTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &ReservationHandler{}
	router := gin.New()
	router.PUT("/user/userProfile/:userId", h.AttachToRider)
	router.PUT("/user/driverProfile/:driverId", h.DriverClaim)
	router.PUT("/user/reservation/:userId", h.UpdateRiderReservation)
	router.PUT("/user/driverReservation/:driverId", h.UpdateDriverReservation)
	return router
}

func TestAttachToRiderRejectsBadIDs(t *testing.T) {
	router := newReservationTestRouter()

	w := doJSON(router, http.MethodPut, "/user/userProfile/nope", `{
		"reservation": {"pickup": {"lat": 1, "lng": 2}, "destination": {"lat": 3, "lng": 4},
			"stop": {}, "mapLocation": {"lat": 1, "lng": 2},
			"persons": 2, "pickupDate": "2024-03-01", "pickupTime": "10:00", "rideType": "one-way"}
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPut, "/user/userProfile/64f0c8aab79e5a0001234567", `{
		"reservation": {"pickup": {"lat": 1, "lng": 2}, "destination": {"lat": 3, "lng": 4},
			"stop": {}, "mapLocation": {"lat": 1, "lng": 2},
			"persons": 2, "pickupDate": "2024-03-01", "pickupTime": "10:00", "rideType": "one-way"},
		"reservationId": "not-hex"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDriverClaimRequiresReservationAndRider(t *testing.T) {
	router := newReservationTestRouter()

	// Missing reservationId and userId.
	w := doJSON(router, http.MethodPut, "/user/driverProfile/64f0c8aab79e5a0001234567", `{
		"reservation": {"pickup": {"lat": 1, "lng": 2}, "destination": {"lat": 3, "lng": 4},
			"stop": {}, "mapLocation": {"lat": 1, "lng": 2},
			"persons": 2, "pickupDate": "2024-03-01", "pickupTime": "10:00", "rideType": "one-way"}
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed rider reference.
	w = doJSON(router, http.MethodPut, "/user/driverProfile/64f0c8aab79e5a0001234567", `{
		"reservation": {"pickup": {"lat": 1, "lng": 2}, "destination": {"lat": 3, "lng": 4},
			"stop": {}, "mapLocation": {"lat": 1, "lng": 2},
			"persons": 2, "pickupDate": "2024-03-01", "pickupTime": "10:00", "rideType": "one-way"},
		"userId": "nope",
		"reservationId": "64f0c8aab79e5a0001234568"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateReservationRequiresMatchKey(t *testing.T) {
	router := newReservationTestRouter()

	// reservationId is the match key; without it the update is rejected
	// (entries are never matched by array index).
	w := doJSON(router, http.MethodPut, "/user/reservation/64f0c8aab79e5a0001234567", `{
		"reservation": {"pickup": {"lat": 1, "lng": 2}, "destination": {"lat": 3, "lng": 4},
			"stop": {}, "mapLocation": {"lat": 1, "lng": 2},
			"persons": 2, "pickupDate": "2024-03-01", "pickupTime": "10:00", "rideType": "one-way"},
		"rideStatus": "Confirmed"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPut, "/user/driverReservation/bad-id", `{
		"reservationId": "64f0c8aab79e5a0001234568",
		"reservation": {"pickup": {"lat": 1, "lng": 2}, "destination": {"lat": 3, "lng": 4},
			"stop": {}, "mapLocation": {"lat": 1, "lng": 2},
			"persons": 2, "pickupDate": "2024-03-01", "pickupTime": "10:00", "rideType": "one-way"},
		"rideStatus": "Confirmed"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
