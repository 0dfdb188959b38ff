// server/internal/api/handlers/reservation_handler.go
package handlers

import (
	"context"
	"net/http"

	"ride-booking-api-server/internal/models"
	"ride-booking-api-server/internal/reservation"
	"ride-booking-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReservationHandler struct {
	Lifecycle *reservation.Lifecycle
	Hub       *socket.Hub
}

type AttachReservationRequest struct {
	Reservation     models.ReservationPayload `json:"reservation" binding:"required"`
	PaymentIntentID string                    `json:"paymentIntentId"`
	RideStatus      string                    `json:"rideStatus"`
	ReservationID   string                    `json:"reservationId"`
}

// AttachToRider books a quote onto the rider's account. The new record
// defaults to Pending and is announced to connected drivers.
func (h *ReservationHandler) AttachToRider(c *gin.Context) {
	riderID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	var req AttachReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	rec := models.ReservationRecord{
		Reservation:     req.Reservation,
		PaymentIntentID: req.PaymentIntentID,
		RideStatus:      req.RideStatus,
	}
	if req.ReservationID != "" {
		rec.ReservationID, err = primitive.ObjectIDFromHex(req.ReservationID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid reservation id"})
			return
		}
	}

	rec, err = h.Lifecycle.AttachToRider(context.Background(), riderID, rec)
	if err != nil {
		if err == reservation.ErrAccountNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to attach reservation"})
		return
	}

	h.Hub.BroadcastToDrivers("new_reservation", gin.H{
		"reservationId": rec.ReservationID.Hex(),
		"userId":        riderID.Hex(),
		"reservation":   rec.Reservation,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":     "Reservation added successfully",
		"reservation": rec,
	})
}

type DriverClaimRequest struct {
	Reservation     models.ReservationPayload `json:"reservation" binding:"required"`
	PaymentIntentID string                    `json:"paymentIntentId"`
	RideStatus      string                    `json:"rideStatus"` // Offered or Accepted, per caller intent
	UserID          string                    `json:"userId" binding:"required"`
	ReservationID   string                    `json:"reservationId" binding:"required"`
}

// DriverClaim mirrors a rider's reservation onto the claiming driver's
// account. A repeated claim for the same reservation id is a conflict.
func (h *ReservationHandler) DriverClaim(c *gin.Context) {
	driverID, err := primitive.ObjectIDFromHex(c.Param("driverId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid driver id"})
		return
	}

	var req DriverClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	riderID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}
	reservationID, err := primitive.ObjectIDFromHex(req.ReservationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid reservation id"})
		return
	}

	rec := models.ReservationRecord{
		Reservation:     req.Reservation,
		PaymentIntentID: req.PaymentIntentID,
		RideStatus:      req.RideStatus,
		UserID:          riderID,
		ReservationID:   reservationID,
	}

	rec, err = h.Lifecycle.DriverClaim(context.Background(), driverID, rec)
	if err != nil {
		switch err {
		case reservation.ErrAccountNotFound:
			c.JSON(http.StatusNotFound, gin.H{"message": "Driver not found"})
		case reservation.ErrAlreadyClaimed:
			c.JSON(http.StatusConflict, gin.H{"message": "Reservation already exists on this account"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to claim reservation"})
		}
		return
	}

	// The rider-side copy is a separate write owned by the rider's
	// client; only notify here.
	h.Hub.SendEvent(riderID.Hex(), "reservation_claimed", gin.H{
		"reservationId": reservationID.Hex(),
		"driverId":      driverID.Hex(),
		"rideStatus":    rec.RideStatus,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":     "Reservation accepted successfully",
		"reservation": rec,
	})
}

type UpdateReservationRequest struct {
	ReservationID string                    `json:"reservationId" binding:"required"`
	Reservation   models.ReservationPayload `json:"reservation" binding:"required"`
	RideStatus    string                    `json:"rideStatus" binding:"required"`
}

// updateReservation is the shared match-key-based in-place update for
// both sides. An unmatched reservation id modifies nothing; the response
// signals absence instead of failing.
func (h *ReservationHandler) updateReservation(c *gin.Context, accountParam string) {
	accountID, err := primitive.ObjectIDFromHex(c.Param(accountParam))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid account id"})
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	reservationID, err := primitive.ObjectIDFromHex(req.ReservationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid reservation id"})
		return
	}

	// The status enum is advisory. Look up the current record first so
	// off-workflow transitions can be reported, never rejected.
	statusWarning := ""
	current, err := h.Lifecycle.FindRecord(context.Background(), accountID, reservationID)
	if err != nil {
		if err == reservation.ErrAccountNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to look up reservation"})
		return
	}
	if current != nil {
		statusWarning = reservation.TransitionWarning(current.RideStatus, req.RideStatus)
	}

	matched, err := h.Lifecycle.UpdateStatus(context.Background(), accountID, reservationID, req.Reservation, req.RideStatus)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update reservation"})
		return
	}

	resp := gin.H{
		"matched":    matched,
		"rideStatus": req.RideStatus,
	}
	if !matched {
		resp["message"] = "No reservation matched the given id"
	} else {
		resp["message"] = "Reservation updated successfully"
	}
	if statusWarning != "" {
		resp["statusWarning"] = statusWarning
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateRiderReservation transitions a record on the rider's own array.
func (h *ReservationHandler) UpdateRiderReservation(c *gin.Context) {
	h.updateReservation(c, "userId")
}

// UpdateDriverReservation transitions a record on the driver's own array.
// The rider-side copy is untouched; the two copies share only the
// reservation id.
func (h *ReservationHandler) UpdateDriverReservation(c *gin.Context) {
	h.updateReservation(c, "driverId")
}
