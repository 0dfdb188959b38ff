// server/internal/reservation/lifecycle_test.go
package reservation

import (
	"context"
	"testing"

	"ride-booking-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func claimRecord(riderID, reservationID primitive.ObjectID) models.ReservationRecord {
	return models.ReservationRecord{
		Reservation: models.ReservationPayload{
			Pickup:      models.Location{Lat: 40.7, Lng: -74.0},
			Destination: models.Location{Lat: 40.8, Lng: -73.9},
			Persons:     2,
			PickupDate:  "2024-03-01",
			PickupTime:  "10:00",
			RideType:    "one-way",
		},
		RideStatus:    StatusAccepted,
		UserID:        riderID,
		ReservationID: reservationID,
	}
}

func TestDriverClaim(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	driverID := primitive.NewObjectID()
	riderID := primitive.NewObjectID()
	reservationID := primitive.NewObjectID()
	driverDoc := bson.D{
		{Key: "_id", Value: driverID},
		{Key: "email", Value: "driver@example.com"},
		{Key: "role", Value: models.RoleDriver},
	}

	mt.Run("first claim succeeds", func(mt *mtest.T) {
		lc := &Lifecycle{DB: mt.DB}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "ridebooking.users", mtest.FirstBatch, driverDoc),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 1},
			),
		)

		rec, err := lc.DriverClaim(context.Background(), driverID, claimRecord(riderID, reservationID))
		require.NoError(mt.T, err)
		assert.Equal(mt.T, reservationID, rec.ReservationID)
		assert.Equal(mt.T, StatusAccepted, rec.RideStatus)
	})

	mt.Run("repeated claim for the same reservation id is a conflict", func(mt *mtest.T) {
		lc := &Lifecycle{DB: mt.DB}
		// The guarded filter misses the document when the reservation id
		// is already in the driver's array, so nothing is modified.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "ridebooking.users", mtest.FirstBatch, driverDoc),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 0},
				bson.E{Key: "nModified", Value: 0},
			),
		)

		_, err := lc.DriverClaim(context.Background(), driverID, claimRecord(riderID, reservationID))
		assert.ErrorIs(mt.T, err, ErrAlreadyClaimed)
	})

	mt.Run("unknown driver", func(mt *mtest.T) {
		lc := &Lifecycle{DB: mt.DB}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "ridebooking.users", mtest.FirstBatch),
		)

		_, err := lc.DriverClaim(context.Background(), driverID, claimRecord(riderID, reservationID))
		assert.ErrorIs(mt.T, err, ErrAccountNotFound)
	})

	mt.Run("missing reservation id is rejected before any write", func(mt *mtest.T) {
		lc := &Lifecycle{DB: mt.DB}
		rec := claimRecord(riderID, reservationID)
		rec.ReservationID = primitive.NilObjectID

		_, err := lc.DriverClaim(context.Background(), driverID, rec)
		assert.Error(mt.T, err)
	})
}

func TestUpdateStatusUnmatchedIsNoOp(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no entry with the given reservation id", func(mt *mtest.T) {
		lc := &Lifecycle{DB: mt.DB}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 0},
				bson.E{Key: "nModified", Value: 0},
			),
		)

		matched, err := lc.UpdateStatus(context.Background(),
			primitive.NewObjectID(), primitive.NewObjectID(),
			models.ReservationPayload{}, StatusConfirmed)
		require.NoError(mt.T, err)
		assert.False(mt.T, matched)
	})
}
