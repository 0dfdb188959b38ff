// server/internal/reservation/lifecycle.go
package reservation

import (
	"context"
	"errors"
	"time"

	"ride-booking-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrAccountNotFound is returned when the target account does not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAlreadyClaimed is returned when a driver claims a reservation id
	// already present in their own reservation array.
	ErrAlreadyClaimed = errors.New("reservation already exists on this account")
)

// Lifecycle moves quotes into booked state and manages the two-sided
// (rider/driver) reservation records. Each account document is updated
// atomically on its own; the rider-side and driver-side copies of one
// reservation are two separate writes with no cross-document transaction.
type Lifecycle struct {
	DB *mongo.Database
}

func (l *Lifecycle) users() *mongo.Collection {
	return l.DB.Collection("users")
}

// AttachToRider appends a reservation record to the rider's own array.
// A missing rideStatus defaults to Pending, a missing reservationId is
// assigned. This path performs no duplicate check; repeating it appends
// a second copy.
func (l *Lifecycle) AttachToRider(ctx context.Context, riderID primitive.ObjectID, rec models.ReservationRecord) (models.ReservationRecord, error) {
	if rec.RideStatus == "" {
		rec.RideStatus = StatusPending
	}
	if rec.ReservationID.IsZero() {
		rec.ReservationID = primitive.NewObjectID()
	}

	result, err := l.users().UpdateOne(ctx,
		bson.M{"_id": riderID},
		bson.M{
			"$push": bson.M{"selectedReservations": rec},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return rec, err
	}
	if result.MatchedCount == 0 {
		return rec, ErrAccountNotFound
	}
	return rec, nil
}

// DriverClaim mirrors a reservation onto the driver's own array with the
// given status and a userId back-reference to the rider. The push is
// guarded inside the update filter itself, so two near-simultaneous
// claims by the same driver for the same reservation id cannot both
// succeed: the loser matches no document and gets ErrAlreadyClaimed.
func (l *Lifecycle) DriverClaim(ctx context.Context, driverID primitive.ObjectID, rec models.ReservationRecord) (models.ReservationRecord, error) {
	if rec.ReservationID.IsZero() {
		return rec, errors.New("reservationId is required")
	}
	if rec.RideStatus == "" {
		rec.RideStatus = StatusAccepted
	}

	var driver models.User
	err := l.users().FindOne(ctx, bson.M{"_id": driverID}).Decode(&driver)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return rec, ErrAccountNotFound
		}
		return rec, err
	}

	filter := bson.M{
		"_id":                                driverID,
		"selectedReservations.reservationId": bson.M{"$ne": rec.ReservationID},
	}
	update := bson.M{
		"$push": bson.M{"selectedReservations": rec},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := l.users().UpdateOne(ctx, filter, update)
	if err != nil {
		return rec, err
	}
	if result.ModifiedCount == 0 {
		// The driver exists, so the only way the filter misses is a
		// record with this reservation id already in the array.
		return rec, ErrAlreadyClaimed
	}
	return rec, nil
}

// UpdateStatus rewrites the embedded payload and rideStatus of the array
// entry whose reservationId matches, in place, on the given account.
// Entries are matched by reservation id, never by array index. When no
// entry matches, nothing is modified and matched=false is returned; the
// caller decides whether that is an error.
func (l *Lifecycle) UpdateStatus(ctx context.Context, accountID, reservationID primitive.ObjectID, payload models.ReservationPayload, newStatus string) (matched bool, err error) {
	filter := bson.M{
		"_id":                                accountID,
		"selectedReservations.reservationId": reservationID,
	}
	update := bson.M{
		"$set": bson.M{
			"selectedReservations.$.reservation": payload,
			"selectedReservations.$.rideStatus":  newStatus,
			"updatedAt":                          time.Now(),
		},
	}

	result, err := l.users().UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// FindRecord returns the reservation record with the given id from the
// account's array, for pre-update transition inspection.
func (l *Lifecycle) FindRecord(ctx context.Context, accountID, reservationID primitive.ObjectID) (*models.ReservationRecord, error) {
	var account models.User
	err := l.users().FindOne(ctx, bson.M{"_id": accountID}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	for i := range account.SelectedReservations {
		if account.SelectedReservations[i].ReservationID == reservationID {
			return &account.SelectedReservations[i], nil
		}
	}
	return nil, nil
}
