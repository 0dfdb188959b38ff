// server/internal/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account roles.
const (
	RoleUser   = "user"
	RoleDriver = "driver"
	RoleAdmin  = "admin"
)

// ReservationPayload is the denormalized copy of a quote embedded in a
// reservation record at booking time. It deliberately repeats the
// RideQuote fields instead of referencing the quote document: each side
// (rider, driver) keeps its own independently mutable copy.
type ReservationPayload struct {
	Pickup           Location      `bson:"pickup" json:"pickup"`
	Destination      Location      `bson:"destination" json:"destination"`
	Stop             Location      `bson:"stop" json:"stop"`
	Persons          int           `bson:"persons" json:"persons"`
	PickupDate       string        `bson:"pickupDate" json:"pickupDate"`
	PickupTime       string        `bson:"pickupTime" json:"pickupTime"`
	ReturnPickupTime string        `bson:"returnPickupTime,omitempty" json:"returnPickupTime,omitempty"`
	AdditionalInfo   string        `bson:"additionalInfo,omitempty" json:"additionalInfo,omitempty"`
	RideType         string        `bson:"rideType" json:"rideType"`
	NotificationType string        `bson:"notificationType,omitempty" json:"notificationType,omitempty"`
	Status           string        `bson:"status,omitempty" json:"status,omitempty"`
	PaymentMethod    string        `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	MapLocation      Location      `bson:"mapLocation" json:"mapLocation"`
	SelectedRide     *SelectedRide `bson:"selectedRide,omitempty" json:"selectedRide,omitempty"`
}

// ReservationRecord is one booked ride as stored on an account.
// ReservationID correlates the rider-side and driver-side copies; UserID
// on a driver-side record points back at the owning rider.
type ReservationRecord struct {
	Reservation     ReservationPayload `bson:"reservation" json:"reservation"`
	PaymentIntentID string             `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	RideStatus      string             `bson:"rideStatus" json:"rideStatus"`
	UserID          primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	ReservationID   primitive.ObjectID `bson:"reservationId,omitempty" json:"reservationId,omitempty"`
}

// CompanyProfile holds the optional operator details on driver accounts.
type CompanyProfile struct {
	BusinessName    string  `bson:"businessName,omitempty" json:"businessName,omitempty"`
	Address         Address `bson:"address,omitempty" json:"address,omitempty"`
	MetroArea       string  `bson:"metroArea,omitempty" json:"metroArea,omitempty"`
	OfficePhone     string  `bson:"officePhone,omitempty" json:"officePhone,omitempty"`
	CellPhone       string  `bson:"cellPhone,omitempty" json:"cellPhone,omitempty"`
	OperatorLicense string  `bson:"operatorLicense,omitempty" json:"operatorLicense,omitempty"`
	TaxID           string  `bson:"taxId,omitempty" json:"taxId,omitempty"`
	Area            string  `bson:"area,omitempty" json:"area,omitempty"`
	Notification    string  `bson:"notification,omitempty" json:"notification,omitempty"` // "By E-mail", "By Text", "By E-mail and Text"
	NLAMember       string  `bson:"nlaMember,omitempty" json:"nlaMember,omitempty"`       // "yes" / "no"
}

// VehicleDetail is one fleet descriptor on a driver account. Images maps
// an image slot name (e.g. "front", "interior") to uploaded URLs.
type VehicleDetail struct {
	ID               string              `bson:"id,omitempty" json:"id,omitempty"`
	Type             string              `bson:"type" json:"type"`
	Passengers       int                 `bson:"passengers" json:"passengers"`
	NumberOfVehicles int                 `bson:"numberOfVehicles" json:"numberOfVehicles"`
	Images           map[string][]string `bson:"images,omitempty" json:"images,omitempty"`
}

// User matches the account document in MongoDB. Riders accumulate
// reservations they booked; drivers accumulate reservations they
// accepted. Accounts are never hard-deleted.
type User struct {
	ID                      primitive.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Email                   string              `bson:"email" json:"email"`
	Password                string              `bson:"password" json:"-"`
	FirstName               string              `bson:"firstName" json:"firstName"`
	LastName                string              `bson:"lastName" json:"lastName"`
	Phone                   string              `bson:"phone" json:"phone"`
	Role                    string              `bson:"role" json:"role"`
	Address                 *Address            `bson:"address,omitempty" json:"address,omitempty"`
	BillingDetails          *BillingDetails     `bson:"billingDetails,omitempty" json:"billingDetails,omitempty"`
	StripeCustomerID        string              `bson:"stripeCustomerId,omitempty" json:"stripeCustomerId,omitempty"`
	PaymentMethodID         string              `bson:"paymentMethodId,omitempty" json:"paymentMethodId,omitempty"`
	SetupIntentClientSecret string              `bson:"setupIntentClientSecret,omitempty" json:"setupIntentClientSecret,omitempty"`
	ResetPasswordToken      string              `bson:"resetPasswordToken,omitempty" json:"-"`
	SelectedReservations    []ReservationRecord `bson:"selectedReservations,omitempty" json:"selectedReservations,omitempty"`
	CompanyProfile          *CompanyProfile     `bson:"companyProfile,omitempty" json:"companyProfile,omitempty"`
	VehiclesDetails         []VehicleDetail     `bson:"vehiclesDetails,omitempty" json:"vehiclesDetails,omitempty"`
	CreatedAt               time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt               time.Time           `bson:"updatedAt" json:"updatedAt"`
}
