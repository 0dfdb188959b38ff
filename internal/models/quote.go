// server/internal/models/quote.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quote lifecycle tags. These track whether the quoting flow itself
// finished, independent of any booking status.
const (
	QuoteTypeIncomplete = "incomplete"
	QuoteTypeCompleted  = "completed"
	QuoteTypeAbandoned  = "abandoned"
)

// Notification channel options for a quote.
const (
	NotificationEmail        = "email"
	NotificationText         = "text"
	NotificationEmailAndText = "email and text"
)

// SelectedRide is the vehicle/pricing choice attached to a quote once
// the rider picks a car. totalRate is expected to equal
// baseRate+donation at creation time; it is not re-checked afterwards.
type SelectedRide struct {
	CarName   string  `bson:"carName" json:"carName"`
	BaseRate  float64 `bson:"baseRate" json:"baseRate"`
	Donation  float64 `bson:"donation" json:"donation"`
	TotalRate float64 `bson:"totalRate" json:"totalRate"`
	ImageURL  string  `bson:"imageUrl" json:"imageUrl"`
}

// RideQuote is a priced, not-yet-booked ride request. Quotes are never
// deleted; the admin update path may overwrite any field wholesale.
type RideQuote struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Pickup           Location           `bson:"pickup" json:"pickup"`
	Destination      Location           `bson:"destination" json:"destination"`
	Stop             Location           `bson:"stop" json:"stop"`
	Persons          int                `bson:"persons" json:"persons"`
	PickupDate       string             `bson:"pickupDate" json:"pickupDate"`
	PickupTime       string             `bson:"pickupTime" json:"pickupTime"`
	ReturnPickupTime string             `bson:"returnPickupTime,omitempty" json:"returnPickupTime,omitempty"`
	AdditionalInfo   string             `bson:"additionalInfo,omitempty" json:"additionalInfo,omitempty"`
	RideType         string             `bson:"rideType" json:"rideType"` // e.g. "one-way", "round-trip"
	NotificationType string             `bson:"notificationType" json:"notificationType"`
	QuoteType        string             `bson:"quoteType" json:"quoteType"`
	Status           string             `bson:"status" json:"status"`
	PaymentMethod    string             `bson:"paymentMethod" json:"paymentMethod"`
	MapLocation      Location           `bson:"mapLocation" json:"mapLocation"`
	SelectedRide     *SelectedRide      `bson:"selectedRide,omitempty" json:"selectedRide,omitempty"`
	UserID           string             `bson:"userId" json:"userId"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
