// server/internal/models/common.go
package models

// Location is a map point with an optional free-text address. The same
// shape is used for pickup, destination, intermediate stop and the map pin.
type Location struct {
	Lat     float64 `bson:"lat" json:"lat"`
	Lng     float64 `bson:"lng" json:"lng"`
	Address string  `bson:"address,omitempty" json:"address,omitempty"`
}

// Address is a structured postal address, shared by the account profile
// and the company profile.
type Address struct {
	Line1      string `bson:"line1,omitempty" json:"line1,omitempty"`
	City       string `bson:"city,omitempty" json:"city,omitempty"`
	State      string `bson:"state,omitempty" json:"state,omitempty"`
	PostalCode string `bson:"postal_code,omitempty" json:"postal_code,omitempty"`
	Country    string `bson:"country,omitempty" json:"country,omitempty"`
}

// BillingDetails mirrors the card summary returned by the payment provider.
type BillingDetails struct {
	CardHolderName string `bson:"cardHolderName,omitempty" json:"cardHolderName,omitempty"`
	CardType       string `bson:"cardType,omitempty" json:"cardType,omitempty"` // e.g. "VISA", "MasterCard"
	ExpirationDate string `bson:"expirationDate,omitempty" json:"expirationDate,omitempty"` // MM/YY
	Last4          string `bson:"last4,omitempty" json:"last4,omitempty"`
}
