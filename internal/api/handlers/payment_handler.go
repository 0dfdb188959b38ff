// server/internal/api/handlers/payment_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"ride-booking-api-server/internal/models"
	"ride-booking-api-server/internal/payment"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PaymentHandler bridges the REST surface to the payment provider. The
// provider is opaque: required fields in, a resource id or provider
// error out.
type PaymentHandler struct {
	DB       *mongo.Database
	Payments *payment.Service
}

type CheckoutSessionRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
}

// CreateCheckoutSession opens a card-setup checkout session.
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var req CheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Customer ID is required"})
		return
	}

	sessionID, err := h.Payments.CreateCheckoutSession(req.CustomerID)
	if err != nil {
		log.Printf("Error creating checkout session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID})
}

type CreateCustomerRequest struct {
	Email  string `json:"email" binding:"required"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

// CreateCustomer registers the account with the payment provider and,
// when a userId is supplied, stores the customer reference on the
// account document.
func (h *PaymentHandler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	customerID, err := h.Payments.CreateCustomer(req.Email, req.Name)
	if err != nil {
		log.Printf("Payment provider error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating customer."})
		return
	}

	if req.UserID != "" {
		if id, idErr := primitive.ObjectIDFromHex(req.UserID); idErr == nil {
			_, err = h.DB.Collection("users").UpdateOne(context.Background(),
				bson.M{"_id": id},
				bson.M{"$set": bson.M{"stripeCustomerId": customerID, "updatedAt": time.Now()}},
			)
			if err != nil {
				log.Printf("Failed to store customer id on user %s: %v", req.UserID, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"stripeCustomerId": customerID})
}

type SetupIntentRequest struct {
	StripeCustomerID string `json:"stripeCustomerId" binding:"required"`
}

// CreateSetupIntent prepares off-session card storage.
func (h *PaymentHandler) CreateSetupIntent(c *gin.Context) {
	var req SetupIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Customer ID is required"})
		return
	}

	clientSecret, err := h.Payments.CreateSetupIntent(req.StripeCustomerID)
	if err != nil {
		log.Printf("Payment provider error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating setup intent."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"setupIntentClientSecret": clientSecret})
}

type PaymentIntentRequest struct {
	Amount           int64          `json:"amount" binding:"required"`
	StripeCustomerID string         `json:"stripeCustomerId" binding:"required"`
	PaymentMethodID  string         `json:"paymentMethodId" binding:"required"`
	CustomerName     string         `json:"customerName" binding:"required"`
	CustomerAddress  models.Address `json:"customerAddress" binding:"required"`
}

// CreatePaymentIntent charges a stored card off-session with the
// rider's name and address attached as shipping details.
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Amount, customer ID, payment method ID, customer name, and customer address are required"})
		return
	}

	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid amount"})
		return
	}

	intent, err := h.Payments.CreatePaymentIntent(req.Amount, req.StripeCustomerID, req.PaymentMethodID, req.CustomerName, req.CustomerAddress)
	if err != nil {
		log.Printf("Payment provider error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error charging customer."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"paymentIntent": intent})
}

type GetPaymentMethodRequest struct {
	PaymentMethodID string `json:"paymentMethodId" binding:"required"`
}

// GetPaymentMethod returns the stored card summary for display.
func (h *PaymentHandler) GetPaymentMethod(c *gin.Context) {
	var req GetPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment method ID is required"})
		return
	}

	pm, err := h.Payments.GetPaymentMethod(req.PaymentMethodID)
	if err != nil {
		log.Printf("Payment provider error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving payment method."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"paymentMethod": pm})
}
