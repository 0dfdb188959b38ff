// server/internal/api/handlers/quote_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"ride-booking-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QuoteHandler struct {
	DB *mongo.Database
}

// LocationRequest uses pointers so that 0.0 counts as present. Any
// numeric lat/lng is accepted; no range or geocoding validation.
type LocationRequest struct {
	Lat     *float64 `json:"lat" binding:"required"`
	Lng     *float64 `json:"lng" binding:"required"`
	Address string   `json:"address"`
}

func (r LocationRequest) toModel() models.Location {
	return models.Location{Lat: *r.Lat, Lng: *r.Lng, Address: r.Address}
}

type CreateQuoteRequest struct {
	Pickup           LocationRequest      `json:"pickup" binding:"required"`
	Destination      LocationRequest      `json:"destination" binding:"required"`
	Stop             LocationRequest      `json:"stop" binding:"required"`
	Persons          *int                 `json:"persons" binding:"required"`
	PickupDate       string               `json:"pickupDate" binding:"required"`
	PickupTime       string               `json:"pickupTime" binding:"required"`
	ReturnPickupTime string               `json:"returnPickupTime"`
	AdditionalInfo   string               `json:"additionalInfo"`
	RideType         string               `json:"rideType" binding:"required"`
	NotificationType string               `json:"notificationType"`
	PaymentMethod    string               `json:"paymentMethod"`
	MapLocation      LocationRequest      `json:"mapLocation" binding:"required"`
	SelectedRide     *models.SelectedRide `json:"selectedRide"`
	UserID           string               `json:"userId" binding:"required"`
}

// CreateQuote persists a new ride quote with the lifecycle tag defaulted
// to "incomplete". Date/time strings are stored as-is, not validated as
// calendar-correct.
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	now := time.Now()
	quote := models.RideQuote{
		Pickup:           req.Pickup.toModel(),
		Destination:      req.Destination.toModel(),
		Stop:             req.Stop.toModel(),
		Persons:          *req.Persons,
		PickupDate:       req.PickupDate,
		PickupTime:       req.PickupTime,
		ReturnPickupTime: req.ReturnPickupTime,
		AdditionalInfo:   req.AdditionalInfo,
		RideType:         req.RideType,
		NotificationType: req.NotificationType,
		QuoteType:        models.QuoteTypeIncomplete,
		Status:           "pending",
		PaymentMethod:    req.PaymentMethod,
		MapLocation:      req.MapLocation.toModel(),
		SelectedRide:     req.SelectedRide,
		UserID:           req.UserID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if quote.NotificationType == "" {
		quote.NotificationType = models.NotificationEmail
	}
	if quote.PaymentMethod == "" {
		quote.PaymentMethod = "cash"
	}

	collection := h.DB.Collection("ridequotes")
	result, err := collection.InsertOne(context.Background(), quote)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create quote"})
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		quote.ID = oid
	}

	c.JSON(http.StatusCreated, quote)
}

// GetAllQuotes returns every quote. Full-collection scan, no pagination.
func (h *QuoteHandler) GetAllQuotes(c *gin.Context) {
	collection := h.DB.Collection("ridequotes")

	cursor, err := collection.Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to query quotes"})
		return
	}
	defer cursor.Close(context.Background())

	var quotes []models.RideQuote
	if err = cursor.All(context.Background(), &quotes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode quotes"})
		return
	}

	if quotes == nil {
		quotes = []models.RideQuote{}
	}

	c.JSON(http.StatusOK, quotes)
}

// GetQuote returns a single quote by id.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid quote id"})
		return
	}

	collection := h.DB.Collection("ridequotes")
	var quote models.RideQuote
	err = collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&quote)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Quote not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve quote"})
		}
		return
	}

	c.JSON(http.StatusOK, quote)
}

// buildSearchFilter builds the quote search filter from the optional
// vehicleType and rideType parameters. Both absent means match all.
func buildSearchFilter(vehicleType, rideType string) bson.M {
	filter := bson.M{}
	if vehicleType != "" {
		filter["selectedRide.carName"] = vehicleType
	}
	if rideType != "" {
		filter["rideType"] = rideType
	}
	return filter
}

// SearchQuotes filters quotes by selected-vehicle name and/or ride type.
func (h *QuoteHandler) SearchQuotes(c *gin.Context) {
	filter := buildSearchFilter(c.Query("vehicleType"), c.Query("rideType"))

	collection := h.DB.Collection("ridequotes")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to search quotes"})
		return
	}
	defer cursor.Close(context.Background())

	var quotes []models.RideQuote
	if err = cursor.All(context.Background(), &quotes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode quotes"})
		return
	}

	if quotes == nil {
		quotes = []models.RideQuote{}
	}

	c.JSON(http.StatusOK, quotes)
}

type SearchByDateRequest struct {
	StartDate     string `json:"startDate" binding:"required"`
	EndDate       string `json:"endDate" binding:"required"`
	OnlyCompleted bool   `json:"onlyCompleted"`
}

// dateRange parses "2006-01-02" bounds and rounds the end date up to
// 23:59:59.999 so the end day is inclusive at day granularity.
func dateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999000000, end.Location())
	return start, end, nil
}

// SearchQuotesByDate returns the quotes created inside an inclusive date
// range, optionally restricted to finished quoting flows. Zero matches is
// an empty 200, not a 404.
func (h *QuoteHandler) SearchQuotesByDate(c *gin.Context) {
	var req SearchByDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	start, end, err := dateRange(req.StartDate, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Dates must be in YYYY-MM-DD format"})
		return
	}

	filter := bson.M{"createdAt": bson.M{"$gte": start, "$lte": end}}
	if req.OnlyCompleted {
		filter["quoteType"] = models.QuoteTypeCompleted
	}

	collection := h.DB.Collection("ridequotes")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to search quotes"})
		return
	}
	defer cursor.Close(context.Background())

	var quotes []models.RideQuote
	if err = cursor.All(context.Background(), &quotes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode quotes"})
		return
	}

	if quotes == nil {
		quotes = []models.RideQuote{}
	}

	c.JSON(http.StatusOK, quotes)
}

// UpdateQuote performs a whole-object field merge: provided keys
// overwrite, unset keys keep their prior value. The admin side can
// overwrite any field through this path.
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid quote id"})
		return
	}

	var partial map[string]interface{}
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	delete(partial, "_id")
	if len(partial) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Update payload must not be empty"})
		return
	}
	partial["updatedAt"] = time.Now()

	collection := h.DB.Collection("ridequotes")
	var updated models.RideQuote
	err = collection.FindOneAndUpdate(
		context.Background(),
		bson.M{"_id": id},
		bson.M{"$set": partial},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Quote not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update quote"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}
