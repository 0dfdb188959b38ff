// server/internal/api/handlers/vehicle_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"ride-booking-api-server/internal/models"
	"ride-booking-api-server/internal/s3"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// VehicleHandler manages the fleet descriptors on driver accounts.
type VehicleHandler struct {
	DB       *mongo.Database
	Uploader *s3.Uploader
}

type VehicleDetailsRequest struct {
	ID               string              `json:"id"`
	Type             string              `json:"type" binding:"required"`
	Passengers       int                 `json:"passengers" binding:"required"`
	NumberOfVehicles int                 `json:"numberOfVehicles" binding:"required"`
	Images           map[string][]string `json:"images"`
}

// AddOrUpdateVehicleDetails upserts one fleet entry on the driver's
// account: a matching entry id updates in place, otherwise the entry is
// appended with a fresh id.
func (h *VehicleHandler) AddOrUpdateVehicleDetails(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	var req VehicleDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	collection := h.DB.Collection("users")

	detail := models.VehicleDetail{
		ID:               req.ID,
		Type:             req.Type,
		Passengers:       req.Passengers,
		NumberOfVehicles: req.NumberOfVehicles,
		Images:           req.Images,
	}

	if detail.ID != "" {
		// Update the existing fleet entry in place, matched by entry id.
		result, err := collection.UpdateOne(context.Background(),
			bson.M{"_id": userID, "vehiclesDetails.id": detail.ID},
			bson.M{"$set": bson.M{"vehiclesDetails.$": detail, "updatedAt": time.Now()}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update vehicle details"})
			return
		}
		if result.MatchedCount > 0 {
			c.JSON(http.StatusOK, gin.H{"message": "Vehicle details updated successfully", "vehicle": detail})
			return
		}
		// Fall through and append when the entry id is unknown.
	}

	if detail.ID == "" {
		detail.ID = fmt.Sprintf("VEH-%s", uuid.New().String()[:8])
	}

	result, err := collection.UpdateOne(context.Background(),
		bson.M{"_id": userID},
		bson.M{
			"$push": bson.M{"vehiclesDetails": detail},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add vehicle details"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle details added successfully", "vehicle": detail})
}

// UploadVehicleImage stores one vehicle image on S3 and returns its URL.
// The client then references the URL in add-or-update-vehicle-details.
func (h *VehicleHandler) UploadVehicleImage(c *gin.Context) {
	userID := c.Param("userId")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	objectKey := fmt.Sprintf("vehicles/%s/%s%s", userID, uuid.New().String(), filepath.Ext(fileHeader.Filename))
	url, err := h.Uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
