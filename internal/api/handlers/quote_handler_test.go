// server/internal/api/handlers/quote_handler_test.go
package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDateRangeEndDayIsInclusive(t *testing.T) {
	start, end, err := dateRange("2024-03-01", "2024-03-01")
	require.NoError(t, err)

	// A quote created at 23:59:00 on the end day is inside the range.
	lateSameDay := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	assert.False(t, lateSameDay.Before(start))
	assert.False(t, lateSameDay.After(end))

	// One created at 00:00:00 the following day is outside.
	nextMidnight := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.True(t, nextMidnight.After(end))
}

func TestDateRangeSpansMultipleDays(t *testing.T) {
	start, end, err := dateRange("2024-03-01", "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 5, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
}

func TestDateRangeRejectsBadInput(t *testing.T) {
	_, _, err := dateRange("03/01/2024", "2024-03-01")
	assert.Error(t, err)
	_, _, err = dateRange("2024-03-01", "yesterday")
	assert.Error(t, err)
}

func TestBuildSearchFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, buildSearchFilter("", ""))
	assert.Equal(t, bson.M{"selectedRide.carName": "Sedan"}, buildSearchFilter("Sedan", ""))
	assert.Equal(t, bson.M{"rideType": "one-way"}, buildSearchFilter("", "one-way"))
	assert.Equal(t,
		bson.M{"selectedRide.carName": "SUV", "rideType": "round-trip"},
		buildSearchFilter("SUV", "round-trip"))
}

// Validation failures are rejected before any storage access, so these
// run against a handler with no database behind it.
func newQuoteTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &QuoteHandler{}
	router := gin.New()
	router.POST("/quotes", h.CreateQuote)
	router.POST("/quotes/searchByDate", h.SearchQuotesByDate)
	router.PUT("/quotes/:id", h.UpdateQuote)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateQuoteRequiresLocations(t *testing.T) {
	router := newQuoteTestRouter()

	// Missing pickup entirely.
	w := doJSON(router, http.MethodPost, "/quotes", `{
		"destination": {"lat": 1, "lng": 2},
		"stop": {"lat": 1, "lng": 2},
		"mapLocation": {"lat": 1, "lng": 2},
		"persons": 2, "pickupDate": "2024-03-01", "pickupTime": "10:00",
		"rideType": "one-way", "userId": "u1"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Pickup present but lacking lng.
	w = doJSON(router, http.MethodPost, "/quotes", `{
		"pickup": {"lat": 40.0},
		"destination": {"lat": 1, "lng": 2},
		"stop": {"lat": 1, "lng": 2},
		"mapLocation": {"lat": 1, "lng": 2},
		"persons": 2, "pickupDate": "2024-03-01", "pickupTime": "10:00",
		"rideType": "one-way", "userId": "u1"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateQuoteAcceptsZeroCoordinates(t *testing.T) {
	// 0.0 is a present numeric coordinate; binding must not fail on it.
	var req CreateQuoteRequest
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/probe", func(c *gin.Context) {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	})

	w := doJSON(router, http.MethodPost, "/probe", `{
		"pickup": {"lat": 0, "lng": 0},
		"destination": {"lat": 1, "lng": 2},
		"stop": {"lat": 1, "lng": 2},
		"mapLocation": {"lat": 1, "lng": 2},
		"persons": 2, "pickupDate": "2024-03-01", "pickupTime": "10:00",
		"rideType": "one-way", "userId": "u1"
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, *req.Pickup.Lat)
	assert.Equal(t, 0.0, *req.Pickup.Lng)
}

func TestSearchByDateRejectsBadDates(t *testing.T) {
	router := newQuoteTestRouter()

	w := doJSON(router, http.MethodPost, "/quotes/searchByDate", `{"startDate": "2024-03-01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/quotes/searchByDate", `{"startDate": "bad", "endDate": "2024-03-01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateQuoteRejectsEmptyPayload(t *testing.T) {
	router := newQuoteTestRouter()

	w := doJSON(router, http.MethodPut, "/quotes/64f0c8aab79e5a0001234567", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// An _id alone does not count as an update.
	w = doJSON(router, http.MethodPut, "/quotes/64f0c8aab79e5a0001234567", `{"_id": "x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateQuoteRejectsBadID(t *testing.T) {
	router := newQuoteTestRouter()

	w := doJSON(router, http.MethodPut, "/quotes/not-an-object-id", `{"rideType": "round-trip"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
