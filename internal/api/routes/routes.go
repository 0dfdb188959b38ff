// server/internal/api/routes/routes.go
package routes

import (
	"net/http"

	"ride-booking-api-server/config"
	"ride-booking-api-server/internal/api/handlers"
	"ride-booking-api-server/internal/api/middleware"
	"ride-booking-api-server/internal/cipher"
	"ride-booking-api-server/internal/mailer"
	"ride-booking-api-server/internal/models"
	"ride-booking-api-server/internal/payment"
	"ride-booking-api-server/internal/reservation"
	"ride-booking-api-server/internal/s3"
	"ride-booking-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires the handlers to the REST surface.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	billingCipher *cipher.Cipher,
	m *mailer.Mailer,
	payments *payment.Service,
	uploader *s3.Uploader,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	// Wrong verb on a known path is a 405, not a 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method Not Allowed"})
	})

	lifecycle := &reservation.Lifecycle{DB: db}

	quoteHandler := &handlers.QuoteHandler{DB: db}
	userHandler := &handlers.UserHandler{DB: db, Cipher: billingCipher, Mailer: m, SiteURL: cfg.Site.BaseURL}
	reservationHandler := &handlers.ReservationHandler{Lifecycle: lifecycle, Hub: wsHub}
	paymentHandler := &handlers.PaymentHandler{DB: db, Payments: payments}
	vehicleHandler := &handlers.VehicleHandler{DB: db, Uploader: uploader}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	api := router.Group("/api")
	{
		api.GET("/ws", webSocketHandler.ServeWs)

		// === QUOTE ROUTES ===
		quotes := api.Group("/quotes")
		{
			// The quoting flow runs before login; reads and creation are public.
			quotes.GET("/", quoteHandler.GetAllQuotes)
			quotes.GET("/search", quoteHandler.SearchQuotes)
			quotes.POST("/searchByDate", quoteHandler.SearchQuotesByDate)
			quotes.POST("/", quoteHandler.CreateQuote)
			quotes.GET("/:id", quoteHandler.GetQuote)

			// Only the admin side may overwrite quote fields wholesale.
			adminQuotes := quotes.Group("/")
			adminQuotes.Use(middleware.Authenticate())
			adminQuotes.Use(middleware.Authorize(models.RoleAdmin))
			{
				adminQuotes.PUT("/:id", quoteHandler.UpdateQuote)
			}
		}

		// === USER ROUTES ===
		user := api.Group("/user")
		{
			// Public routes
			user.POST("/register", userHandler.Register)
			user.POST("/login", userHandler.Login)
			user.POST("/forgot-password", userHandler.ForgotPassword)
			user.POST("/reset-password", userHandler.ResetPassword)
			user.POST("/find-account", userHandler.FindAccount)
			user.POST("/create-customer", paymentHandler.CreateCustomer)
			user.POST("/create-setup-intent", paymentHandler.CreateSetupIntent)
			user.POST("/searchReservation", userHandler.SearchReservation)
			user.POST("/searchByPhone", userHandler.SearchByPhone)

			// Protected routes
			protected := user.Group("/")
			protected.Use(middleware.Authenticate())
			{
				protected.POST("/change-password", userHandler.ChangePassword)
				protected.POST("/verify-password", userHandler.VerifyPassword)
				protected.POST("/create-checkout-session", paymentHandler.CreateCheckoutSession)
				protected.POST("/create-payment-intent", paymentHandler.CreatePaymentIntent)
				protected.POST("/get-payment-method", paymentHandler.GetPaymentMethod)

				protected.GET("/:id", userHandler.GetUserByID)
				protected.GET("/profile/:id", userHandler.GetUserProfile)
				protected.PUT("/profile/:id", userHandler.UpdateUserProfile)
				protected.PUT("/updateCompanyProfile/:id", userHandler.UpdateCompanyProfile)

				// Reservation lifecycle
				protected.PUT("/userProfile/:userId", reservationHandler.AttachToRider)
				protected.PUT("/reservation/:userId", reservationHandler.UpdateRiderReservation)

				driverOnly := protected.Group("/")
				driverOnly.Use(middleware.Authorize(models.RoleDriver, models.RoleAdmin))
				{
					driverOnly.PUT("/driverProfile/:driverId", reservationHandler.DriverClaim)
					driverOnly.PUT("/driverReservation/:driverId", reservationHandler.UpdateDriverReservation)
					driverOnly.PUT("/add-or-update-vehicle-details/:userId", vehicleHandler.AddOrUpdateVehicleDetails)
					driverOnly.POST("/vehicle-image/:userId", vehicleHandler.UploadVehicleImage)
				}

				// Admin routes
				admin := protected.Group("/")
				admin.Use(middleware.Authorize(models.RoleAdmin))
				{
					admin.GET("/users", userHandler.GetAllUsers)
					admin.GET("/getAllReservations", userHandler.GetAllReservations)
				}
			}
		}
	}

	return router
}
