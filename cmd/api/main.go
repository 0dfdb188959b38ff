// server/cmd/api/main.go
package main

import (
	"log"

	"ride-booking-api-server/config"
	"ride-booking-api-server/internal/api/routes"
	"ride-booking-api-server/internal/auth"
	"ride-booking-api-server/internal/cipher"
	"ride-booking-api-server/internal/database"
	"ride-booking-api-server/internal/mailer"
	"ride-booking-api-server/internal/payment"
	"ride-booking-api-server/internal/s3"
	"ride-booking-api-server/internal/socket"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load .env (optional) then configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment and config.yaml")
	}
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	// 2. Install the JWT secret before anything issues or checks tokens
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT secret is required (JWT_SECRET)")
	}
	auth.Init(cfg.JWT.Secret, cfg.JWT.Expiration)

	// 3. Billing cipher; the server refuses to start without a key
	billingCipher, err := cipher.New(cfg.Cipher.Key)
	if err != nil {
		log.Fatalf("Could not initialize cipher: %v", err)
	}

	// 4. MongoDB
	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}
	if err := database.SeedAdmin(db); err != nil {
		log.Fatalf("Could not seed admin account: %v", err)
	}

	// 5. External capabilities
	payments := payment.New(cfg.Stripe.SecretKey, cfg.Site.BaseURL)
	mail := mailer.New(cfg.SMTP)
	uploader, err := s3.NewUploader(cfg.S3)
	if err != nil {
		log.Fatalf("Could not initialize S3 uploader: %v", err)
	}

	// 6. WebSocket hub for booking notifications
	wsHub := socket.NewHub()

	// 7. Router
	router := routes.SetupRouter(cfg, db, billingCipher, mail, payments, uploader, wsHub)

	// 8. Start server
	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
