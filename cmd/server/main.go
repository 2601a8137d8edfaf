package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"callboard/internal/api"
	"callboard/internal/events"
	"callboard/internal/repository"
	"callboard/internal/service"
	"callboard/internal/tracing"
	_ "callboard/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	api.SetupGlobalHandler("callboard-api")

	shutdownTracer, err := tracing.InitTracerProvider("callboard-api")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations()
		return
	}

	db := connectDB()
	defer db.Close()

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	eventPublisher, err := events.NewNatsPublisher(natsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	log.Println("Successfully connected to NATS.")

	userRepo := repository.NewPostgresUserRepository(db)
	tokenRepo := repository.NewPostgresTokenRepository(db)
	adRepo := repository.NewPostgresAdRepository(db)
	responseRepo := repository.NewPostgresResponseRepository(db)
	subscriptionRepo := repository.NewPostgresSubscriptionRepository(db)

	authService := service.NewAuthService(userRepo, tokenRepo)
	adService := service.NewAdService(adRepo)
	responseService := service.NewResponseService(responseRepo, adRepo, eventPublisher)
	newsletterService := service.NewNewsletterService(subscriptionRepo, eventPublisher)

	authHandler := api.NewAuthHandler(authService)
	adHandler := api.NewAdHandler(adService)
	responseHandler := api.NewResponseHandler(responseService)
	newsletterHandler := api.NewNewsletterHandler(newsletterService)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "callboard-api"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authHandler.Logout)

	userRoutes := v1.Group("/users")
	userRoutes.Use(api.AuthMiddleware())
	userRoutes.Get("/me", authHandler.GetUserProfile)

	v1.Get("/categories", adHandler.GetCategories)

	adRoutes := v1.Group("/ads")
	adRoutes.Get("/", adHandler.ListAds)
	adRoutes.Get("/:id", adHandler.GetAd)
	adRoutes.Post("/", api.AuthMiddleware(), adHandler.CreateAd)
	adRoutes.Put("/:id", api.AuthMiddleware(), adHandler.UpdateAd)
	adRoutes.Delete("/:id", api.AuthMiddleware(), adHandler.DeleteAd)
	adRoutes.Post("/:id/responses", api.AuthMiddleware(), responseHandler.CreateResponse)

	responseRoutes := v1.Group("/responses")
	responseRoutes.Use(api.AuthMiddleware())
	responseRoutes.Get("/", responseHandler.ListResponses)
	responseRoutes.Get("/:id", responseHandler.GetResponse)
	responseRoutes.Post("/:id/accept", responseHandler.AcceptResponse)
	responseRoutes.Delete("/:id", responseHandler.DeleteResponse)

	newsletterRoutes := v1.Group("/newsletter")
	newsletterRoutes.Use(api.AuthMiddleware())
	newsletterRoutes.Put("/subscription", newsletterHandler.SetSubscription)
	newsletterRoutes.Post("/issues", newsletterHandler.PublishIssue)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8001"
	}

	log.Printf("Listening callboard-api on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func connectDB() *sqlx.DB {
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)

	db, err := sqlx.Connect("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations() {
	fmt.Println("Running database migrations...")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
