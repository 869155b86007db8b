package main

import (
	"context"
	"log"
	"time"

	"github.com/arzan03/CampDirectory/internal/config"
	"github.com/arzan03/CampDirectory/internal/db"
	"github.com/arzan03/CampDirectory/internal/handlers"
	"github.com/arzan03/CampDirectory/internal/middleware"
	"github.com/arzan03/CampDirectory/internal/services"
	"github.com/arzan03/CampDirectory/internal/storage"
	"github.com/arzan03/CampDirectory/internal/web"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Connect to MongoDB
	mongoDB := db.ConnectMongoDB(cfg.MongoURI, cfg.MongoDB)
	defer db.Disconnect(mongoDB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Fatalf("Index creation failed: %v", err)
	}
	cancel()

	// Photo storage backend
	photos, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("Storage error: %v", err)
	}

	// Initialize Fiber with the single error boundary
	app := fiber.New(fiber.Config{
		ErrorHandler: web.ErrorHandler,
		BodyLimit:    int(cfg.MaxFileUpload) * 2,
	})

	// Middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
	}))
	app.Static("/uploads", cfg.FileUploadPath)

	// Services
	authService := services.NewAuthService(mongoDB, cfg)
	bootcampService := services.NewBootcampService(mongoDB, photos, cfg)
	courseService := services.NewCourseService(mongoDB)
	reviewService := services.NewReviewService(mongoDB)
	userService := services.NewUserService(mongoDB)

	// Handlers and the authorization gate
	auth := middleware.NewAuth(mongoDB, cfg.JWTSecret)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	bootcampHandler := handlers.NewBootcampHandler(bootcampService)
	courseHandler := handlers.NewCourseHandler(courseService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	userHandler := handlers.NewUserHandler(userService)

	api := app.Group("/api/v1")

	// Auth routes
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/logout", authHandler.Logout)
	authRoutes.Get("/me", auth.Protect, authHandler.Me)
	authRoutes.Put("/updatedetails", auth.Protect, authHandler.UpdateDetails)
	authRoutes.Put("/updatepassword", auth.Protect, authHandler.UpdatePassword)

	publisherOrAdmin := auth.RequireRoles("publisher", "admin")
	userOrAdmin := auth.RequireRoles("user", "admin")

	// Bootcamp routes, with courses and reviews nested underneath
	bootcamps := api.Group("/bootcamps")
	bootcamps.Get("/", bootcampHandler.List)
	bootcamps.Post("/", auth.Protect, publisherOrAdmin, bootcampHandler.Create)
	bootcamps.Get("/:id", bootcampHandler.Get)
	bootcamps.Put("/:id", auth.Protect, publisherOrAdmin, bootcampHandler.Update)
	bootcamps.Delete("/:id", auth.Protect, publisherOrAdmin, bootcampHandler.Delete)
	bootcamps.Put("/:id/photo", auth.Protect, publisherOrAdmin, bootcampHandler.UploadPhoto)
	bootcamps.Get("/:bootcampId/courses", courseHandler.List)
	bootcamps.Post("/:bootcampId/courses", auth.Protect, publisherOrAdmin, courseHandler.Create)
	bootcamps.Get("/:bootcampId/reviews", reviewHandler.List)
	bootcamps.Post("/:bootcampId/reviews", auth.Protect, userOrAdmin, reviewHandler.Create)

	// Course routes
	courses := api.Group("/courses")
	courses.Get("/", courseHandler.List)
	courses.Get("/:id", courseHandler.Get)
	courses.Put("/:id", auth.Protect, publisherOrAdmin, courseHandler.Update)
	courses.Delete("/:id", auth.Protect, publisherOrAdmin, courseHandler.Delete)

	// Review routes
	reviews := api.Group("/reviews")
	reviews.Get("/", reviewHandler.List)
	reviews.Get("/:id", reviewHandler.Get)
	reviews.Put("/:id", auth.Protect, userOrAdmin, reviewHandler.Update)
	reviews.Delete("/:id", auth.Protect, userOrAdmin, reviewHandler.Delete)

	// User routes (admin only)
	users := api.Group("/users", auth.Protect, auth.RequireRoles("admin"))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	log.Printf("Server running in %s mode on port %s", cfg.Env, cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
