package main

import (
	"log"
	"time"

	"github.com/Dasakami/course-wor-ruslan/auth"
	config "github.com/Dasakami/course-wor-ruslan/configs"
	"github.com/Dasakami/course-wor-ruslan/database"
	"github.com/Dasakami/course-wor-ruslan/handlers"
	"github.com/Dasakami/course-wor-ruslan/jobs"
	"github.com/Dasakami/course-wor-ruslan/notifications"
	"github.com/Dasakami/course-wor-ruslan/routes"
	"github.com/Dasakami/course-wor-ruslan/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	tokens := auth.NewTokenService(
		config.Config("JWT_SECRET"),
		config.ConfigInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		config.ConfigInt("REFRESH_TOKEN_EXPIRE_DAYS", 7),
	)

	availabilityService := services.NewAvailabilityService(database.DB)
	bookingService := services.NewBookingService(database.DB, notifications.NewEmailNotifier(), true)

	authHandler := &handlers.AuthHandler{DB: database.DB, Tokens: tokens}
	teacherHandler := &handlers.TeacherHandler{DB: database.DB, Availability: availabilityService}
	bookingHandler := &handlers.BookingHandler{Bookings: bookingService}

	c := cron.New()
	c.AddFunc("*/10 * * * *", func() { jobs.ReleaseStalePendingBookings(database.DB) })
	go c.Start()
	log.Println("✅ Cron job for stale bookings scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "Teacher Schedule Manager",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.AuthRoutes(app, authHandler, database.DB, tokens)
	routes.TeacherRoutes(app, teacherHandler, database.DB, tokens)
	routes.BookingRoutes(app, bookingHandler, database.DB, tokens)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.Config("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
