package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"hostelhub_backend/internal/controller"
	"hostelhub_backend/internal/inquiry"
	"hostelhub_backend/internal/middleware"
	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/config"
	"hostelhub_backend/pkg/cron"
	"hostelhub_backend/pkg/database"
	"hostelhub_backend/pkg/email"
	"hostelhub_backend/pkg/seed"
	"hostelhub_backend/pkg/subscription"
	"hostelhub_backend/pkg/utils/jwt"
	"hostelhub_backend/pkg/utils/storage"
)

func setupRoutes(app *fiber.App, db *gorm.DB, jwtManager *jwt.Manager) {
	api := app.Group("/api")

	auth := middleware.AuthMiddleware(jwtManager)

	// Auth Routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", controller.Register)
	authGroup.Post("/login", controller.Login)
	authGroup.Post("/request-reset", controller.RequestPasswordReset)
	authGroup.Post("/reset-password", controller.ResetPassword)

	// Public Hostel Routes
	publicHostels := api.Group("/h")
	publicHostels.Get("/:username", controller.ListUserHostels)
	publicHostels.Get("/:username/:hostel_slug", controller.GetHostelBySlug)

	// Public inquiry form (hostel sahibinin planına göre gate'lenir)
	api.Post("/hostels/:hostel_id/inquiries",
		middleware.CheckFeatureAccess(db, subscription.InquiryForm),
		controller.CreateInquiry)

	// Hostel view recording
	api.Post("/hostels/:id/view", controller.RecordHostelView)

	// Protected Routes
	protected := api.Group("/", auth)
	protected.Get("/me", controller.GetMe)

	// Hostel management
	hostels := protected.Group("/hostels")
	hostels.Get("/my", controller.ListMyHostels)
	hostels.Post("/", middleware.CheckHostelLimit(db), controller.CreateHostel)
	hostels.Put("/:id", middleware.CheckHostelOwnership(db), controller.UpdateHostel)
	hostels.Delete("/:id", middleware.CheckHostelOwnership(db), controller.DeleteHostel)
	hostels.Post("/:hostel_id/images",
		middleware.CheckHostelOwnership(db),
		middleware.CheckImageLimit(db),
		controller.UploadHostelImage)
	hostels.Delete("/images/:image_id", controller.DeleteHostelImage)

	// Inquiry management (hostel scoped)
	hostels.Get("/:hostel_id/inquiries", middleware.CheckHostelOwnership(db), controller.ListHostelInquiries)

	// Inquiry analytics
	analytics := hostels.Group("/:hostel_id/analytics",
		middleware.CheckHostelOwnership(db),
		middleware.CheckFeatureAccess(db, subscription.InquiryAnalytics))
	analytics.Get("/overview", controller.GetInquiryOverview)
	analytics.Get("/funnel", controller.GetInquiryFunnel)
	analytics.Get("/sources", controller.GetInquirySourcePerformance)
	analytics.Get("/team", controller.GetInquiryTeamPerformance)
	analytics.Get("/trend", controller.GetInquiryDailyTrend)

	// Bookings (hostel scoped)
	bookings := hostels.Group("/:hostel_id/bookings", middleware.CheckHostelOwnership(db))
	bookings.Post("/", controller.CreateBooking)
	bookings.Get("/", controller.ListHostelBookings)
	bookings.Get("/:booking_id", controller.GetBooking)
	bookings.Put("/:booking_id/status", controller.UpdateBookingStatus)

	// Inquiry lifecycle
	inquiries := protected.Group("/inquiries")
	inquiries.Post("/bulk-assign",
		middleware.CheckFeatureAccess(db, subscription.BulkOperations),
		controller.BulkAssignInquiries)
	inquiries.Get("/:id", middleware.CheckInquiryAccess(db), controller.GetInquiry)
	inquiries.Put("/:id/status", middleware.CheckInquiryAccess(db), controller.UpdateInquiryStatus)
	inquiries.Put("/:id/assign", middleware.CheckInquiryAccess(db), controller.AssignInquiry)
	inquiries.Put("/:id/read", middleware.CheckInquiryAccess(db), controller.MarkInquiryAsRead)
	inquiries.Post("/:id/followups", middleware.CheckInquiryAccess(db), controller.RecordInquiryFollowUp)
	inquiries.Put("/followups/:followup_id/engagement", middleware.CheckFollowUpAccess(db), controller.UpdateFollowUpEngagement)
	inquiries.Post("/:id/convert", middleware.CheckInquiryAccess(db), controller.ConvertInquiry)
	inquiries.Post("/:id/reverse-conversion", middleware.CheckInquiryAccess(db), controller.ReverseInquiryConversion)
	inquiries.Delete("/:id", middleware.CheckInquiryAccess(db), controller.DeleteInquiry)

	// Dashboard routes
	dashboard := api.Group("/dashboard", auth)
	dashboard.Get("/stats", controller.GetDashboardStats)
	dashboard.Post("/stats/email", controller.SendInquiryStatsEmail)

	// Settings routes
	settings := api.Group("/settings", auth)
	settings.Get("/profile", controller.GetProfile)
	settings.Put("/profile", controller.UpdateProfile)
	settings.Post("/avatar", controller.UploadAvatar)

	// Subscription routes
	subscriptions := api.Group("/subscriptions")
	subscriptions.Get("/plans", controller.ListPlans)

	subProtected := subscriptions.Use(auth)
	subProtected.Get("/my", controller.GetMySubscription)
	subProtected.Post("/activate",
		middleware.RequireRoles(string(model.RoleAdmin)),
		controller.ActivateSubscription)
}

func main() {
	cfg := config.Load()

	if err := email.InitEmailService(cfg.Email.ResendAPIKey, cfg.Email.From); err != nil {
		log.Fatal("Could not initialize email service:", err)
	}

	if cfg.DB.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	db, err := database.Connect(cfg.DB.URL)
	if err != nil {
		log.Fatal("Could not connect to database:", err)
	}

	err = database.Migrate(db,
		&model.User{},
		&model.Subscription{},
		&model.UserSubscription{},
		&model.Hostel{},
		&model.HostelImage{},
		&model.HostelView{},
		&model.HostelStats{},
		&model.Inquiry{},
		&model.InquiryFollowUp{},
		&model.Booking{},
		&model.LoginHistory{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	seed.SeedSubscriptionPlans(db)
	if os.Getenv("SEED_DEMO") == "true" {
		seed.SeedDemoData(db)
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret)

	fileStore, err := storage.New(cfg.Storage.Bucket, cfg.Storage.Region)
	if err != nil {
		log.Fatal("Could not initialize file storage:", err)
	}

	inquirySvc := inquiry.NewService(db)
	inquiryAnalytics := inquiry.NewAnalytics(db)

	controller.Init(db, jwtManager, fileStore, inquirySvc, inquiryAnalytics, cfg.Server.BaseURL)

	cron.InitInquiryRescoreCron(inquirySvc)
	cron.InitFollowUpReminderCron(db)
	cron.InitSubscriptionExpiryCron(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app, db, jwtManager)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
