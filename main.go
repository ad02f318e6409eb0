package main

import (
	"log"
	"time"

	"github.com/AhmedHajAhmed/Homi/config"
	"github.com/AhmedHajAhmed/Homi/models"
	"github.com/AhmedHajAhmed/Homi/routes"
	"github.com/AhmedHajAhmed/Homi/services"
	"github.com/AhmedHajAhmed/Homi/storage"
	"github.com/AhmedHajAhmed/Homi/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	db, err := storage.Open(cfg.DBConnectionString)
	if err != nil {
		log.Fatal("database: ", err)
	}
	redisClient := storage.NewRedis(cfg.RedisURL)

	signer := utils.NewTokenSigner(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		time.Duration(cfg.AccessTokenTTLHr)*time.Hour,
		time.Duration(cfg.RefreshTokenTTLHr)*time.Hour,
		redisClient,
	)

	notificationService := services.NewNotificationService(storage.NewNotificationStore(db))
	authService := services.NewAuthService(storage.NewUserStore(db))
	listingStore := storage.NewListingStore(db)
	listingService := services.NewListingService(listingStore)
	bookingStore := storage.NewBookingStore(db)
	bookingService := services.NewBookingService(bookingStore, listingStore, notificationService)
	messageService := services.NewMessageService(storage.NewMessageStore(db), bookingStore, notificationService)

	authHandler := routes.NewAuthHandler(authService, signer)
	listingHandler := routes.NewListingHandler(listingService)
	bookingHandler := routes.NewBookingHandler(bookingService)
	messageHandler := routes.NewMessageHandler(messageService, cfg.MessagePollSeconds)
	notificationHandler := routes.NewNotificationHandler(notificationService)

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	// JWT verifiers
	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(cfg.AccessTokenSecret))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifier.Extractors = append(accessTokenVerifier.Extractors, utils.CookieTokenExtractor)
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(cfg.RefreshTokenSecret))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		if err := ctx.ReadJSON(&tokenInput); err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	// Routes
	auth := app.Party("/api/auth")
	{
		auth.Post("/signup", authHandler.Register)
		auth.Post("/login", authHandler.Login)
		auth.Post("/refresh", refreshTokenVerifierMiddleware, authHandler.Refresh)
		auth.Post("/logout", authHandler.Logout)
		auth.Get("/me", accessTokenVerifierMiddleware, authHandler.Me)
		auth.Patch("/me", accessTokenVerifierMiddleware, authHandler.UpdateProfile)
	}

	listings := app.Party("/api/listings")
	{
		listings.Get("/", listingHandler.GetListings)
		listings.Get("/{id:uint}", listingHandler.GetListing)
		listings.Post("/", accessTokenVerifierMiddleware, utils.RequireRole(models.RoleHost), listingHandler.CreateListing)
		listings.Patch("/{id:uint}", accessTokenVerifierMiddleware, listingHandler.UpdateListing)
		listings.Delete("/{id:uint}", accessTokenVerifierMiddleware, listingHandler.DeleteListing)
	}

	bookings := app.Party("/api/bookings", accessTokenVerifierMiddleware)
	{
		bookings.Post("/", utils.RequireRole(models.RoleSeeker), bookingHandler.CreateBooking)
		bookings.Get("/", bookingHandler.GetBookings)
		bookings.Patch("/{id:uint}", bookingHandler.UpdateBookingStatus)
	}

	messages := app.Party("/api/messages", accessTokenVerifierMiddleware)
	{
		messages.Post("/", messageHandler.SendMessage)
		messages.Get("/", messageHandler.GetMessages)
		messages.Get("/unread-count", messageHandler.UnreadCount)
	}

	notifications := app.Party("/api/notifications", accessTokenVerifierMiddleware)
	{
		notifications.Get("/", notificationHandler.GetNotifications)
		notifications.Patch("/{id:uint}/read", notificationHandler.MarkNotificationRead)
	}

	app.Listen(cfg.Addr)
}
