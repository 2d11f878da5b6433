package main

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shoecrew/internal/config"
	"shoecrew/internal/http/handlers"
	applog "shoecrew/internal/log"
	"shoecrew/internal/mail"
	"shoecrew/internal/repos"
	"shoecrew/internal/services"
	"shoecrew/internal/storage"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := repos.Open(ctx, cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}

	mailer := mail.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	blobs, err := storage.NewS3(ctx, cfg.AWSRegion, cfg.AWSKeyID, cfg.AWSSecretKey, cfg.AWSBucket)
	if err != nil {
		log.Fatal(err)
	}
	verifier := &services.GoogleVerifier{ClientID: cfg.GoogleClientID}

	deps := handlers.NewDeps(db, cfg, mailer, blobs, verifier)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error"})
		},
	})
	// Room for the multipart product-create route; JSON routes get a
	// tighter guard below.
	app.Server().MaxRequestBodySize = 10 << 20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	cookieKey := cfg.CookieSecret
	if cookieKey == "" {
		cookieKey = encryptcookie.GenerateKey()
		log.Printf("[warn] COOKIE_SECRET not set; using an ephemeral key, sessions will not survive restarts")
	}
	app.Use(encryptcookie.New(encryptcookie.Config{Key: cookieKey}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many requests, please try again later"})
		},
	}))
	// JSON bodies stay small; only the product upload may be large.
	app.Use(func(c *fiber.Ctx) error {
		if len(c.Body()) > 1<<20 && !(c.Method() == fiber.MethodPost && strings.HasPrefix(c.Path(), "/products")) {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "body too large"})
		}
		return c.Next()
	})

	loginLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 15 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, please try again later"})
		},
	})

	// ---------- Routes ----------
	user := app.Group("/user")
	user.Post("/signup", loginLimiter, deps.AuthH.Signup)
	user.Post("/login", loginLimiter, deps.AuthH.Login)
	user.Post("/google-login", deps.AuthH.GoogleLogin)
	user.Post("/logout", deps.AuthH.Logout)
	user.Get("/profile", deps.AuthH.Profile)
	user.Post("/send-otp", deps.AuthH.SendOTP)
	user.Post("/verify-otp", deps.AuthH.VerifyOTP)

	products := app.Group("/products")
	products.Get("/all", deps.ProdH.All)
	products.Get("/:id", deps.ProdH.Get)
	products.Post("/", handlers.RequireAdmin(deps.Auth), deps.ProdH.Create)
	products.Put("/:id", handlers.RequireAdmin(deps.Auth), deps.ProdH.Update)
	products.Delete("/:id", handlers.RequireAdmin(deps.Auth), deps.ProdH.Delete)

	guest := app.Group("/guest")
	guest.Get("/", deps.GuestH.Ensure)
	guest.Get("/get", deps.GuestH.Which)

	cart := app.Group("/cart")
	cart.Post("/add", deps.CartH.Add)
	cart.Get("/", deps.CartH.Get)
	cart.Delete("/remove/:productId", deps.CartH.Remove)

	order := app.Group("/order")
	order.Post("/place", deps.OrderH.Place)
	order.Get("/my-order", deps.OrderH.Mine)
	order.Get("/all", handlers.RequireAdmin(deps.Auth), deps.OrderH.All)
	order.Put("/deliver/:id", handlers.RequireAdmin(deps.Auth), deps.OrderH.Deliver)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	log.Fatal(app.Listen(":" + cfg.Port))
}
