package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/marwa-agamy/collegeSystem-app/internal/email"
	"github.com/marwa-agamy/collegeSystem-app/internal/handler"
	"github.com/marwa-agamy/collegeSystem-app/internal/middleware"
	"github.com/marwa-agamy/collegeSystem-app/internal/repository/postgres"
	"github.com/marwa-agamy/collegeSystem-app/internal/repository/redisstore"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (customValidator *CustomValidator) Validate(i interface{}) error {
	if err := customValidator.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// @title College System API
// @version 1.0
// @description University administration backend: users, enrollment, grading, exams, fees and messaging

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api
// @schemes https http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	godotenv.Load()
	e := echo.New()

	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.PATCH},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		panic("DATABASE_URL not set")
	}

	storage, err := postgres.NewConnection(connString)
	if err != nil {
		panic(err)
	}
	defer storage.Close()

	if err := storage.Migrate(context.Background()); err != nil {
		panic(err)
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	codes := redisstore.NewCodeStore(redisAddr, 10*time.Minute)
	defer codes.Close()

	var mailer email.Service
	if apiKey := os.Getenv("SENDGRID_API_KEY"); apiKey != "" {
		mailer = email.NewSendgrid(apiKey, os.Getenv("MAIL_FROM"))
	} else {
		mailer = email.NewConsole()
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	authMiddleware := middleware.JWTAuth()
	handler.SetupAuthRoutes(e, storage, codes, mailer, authMiddleware)
	handler.SetupStudentRoutes(e, storage, authMiddleware)
	handler.SetupAdminRoutes(e, storage, authMiddleware)
	handler.SetupGPARoutes(e, storage, authMiddleware)
	handler.SetupAnnouncementRoutes(e, storage, authMiddleware)
	handler.SetupFeeRoutes(e, storage, authMiddleware)
	handler.SetupMessageRoutes(e, storage, authMiddleware)
	handler.SetupComplaintRoutes(e, storage, authMiddleware)

	go finalizeTerms(e, storage)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}

// finalizeTerms periodically sweeps graded registrations out of the
// current-term rosters. Each student commits independently, so the sweep
// is safe to run alongside live requests.
func finalizeTerms(e *echo.Echo, storage *postgres.Storage) {
	interval := 24 * time.Hour
	if raw := os.Getenv("TERM_ROLLOVER_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			interval = parsed
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if err := storage.FinalizeTerm(context.Background()); err != nil {
			e.Logger.Errorf("term finalize sweep: %v", err)
		}
	}
}
