package main // Entry point package

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/sixphrase/slot-reservation/internal/booking"
	"github.com/sixphrase/slot-reservation/internal/config"
	"github.com/sixphrase/slot-reservation/internal/database"
	"github.com/sixphrase/slot-reservation/internal/handler"
	"github.com/sixphrase/slot-reservation/internal/model"
	"github.com/sixphrase/slot-reservation/internal/queue"
	"github.com/sixphrase/slot-reservation/internal/repository"
	"github.com/sixphrase/slot-reservation/internal/router"
	"github.com/sixphrase/slot-reservation/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Redis is optional; rate limiting and response caching degrade to
	// pass-through when it is absent.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiter disabled")
	}

	settingsRepo := repository.NewSettingsRepo(db)
	slotRepo := repository.NewSlotRepo(db)
	submissionRepo := repository.NewSubmissionRepo(db)
	departmentRepo := repository.NewDepartmentRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := seedAll(ctx, db, userRepo, cfg); err != nil {
		cancel()
		log.Fatalf("seed: %v", err)
	}
	cancel()

	bookingSvc := booking.NewService(settingsRepo, submissionRepo, cfg.SubmitTimeout)

	var events *service.EventPublisher
	if cfg.RabbitURL != "" {
		events = service.NewEventPublisher(cfg.RabbitURL)
		go func() {
			if err := queue.StartSubmissionConsumer(cfg.RabbitURL); err != nil {
				log.Printf("submission consumer stopped: %v", err)
			}
		}()
	}

	h := router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, userRepo, tokenRepo),
		Slots:       handler.NewSlotHandler(slotRepo),
		Departments: handler.NewDepartmentHandler(departmentRepo),
		Submissions: handler.NewSubmissionHandler(bookingSvc, submissionRepo, departmentRepo, events),
		Admin:       handler.NewAdminHandler(cfg, db, settingsRepo, slotRepo, submissionRepo, departmentRepo, userRepo),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, h, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// seedAll runs the idempotent startup seeds: the 18 ledger rows, the
// settings singleton and, when configured, the bootstrap admin.
func seedAll(ctx context.Context, db *sql.DB, users *repository.UserRepo, cfg config.Config) error {
	if err := database.SeedSlots(ctx, db, cfg.SlotCapacity); err != nil {
		return err
	}
	if err := database.SeedSettings(ctx, db); err != nil {
		return err
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	n, err := users.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := users.Create(ctx, cfg.AdminEmail, cfg.AdminPassword, model.RoleAdmin, nil, cfg.BcryptCost); err != nil {
		return err
	}
	log.Printf("bootstrap admin %s created", cfg.AdminEmail)
	return nil
}
