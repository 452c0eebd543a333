package main

import (
	"context"
	"net/http"
	"time"

	"helpdesk/backend/internal/api/handler"
	"helpdesk/backend/internal/attachments"
	"helpdesk/backend/internal/catalog"
	"helpdesk/backend/internal/config"
	"helpdesk/backend/internal/faq"
	"helpdesk/backend/internal/lifecycle"
	"helpdesk/backend/internal/livefeed"
	"helpdesk/backend/internal/models"
	"helpdesk/backend/internal/notify"
	"helpdesk/backend/internal/reporting"
	"helpdesk/backend/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Status{},
		&models.ComplaintType{},
		&models.Complaint{},
		&models.StatusHistory{},
		&models.Remark{},
		&models.ComplaintRemark{},
		&models.ComplaintClosing{},
		&models.ComplaintFeedback{},
		&models.FileAttachment{},
		&models.ComplaintMetrics{},
		&models.FAQCategory{},
		&models.FAQ{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Info("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Info("Starting Helpdesk Backend...")

	if err := godotenv.Load(); err != nil {
		log.Warn("Error loading .env file")
	}
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	cat := catalog.New(s)

	channels := []notify.Notifier{
		notify.NewEmailNotifier(cfg.FromEmail, cfg.FromName, cfg.BaseURL, cfg.SendGridKey, s),
	}
	if cfg.TelegramBotToken != "" {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramStaffChat)
		if err != nil {
			log.WithError(err).Error("telegram notifier disabled")
		} else {
			channels = append(channels, tg)
		}
	}
	dispatcher := notify.NewDispatcher(channels...)

	engine := lifecycle.NewService(s, cat, dispatcher)
	reports := reporting.NewService(s)

	att, err := attachments.NewService(s, cfg.AttachmentDir)
	if err != nil {
		log.Fatalf("Failed to prepare attachment storage: %v", err)
	}

	knowledgeBase := faq.NewService(s)

	hub := livefeed.NewHub(s)
	go hub.Run()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.MetricsRollupSpec, reports.RollupYesterday); err != nil {
		log.Fatalf("Invalid metrics rollup schedule: %v", err)
	}
	scheduler.Start()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.BaseURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := handler.NewHandler(s, engine, reports, att, knowledgeBase, hub, []byte(cfg.JWTSecret), cfg.BaseURL)
	h.Register(r)

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
