package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

// Config holds everything the server reads from the environment.
type Config struct {
	HTTPAddr  string `envconfig:"HTTP_ADDR" default:":8080"`
	JWTSecret string `envconfig:"JWT_SECRET" default:""`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"helpdesk"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBName     string `envconfig:"DB_NAME" default:"helpdesk"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	SendGridKey string `envconfig:"SENDGRID_API_KEY" default:""`
	FromEmail   string `envconfig:"MAIL_FROM_EMAIL" default:"helpdesk@example.com"`
	FromName    string `envconfig:"MAIL_FROM_NAME" default:"IT Helpdesk"`
	BaseURL     string `envconfig:"BASE_URL" default:"http://localhost:8080"`

	TelegramBotToken  string `envconfig:"TELEGRAM_BOT_TOKEN" default:""`
	TelegramStaffChat int64  `envconfig:"TELEGRAM_STAFF_CHAT" default:"0"`

	AttachmentDir string `envconfig:"ATTACHMENT_DIR" default:"./attachments"`

	// MetricsRollupSpec is the cron schedule for the nightly metrics job.
	MetricsRollupSpec string `envconfig:"METRICS_ROLLUP_SPEC" default:"0 1 * * *"`
}

// Load reads the configuration from the environment.
func Load() Config {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.WithError(err).Error("load env err")
	}
	return cfg
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}
