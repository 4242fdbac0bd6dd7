package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"nailspa-backend/utils"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Storage.
	StoreDriver string `mapstructure:"STORE_DRIVER"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`
	DatabaseURL string `mapstructure:"DB_URL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	ShopTimezone   string `mapstructure:"SHOP_TIMEZONE"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	// Owner login.
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	JWTExpiryHours int    `mapstructure:"JWT_EXPIRY_HOURS"`
	OwnerPassword  string `mapstructure:"OWNER_PASSWORD"`

	// Scheduled jobs.
	BackupDir       string `mapstructure:"BACKUP_DIR"`
	BackupSchedule  string `mapstructure:"BACKUP_SCHEDULE"`
	SummarySchedule string `mapstructure:"SUMMARY_SCHEDULE"`

	TwilioAccountSID  string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber string `mapstructure:"TWILIO_PHONE_NUMBER"`
	TwilioWhatsApp    string `mapstructure:"TWILIO_WHATSAPP_NUMBER"`
	OwnerPhone        string `mapstructure:"OWNER_PHONE"`
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

var defaults = map[string]interface{}{
	"APP_PORT":               "8080",
	"ENV":                    "development",
	"LOG_LEVEL":              "info",
	"STORE_DRIVER":           DriverSQLite,
	"SQLITE_PATH":            "nailspa.db",
	"DB_URL":                 "",
	"REDIS_ADDR":             "localhost:6379",
	"REDIS_PASSWORD":         "",
	"REDIS_DB":               0,
	"SHOP_TIMEZONE":          "Asia/Ho_Chi_Minh",
	"ALLOWED_ORIGINS":        "http://localhost:3000",
	"JWT_SECRET":             "",
	"JWT_EXPIRY_HOURS":       24,
	"OWNER_PASSWORD":         "",
	"BACKUP_DIR":             "",
	"BACKUP_SCHEDULE":        "0 23 * * *",
	"SUMMARY_SCHEDULE":       "0 21 * * *",
	"TWILIO_ACCOUNT_SID":     "",
	"TWILIO_AUTH_TOKEN":      "",
	"TWILIO_PHONE_NUMBER":    "",
	"TWILIO_WHATSAPP_NUMBER": "",
	"OWNER_PHONE":            "",
}

// LoadConfig reads .env, an optional config.yaml and the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite, DriverRedis:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DB_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.OwnerPassword != "" && len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters when OWNER_PASSWORD is set")
	}
	if c.OwnerPhone != "" && !utils.ValidatePhone(c.OwnerPhone) {
		return fmt.Errorf("invalid OWNER_PHONE %q", c.OwnerPhone)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the shop time zone used for dates and periods.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ShopTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid SHOP_TIMEZONE %q: %w", c.ShopTimezone, err)
	}
	return loc, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c Config) TokenTTL() time.Duration {
	if c.JWTExpiryHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.JWTExpiryHours) * time.Hour
}

func (c Config) AuthEnabled() bool {
	return c.OwnerPassword != ""
}

func (c Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.OwnerPhone != ""
}
