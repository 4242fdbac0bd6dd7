package config

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, DriverSQLite, cfg.StoreDriver)
	require.Equal(t, "nailspa.db", cfg.SQLitePath)
	require.Equal(t, "Asia/Ho_Chi_Minh", cfg.ShopTimezone)
	require.Equal(t, "0 23 * * *", cfg.BackupSchedule)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL())
	require.False(t, cfg.AuthEnabled())
	require.False(t, cfg.SMSEnabled())
	require.Equal(t, []string{"http://localhost:3000"}, cfg.Origins())
}

func TestLoadConfigFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("JWT_EXPIRY_HOURS", "2")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DriverRedis, cfg.StoreDriver)
	require.Equal(t, 3, cfg.RedisDB)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
	require.Equal(t, 2*time.Hour, cfg.TokenTTL())
}

func TestValidate(t *testing.T) {
	base := Config{StoreDriver: DriverMemory, ShopTimezone: "UTC"}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.StoreDriver = "mongo" }},
		{"postgres without url", func(c *Config) { c.StoreDriver = DriverPostgres }},
		{"short secret", func(c *Config) { c.OwnerPassword = "pw"; c.JWTSecret = "short" }},
		{"bad phone", func(c *Config) { c.OwnerPhone = "call me" }},
		{"bad timezone", func(c *Config) { c.ShopTimezone = "Mars/Olympus" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestPerformanceLoggerFlagsSlowRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)

	r := gin.New()
	r.Use(PerformanceLogger(zap.New(core)))
	r.GET("/fast", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/slow", func(c *gin.Context) {
		time.Sleep(SlowRequestThreshold + 20*time.Millisecond)
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fast", nil))
	require.Equal(t, 0, logs.FilterMessage("slow request").Len())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/slow", nil))
	require.Equal(t, 1, logs.FilterMessage("slow request").Len())
	require.Equal(t, 2, logs.FilterMessage("request").Len())
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
