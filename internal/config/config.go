// backend-go/internal/config/config.go
package config

import (
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Sheets    SheetsConfig
	Dashboard DashboardConfig
	Cache     CacheConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	LogLevel       string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// SheetsConfig points at the spreadsheet tabs the dashboard reads from.
// Ranges use A1 notation and skip the header row.
type SheetsConfig struct {
	CredentialsJSON         string
	SpreadsheetID           string
	SmartstoreRange         string
	OhouseRange             string
	YtshoppingRange         string
	MappingRange            string
	CommissionRange         string
	CommissionOverrideRange string
}

type DashboardConfig struct {
	// DataEpoch is the lower bound of the "all" period. The corpus has no
	// rows before this date; keep it configuration, not a constant.
	DataEpoch string
	// Display-only split of smartstore sales into sub-channels on the
	// channel breakdown view.
	RevenueSplitAds     float64
	RevenueSplitOrganic float64
}

type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	DashboardTTLSeconds int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_LOG_LEVEL", "info")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("SHEETS_CREDENTIALS_JSON", "")
		viper.SetDefault("SHEETS_SPREADSHEET_ID", "")
		viper.SetDefault("SHEETS_SMARTSTORE_RANGE", "smartstore!A2:Z")
		viper.SetDefault("SHEETS_OHOUSE_RANGE", "ohouse!A2:Z")
		viper.SetDefault("SHEETS_YTSHOPPING_RANGE", "ytshopping!A2:Z")
		viper.SetDefault("SHEETS_MAPPING_RANGE", "mapping!A2:F")
		viper.SetDefault("SHEETS_COMMISSION_RANGE", "commission!A2:D")
		viper.SetDefault("SHEETS_COMMISSION_OVERRIDE_RANGE", "commission_override!A2:E")
		viper.SetDefault("PERIOD_DATA_EPOCH", "2024-01-01")
		viper.SetDefault("REVENUE_SPLIT_ADS", 30.0)
		viper.SetDefault("REVENUE_SPLIT_ORGANIC", 70.0)
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_DASHBOARD_TTL_SECONDS", 60)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				LogLevel:       viper.GetString("SERVER_LOG_LEVEL"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Sheets: SheetsConfig{
				CredentialsJSON:         viper.GetString("SHEETS_CREDENTIALS_JSON"),
				SpreadsheetID:           viper.GetString("SHEETS_SPREADSHEET_ID"),
				SmartstoreRange:         viper.GetString("SHEETS_SMARTSTORE_RANGE"),
				OhouseRange:             viper.GetString("SHEETS_OHOUSE_RANGE"),
				YtshoppingRange:         viper.GetString("SHEETS_YTSHOPPING_RANGE"),
				MappingRange:            viper.GetString("SHEETS_MAPPING_RANGE"),
				CommissionRange:         viper.GetString("SHEETS_COMMISSION_RANGE"),
				CommissionOverrideRange: viper.GetString("SHEETS_COMMISSION_OVERRIDE_RANGE"),
			},
			Dashboard: DashboardConfig{
				DataEpoch:           viper.GetString("PERIOD_DATA_EPOCH"),
				RevenueSplitAds:     viper.GetFloat64("REVENUE_SPLIT_ADS"),
				RevenueSplitOrganic: viper.GetFloat64("REVENUE_SPLIT_ORGANIC"),
			},
			Cache: CacheConfig{
				Enabled:             viper.GetBool("CACHE_ENABLED"),
				RedisURL:            viper.GetString("REDIS_URL"),
				RedisHost:           viper.GetString("REDIS_HOST"),
				RedisPort:           viper.GetString("REDIS_PORT"),
				RedisPassword:       viper.GetString("REDIS_PASSWORD"),
				RedisDB:             viper.GetInt("REDIS_DB"),
				DashboardTTLSeconds: viper.GetInt("CACHE_DASHBOARD_TTL_SECONDS"),
			},
		}
	})

	return instance
}

// DataEpochTime parses the configured epoch. A bad value falls back to a
// distant past so the "all" window widens instead of hiding data.
func (c *Config) DataEpochTime() time.Time {
	t, err := time.ParseInLocation("2006-01-02", c.Dashboard.DataEpoch, time.Local)
	if err != nil {
		return time.Date(2000, 1, 1, 0, 0, 0, 0, time.Local)
	}
	return t
}
