package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Data source types
const (
	DataJSON   = "json"
	DataSQLite = "sqlite"
)

// Calendar source types
const (
	CalendarSwedish = "swedish"
	CalendarFile    = "file"
	CalendarICS     = "ics"
	CalendarHTTP    = "http"
)

// Config represents application configuration
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	View     ViewConfig     `mapstructure:"view"`
	Log      LogConfig      `mapstructure:"log"`
}

// DataConfig points at the exported time entries
type DataConfig struct {
	Type string `mapstructure:"type"` // "json" or "sqlite", guessed from the extension when empty
	File string `mapstructure:"file"`
}

// CalendarConfig represents holiday source configuration
type CalendarConfig struct {
	Type     string `mapstructure:"type"`    // "swedish", "file", "ics" or "http"
	File     string `mapstructure:"file"`    // holiday list for "file" and "ics", fallback for "http"
	APIURL   string `mapstructure:"api_url"` // template with {year} and {country}
	Country  string `mapstructure:"country"`
	CacheTTL string `mapstructure:"cache_ttl"`
}

// ViewConfig controls the month grid
type ViewConfig struct {
	ShowWeekends bool   `mapstructure:"show_weekends"`
	Timezone     string `mapstructure:"timezone"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.tidrapport")
	}

	setDefaults(v)

	// TIDRAPPORT_DATA_FILE overrides data.file and so on
	v.SetEnvPrefix("tidrapport")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

var envKeyReplacer = strings.NewReplacer(".", "_")

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(v *viper.Viper) {
	v.SetDefault("data.type", "")
	v.SetDefault("data.file", "")
	v.SetDefault("calendar.file", "")
	v.SetDefault("calendar.api_url", "")
	v.SetDefault("view.timezone", "")
	v.SetDefault("log.file", "")
	v.SetDefault("calendar.type", CalendarSwedish)
	v.SetDefault("calendar.country", "SE")
	v.SetDefault("calendar.cache_ttl", "24h")
	v.SetDefault("view.show_weekends", true)
	v.SetDefault("log.level", "info")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Data.File == "" {
		return fmt.Errorf("data.file is required")
	}
	switch c.Data.GetType() {
	case DataJSON, DataSQLite:
	default:
		return fmt.Errorf("data.type must be json or sqlite, got '%s'", c.Data.Type)
	}

	switch c.Calendar.Type {
	case "", CalendarSwedish:
	case CalendarFile, CalendarICS:
		if c.Calendar.File == "" {
			return fmt.Errorf("calendar.file is required for %s type", c.Calendar.Type)
		}
	case CalendarHTTP:
		if c.Calendar.Country == "" {
			return fmt.Errorf("calendar.country is required for http type")
		}
	default:
		return fmt.Errorf("calendar.type must be one of swedish, file, ics, http, got '%s'", c.Calendar.Type)
	}

	if c.Calendar.CacheTTL != "" {
		if _, err := time.ParseDuration(c.Calendar.CacheTTL); err != nil {
			return fmt.Errorf("calendar.cache_ttl: %w", err)
		}
	}

	if _, err := c.View.Location(); err != nil {
		return err
	}

	return nil
}

// GetType returns the data type, guessing from the file extension when unset
func (c *DataConfig) GetType() string {
	if c.Type != "" {
		return strings.ToLower(c.Type)
	}
	switch strings.ToLower(filepath.Ext(c.File)) {
	case ".db", ".sqlite", ".sqlite3":
		return DataSQLite
	default:
		return DataJSON
	}
}

// GetType returns the calendar type, defaulting to swedish
func (c *CalendarConfig) GetType() string {
	if c.Type == "" {
		return CalendarSwedish
	}
	return c.Type
}

// GetCacheTTL returns cache TTL duration
func (c *CalendarConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}

// Location returns the configured time zone, or the local one when unset
func (c *ViewConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("view.timezone: %w", err)
	}
	return loc, nil
}

// GetLevel returns the log level, defaulting to info
func (c *LogConfig) GetLevel() string {
	if c.Level == "" {
		return "info"
	}
	return c.Level
}

// ExpandEnvVars expands environment variables in paths and URLs
func (c *Config) ExpandEnvVars() {
	c.Data.File = os.ExpandEnv(c.Data.File)
	c.Calendar.File = os.ExpandEnv(c.Calendar.File)
	c.Calendar.APIURL = os.ExpandEnv(c.Calendar.APIURL)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
