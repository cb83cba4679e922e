package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds environment driven configuration values.
// Secrets never have defaults inside code and must come from .env or the environment.
type AppConfig struct {
	AppName            string
	AppPort            string
	AppKey             string
	AppURL             string
	PerPage            int
	RateLimitPerMinute int
	AllowedOrigins     []string
	// Database, named after the keys of the .env file
	DBConnection string
	DatabaseURI  string
	DBHost       string
	DBPort       string
	DBDatabase   string
	DBUsername   string
	DBPassword   string
	// Gin framework configuration
	GinMode string
	GinPath string
	// Cache
	CacheDriver   string
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
	// Housekeeping
	PageViewRetentionDays int
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration. It should be called once during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	// Precedence: config/config.json -> defaults -> .env -> environment variables.
	// godotenv never overrides variables that are already set, so the real
	// environment wins over the .env file.
	if err := loadJSONConfig(filepath.Join("config", "config.json"), &cfg); err != nil {
		log.Printf("ignoring config/config.json: %v", err)
	}
	applyDefaults(&cfg)
	_ = godotenv.Load(EnvFile())
	applyEnvOverrides(&cfg)

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// Set replaces the cached configuration. Used by tests and the CLI flags.
func Set(c AppConfig) {
	cfg = c
	loaded = true
}

// Reset forgets the cached configuration so the next Get reloads it.
func Reset() {
	cfg = AppConfig{}
	loaded = false
}

// Defaults returns a configuration with only default values applied.
func Defaults() AppConfig {
	var c AppConfig
	applyDefaults(&c)
	return c
}

// EnvFile is the dotenv file read by Load, APP_ENV_FILE or .env.
func EnvFile() string {
	if v := os.Getenv("APP_ENV_FILE"); v != "" {
		return v
	}
	return ".env"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

type fileConfig struct {
	App struct {
		Name               string   `json:"Name"`
		Port               string   `json:"Port"`
		Key                string   `json:"Key"`
		URL                string   `json:"URL"`
		PerPage            int      `json:"PerPage"`
		RateLimitPerMinute int      `json:"RateLimitPerMinute"`
		AllowedOrigins     []string `json:"AllowedOrigins"`
	} `json:"app"`
	Gin struct {
		Mode    string `json:"Mode"`
		LogPath string `json:"LogPath"`
	} `json:"gin"`
	Database struct {
		Connection  string `json:"Connection"`
		DatabaseURI string `json:"DatabaseURI"`
		Host        string `json:"Host"`
		Port        string `json:"Port"`
		Database    string `json:"Database"`
		Username    string `json:"Username"`
		Password    string `json:"Password"`
	} `json:"database"`
	Cache struct {
		Driver        string `json:"Driver"`
		RedisHost     string `json:"RedisHost"`
		RedisPort     int    `json:"RedisPort"`
		RedisDB       int    `json:"RedisDB"`
		RedisPassword string `json:"RedisPassword"`
	} `json:"cache"`
	Log struct {
		Level      string `json:"Level"`
		Path       string `json:"Path"`
		MaxSizeMB  int    `json:"MaxSizeMB"`
		MaxBackups int    `json:"MaxBackups"`
		MaxAgeDays int    `json:"MaxAgeDays"`
		Compress   bool   `json:"Compress"`
	} `json:"log"`
	PageViewRetentionDays int `json:"PageViewRetentionDays"`
}

// loadJSONConfig reads the grouped JSON file into out if present. Returns error only for invalid JSON.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // silently ignore missing file
	}
	defer f.Close()

	var fc fileConfig
	if err := json.NewDecoder(f).Decode(&fc); err != nil {
		return err
	}

	out.AppName = fc.App.Name
	out.AppPort = fc.App.Port
	out.AppKey = fc.App.Key
	out.AppURL = fc.App.URL
	out.PerPage = fc.App.PerPage
	out.RateLimitPerMinute = fc.App.RateLimitPerMinute
	if len(fc.App.AllowedOrigins) > 0 {
		out.AllowedOrigins = fc.App.AllowedOrigins
	}

	out.GinMode = fc.Gin.Mode
	out.GinPath = fc.Gin.LogPath

	out.DBConnection = fc.Database.Connection
	out.DatabaseURI = fc.Database.DatabaseURI
	out.DBHost = fc.Database.Host
	out.DBPort = fc.Database.Port
	out.DBDatabase = fc.Database.Database
	out.DBUsername = fc.Database.Username
	out.DBPassword = fc.Database.Password

	out.CacheDriver = fc.Cache.Driver
	out.RedisHost = fc.Cache.RedisHost
	out.RedisPort = fc.Cache.RedisPort
	out.RedisDB = fc.Cache.RedisDB
	out.RedisPassword = fc.Cache.RedisPassword

	out.LogLevel = fc.Log.Level
	out.LogPath = fc.Log.Path
	out.LogMaxSizeMB = fc.Log.MaxSizeMB
	out.LogMaxBackups = fc.Log.MaxBackups
	out.LogMaxAgeDays = fc.Log.MaxAgeDays
	out.LogCompress = fc.Log.Compress

	out.PageViewRetentionDays = fc.PageViewRetentionDays
	return nil
}

// applyDefaults sets sane defaults for zero-value fields.
func applyDefaults(c *AppConfig) {
	if c.AppName == "" {
		c.AppName = "Postboard"
	}
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.AppURL == "" {
		c.AppURL = "http://localhost:" + c.AppPort
	}
	if c.PerPage == 0 {
		c.PerPage = 10
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 60
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.DBConnection == "" {
		c.DBConnection = "mysql"
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBPort == "" {
		c.DBPort = defaultPort(c.DBConnection)
	}
	if c.DBUsername == "" {
		c.DBUsername = "root"
	}
	if c.DBDatabase == "" {
		c.DBDatabase = "postboard"
	}
	if c.CacheDriver == "" {
		c.CacheDriver = "none"
	}
	if c.RedisHost == "" {
		c.RedisHost = "127.0.0.1"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
}

func defaultPort(connection string) string {
	switch normalizeConnection(connection) {
	case "pgsql":
		return "5432"
	case "sqlite":
		return ""
	default:
		return "3306"
	}
}

// applyEnvOverrides maps known environment variables onto config values when present.
func applyEnvOverrides(c *AppConfig) {
	if v := getEnv("APP_NAME", ""); v != "" {
		c.AppName = v
	}
	if v := getEnv("APP_PORT", ""); v != "" {
		c.AppPort = v
	}
	if v := getEnv("APP_KEY", ""); v != "" {
		c.AppKey = v
	}
	if v := getEnv("APP_URL", ""); v != "" {
		c.AppURL = v
	}
	if v := getEnv("PER_PAGE", ""); v != "" {
		c.PerPage = mustParseInt(v)
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		c.RateLimitPerMinute = mustParseInt(v)
	}
	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		c.AllowedOrigins = readListEnv("CORS_ALLOWED_ORIGINS", c.AllowedOrigins)
	}
	if v := getEnv("GIN_MODE", ""); v != "" {
		c.GinMode = v
	}
	if v := getEnv("GIN_PATH", ""); v != "" {
		c.GinPath = v
	}
	if v := getEnv("DB_CONNECTION", ""); v != "" {
		prev := defaultPort(c.DBConnection)
		c.DBConnection = v
		// Keep the port in step with the driver unless it was set explicitly.
		if c.DBPort == prev {
			c.DBPort = defaultPort(v)
		}
	}
	if v := getEnv("DATABASE_URI", ""); v != "" {
		c.DatabaseURI = v
	}
	if v := getEnv("DB_HOST", ""); v != "" {
		c.DBHost = v
	}
	if v := getEnv("DB_PORT", ""); v != "" {
		c.DBPort = v
	}
	if v := getEnv("DB_DATABASE", ""); v != "" {
		c.DBDatabase = v
	}
	if v := getEnv("DB_USERNAME", ""); v != "" {
		c.DBUsername = v
	}
	if v := getEnv("DB_PASSWORD", ""); v != "" {
		c.DBPassword = v
	}
	if v := getEnv("CACHE_DRIVER", ""); v != "" {
		c.CacheDriver = v
	}
	if v := getEnv("REDIS_HOST", ""); v != "" {
		c.RedisHost = v
	}
	if v := getEnv("REDIS_PORT", ""); v != "" {
		c.RedisPort = mustParseInt(v)
	}
	if v := getEnv("REDIS_DB", ""); v != "" {
		c.RedisDB = mustParseInt(v)
	}
	if v := getEnv("REDIS_PASSWORD", ""); v != "" {
		c.RedisPassword = v
	}
	if v := getEnv("LOG_LEVEL", ""); v != "" {
		c.LogLevel = v
	}
	if v := getEnv("LOG_PATH", ""); v != "" {
		c.LogPath = v
	}
	if v := getEnv("LOG_MAX_SIZE_MB", ""); v != "" {
		c.LogMaxSizeMB = mustParseInt(v)
	}
	if v := getEnv("LOG_MAX_BACKUPS", ""); v != "" {
		c.LogMaxBackups = mustParseInt(v)
	}
	if v := getEnv("LOG_MAX_AGE_DAYS", ""); v != "" {
		c.LogMaxAgeDays = mustParseInt(v)
	}
	if v := getEnv("LOG_COMPRESS", ""); v != "" {
		c.LogCompress = v == "true"
	}
	if v := getEnv("PAGEVIEW_RETENTION_DAYS", ""); v != "" {
		c.PageViewRetentionDays = mustParseInt(v)
	}
}

func mustParseInt(val string) int {
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("invalid integer value %s: %v", val, err)
	}
	return i
}

func readListEnv(key string, defaults []string) []string {
	if raw := os.Getenv(key); raw != "" {
		return splitAndTrim(raw)
	}
	return defaults
}

func splitAndTrim(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
