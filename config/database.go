package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDatabase opens the process-wide connection described by the loaded configuration.
// Schema changes are not applied here; run `postboard migrate` for that.
func InitDatabase() *gorm.DB {
	if db != nil {
		return db
	}

	conn, err := Open(Get())
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	db = conn
	return db
}

// Open connects to the database selected by DB_CONNECTION and verifies it with a ping.
func Open(c AppConfig) (*gorm.DB, error) {
	dialector, err := Dialector(c)
	if err != nil {
		return nil, err
	}

	// Derive gorm log level from the app level and keep the slow-sql threshold high to reduce noise
	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  toGormLogLevel(c.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   gLogger,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.DBConnection, err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if normalizeConnection(c.DBConnection) == "sqlite" {
		// SQLite allows a single writer; one connection also keeps :memory: databases stable.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		// Recycle idle connections before the server's wait_timeout does it for us
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	// Surface network/auth problems at boot instead of on the first query
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

// Dialector returns the gorm dialector for the configured connection.
func Dialector(c AppConfig) (gorm.Dialector, error) {
	dsn, err := DSN(c)
	if err != nil {
		return nil, err
	}
	switch normalizeConnection(c.DBConnection) {
	case "mysql":
		return mysql.Open(dsn), nil
	case "pgsql":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported DB_CONNECTION %q", c.DBConnection)
}

// DSN builds the driver-specific data source name. DATABASE_URI, when set, is used verbatim.
func DSN(c AppConfig) (string, error) {
	if c.DatabaseURI != "" {
		return c.DatabaseURI, nil
	}
	switch normalizeConnection(c.DBConnection) {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUsername,
			c.DBPassword,
			c.DBHost,
			c.DBPort,
			c.DBDatabase,
		), nil
	case "pgsql":
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.DBUsername, c.DBPassword),
			Host:     c.DBHost + ":" + c.DBPort,
			Path:     "/" + c.DBDatabase,
			RawQuery: "sslmode=disable&TimeZone=UTC",
		}
		return u.String(), nil
	case "sqlite":
		if c.DBDatabase == "" || c.DBDatabase == ":memory:" {
			return "file::memory:?cache=shared", nil
		}
		return c.DBDatabase, nil
	}
	return "", fmt.Errorf("unsupported DB_CONNECTION %q", c.DBConnection)
}

func normalizeConnection(connection string) string {
	switch strings.ToLower(strings.TrimSpace(connection)) {
	case "mysql", "mariadb":
		return "mysql"
	case "pgsql", "postgres", "postgresql":
		return "pgsql"
	case "sqlite", "sqlite3":
		return "sqlite"
	}
	return strings.ToLower(connection)
}

// toGormLogLevel maps application LogLevel to GORM's logger level.
func toGormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		// GORM 'Info' shows SQL; use with caution
		return logger.Info
	case "info", "", "warn":
		return logger.Warn
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}

// DB provides access to the initialized gorm DB instance.
func DB() *gorm.DB {
	if db == nil {
		log.Fatal("database not initialized, call InitDatabase first")
	}
	return db
}
