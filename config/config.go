package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/marcus-bailey/nom-nom-tracker/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver    string // postgres | sqlite
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string
	SQLitePath  string

	SeedFoods   bool
	CORSOrigins []string

	S3Bucket    string
	S3Region    string
	S3PublicURL string
}

// Load reads .env when present and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:        getenv("PORT", "8080"),
		GinMode:     os.Getenv("GIN_MODE"),
		DBDriver:    strings.ToLower(getenv("DB_DRIVER", "postgres")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getenv("DB_HOST", "localhost"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBPort:      getenv("DB_PORT", "5432"),
		DBSSLMode:   getenv("DB_SSLMODE", "disable"),
		SQLitePath:  getenv("SQLITE_PATH", "nutrition.db"),
		SeedFoods:   os.Getenv("SEED_FOODS") == "true",
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "*")),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Region:    os.Getenv("S3_REGION"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}
	if cfg.S3Region == "" {
		cfg.S3Region = os.Getenv("AWS_REGION") // fallback
	}
	return cfg
}

// PostgresDSN prefers DATABASE_URL over the individual DB_* settings.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// OpenDB opens the configured database. Driver errors for unique and foreign
// key violations are translated to gorm's sentinel errors.
func OpenDB(c *Config) (*gorm.DB, error) {
	switch c.DBDriver {
	case "postgres":
		db, err := gorm.Open(postgres.Open(c.PostgresDSN()), &gorm.Config{TranslateError: true})
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return db, nil
	case "sqlite":
		return OpenSQLite(c.SQLitePath)
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
}

// OpenSQLite opens path (or ":memory:") with foreign keys enforced on a
// single connection.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)"), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Food{},
		&models.Meal{},
		&models.MealFood{},
		&models.FoodLog{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
