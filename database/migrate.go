package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"cratedig/models"
)

// DB is the global database instance
var DB *gorm.DB

// DBType stores the current database type for use in other functions
var DBType string

// InitDB initializes the database connection
func InitDB() (*gorm.DB, error) {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite" // Default to SQLite for self-hosted deployment
	}
	DBType = dbType

	var db *gorm.DB
	var err error

	if dbType == "sqlite" {
		db, err = initSQLite()
	} else {
		db, err = initMySQL()
	}

	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if dbType == "sqlite" {
		// SQLite: allow a small pool for read concurrency
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(time.Hour)

		sqlDB.Exec("PRAGMA foreign_keys = ON")
		sqlDB.Exec("PRAGMA journal_mode = WAL")
		sqlDB.Exec("PRAGMA synchronous = NORMAL")
		sqlDB.Exec("PRAGMA busy_timeout = 5000") // 5 second wait for locks

		var integrityResult string
		sqlDB.QueryRow("PRAGMA integrity_check").Scan(&integrityResult)
		if integrityResult != "ok" {
			log.Printf("WARNING: Database integrity check failed: %s", integrityResult)
		}
	} else {
		// MySQL: connection pool for concurrent access
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	DB = db
	log.Println("Database connected successfully")

	return db, nil
}

// Migrate runs schema migrations for all models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.OwnedRecord{},
		&models.PlaylistJob{},
		&models.ProcessedTrack{},
		&models.TrackListing{},
	)
}

// GetDB returns the global database instance
func GetDB() *gorm.DB {
	return DB
}

// initSQLite initializes a SQLite database connection
func initSQLite() (*gorm.DB, error) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/cratedig.db"
	}

	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	log.Printf("Opening SQLite database at: %s", dbPath)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	return db, nil
}

// initMySQL initializes a MySQL database connection
func initMySQL() (*gorm.DB, error) {
	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "3306"
	}
	user := os.Getenv("DB_USER")
	if user == "" {
		user = "cratedig"
	}
	password := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	if name == "" {
		name = "cratedig"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port, name)

	log.Printf("Connecting to MySQL database at %s:%s/%s", host, port, name)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		// Hide the password from connection errors
		return nil, fmt.Errorf("failed to connect to MySQL: %s", strings.ReplaceAll(err.Error(), password, "***"))
	}

	return db, nil
}
