package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"

	"parley-server/services/chat-api/internal/infrastructure/logger"
)

const tablePrefix = "chat_api."

// Config holds database configuration
type Config struct {
	DatabaseURL string
	ReplicaURL  string
	MaxIdle     int
	MaxOpen     int
	MaxLifetime time.Duration
	LogLevel    gormlogger.LogLevel
}

// Connect creates a new database connection with the given configuration.
// When ReplicaURL is set, reads are routed to the replica via dbresolver.
func Connect(cfg Config) (*gorm.DB, error) {
	log := logger.GetLogger()

	if err := ensureDatabaseExists(cfg.DatabaseURL); err != nil {
		log.Warn().Err(err).Msg("unable to ensure database exists, continuing")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   tablePrefix,
			SingularTable: false,
		},
		Logger: gormlogger.Default.LogMode(cfg.LogLevel),
	})
	if err != nil {
		log.Error().
			Str("error_code", "connect-primary-failed").
			Err(err).
			Msg("unable to connect to database")
		return nil, err
	}

	if cfg.ReplicaURL != "" {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(cfg.ReplicaURL)},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			log.Error().
				Str("error_code", "register-replica-failed").
				Err(err).
				Msg("unable to register read replica")
			return nil, err
		}
		log.Info().Msg("Registered read replica")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)

	log.Info().Msg("Successfully connected to database")
	return db, nil
}

// ensureDatabaseExists connects to the admin database and creates the
// target database when it is missing. Local development convenience;
// managed environments already have the database provisioned.
func ensureDatabaseExists(databaseURL string) error {
	parsed, err := url.Parse(databaseURL)
	if err != nil {
		return fmt.Errorf("parse database url: %w", err)
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return fmt.Errorf("database url has no database name")
	}

	adminURL := *parsed
	adminURL.Path = "/postgres"

	adminDB, err := sql.Open("postgres", adminURL.String())
	if err != nil {
		return fmt.Errorf("open admin connection: %w", err)
	}
	defer adminDB.Close()

	var exists bool
	err = adminDB.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database existence: %w", err)
	}
	if exists {
		return nil
	}

	_, err = adminDB.Exec(fmt.Sprintf("CREATE DATABASE %s", pq.QuoteIdentifier(dbName)))
	if err != nil {
		return fmt.Errorf("create database %s: %w", dbName, err)
	}
	lg := logger.GetLogger()
	lg.Info().Str("database", dbName).Msg("Created database")
	return nil
}
