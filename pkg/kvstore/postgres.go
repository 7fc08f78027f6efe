package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// PostgresConfig holds database connection settings
type PostgresConfig struct {
	DSN     string
	Timeout time.Duration
}

// entryModel is the GORM model for key/value rows
type entryModel struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (entryModel) TableName() string {
	return "kv_entries"
}

// Postgres is a Store backed by a two-column PostgreSQL table
type Postgres struct {
	db *gorm.DB
}

// NewPostgres connects to PostgreSQL, verifies the connection and migrates the table
func NewPostgres(cfg PostgresConfig) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.AutoMigrate(&entryModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv table: %w", err)
	}

	return &Postgres{db: db}, nil
}

// Get returns the value under key
func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	var entry entryModel

	result := p.db.WithContext(ctx).First(&entry, "key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get key %q: %w", key, result.Error)
	}

	return entry.Value, true, nil
}

// Set upserts value under key
func (p *Postgres) Set(ctx context.Context, key, value string) error {
	entry := entryModel{Key: key, Value: value}

	result := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)
	if result.Error != nil {
		return fmt.Errorf("failed to set key %q: %w", key, result.Error)
	}

	return nil
}

var _ Store = (*Postgres)(nil)
