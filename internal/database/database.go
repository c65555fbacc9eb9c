package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/jon4hz/funfacts/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ DB = (*Client)(nil) // Ensure Client implements DB

// DB is the data access layer used by the managers.
type DB interface {
	UserDB
	FactDB
	FavoriteDB
	StatsDB
	Close() error
}

// UserDB defines the operations on the users collection.
type UserDB interface {
	CreateUser(ctx context.Context, user *User) error
	GetUsers(ctx context.Context) ([]User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, id uint, updates UserUpdates) (*User, error)
	DeleteUser(ctx context.Context, id uint) error
}

// FactDB defines the operations on the facts collection.
type FactDB interface {
	CreateFact(ctx context.Context, fact *Fact) error
	GetFacts(ctx context.Context) ([]Fact, error)
	GetFactByID(ctx context.Context, id uint) (*Fact, error)
	GetFactsByCategory(ctx context.Context, category string) ([]Fact, error)
	UpdateFact(ctx context.Context, id uint, updates FactUpdates) (*Fact, error)
	DeleteFact(ctx context.Context, id uint) error
	GetCategoryCounts(ctx context.Context) ([]CategoryCount, error)
}

// FavoriteDB defines the operations on the favorites collection.
type FavoriteDB interface {
	AddFavorite(ctx context.Context, userID, factID uint) (*Favorite, bool, error)
	GetFavoritesByUser(ctx context.Context, userID uint) ([]Favorite, error)
	DeleteFavorite(ctx context.Context, id uint) error
	DeleteOrphanedFavorites(ctx context.Context) (int64, error)
}

// StatsDB provides aggregate numbers about the store.
type StatsDB interface {
	GetStats(ctx context.Context) (*Stats, error)
}

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
func New(cfg *config.DatabaseConfig) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DatabaseDriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DatabaseDriverSQLite, "":
		if dir := filepath.Dir(cfg.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// favorites may outlive the fact they point to
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&User{},
		&Fact{},
		&Favorite{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Client{db: db}, nil
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
