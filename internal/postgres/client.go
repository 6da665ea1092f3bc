package postgres

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gymmawy/gymmawy/internal/config"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/logger"
)

type txKey struct{}

// IClient is the database access interface handed to repositories. Queries
// issued through DB participate in an ambient transaction when one was opened
// with WithTx higher up the call stack.
type IClient interface {
	// DB returns the handle for the context, transactional when inside WithTx.
	DB(ctx context.Context) *gorm.DB
	// WithTx runs fn inside a transaction carried on the context.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type client struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewClient opens a gorm connection from configuration.
func NewClient(cfg *config.Configuration, log *logger.Logger) (IClient, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User,
		cfg.Postgres.Password, cfg.Postgres.DBName, cfg.Postgres.SSLMode,
	)

	gormLogLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		gormLogLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to postgres").
			Mark(ierr.ErrDatabase)
	}

	log.Infow("connected to postgres",
		"host", cfg.Postgres.Host,
		"database", cfg.Postgres.DBName,
	)

	return &client{db: db, log: log}, nil
}

// NewClientWithDB wraps an existing gorm handle, for tests.
func NewClientWithDB(db *gorm.DB, log *logger.Logger) IClient {
	return &client{db: db, log: log}
}

func (c *client) DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return c.db.WithContext(ctx)
}

func (c *client) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// Reuse the ambient transaction when already inside one.
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
