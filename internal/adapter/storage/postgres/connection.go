package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seu-repo/parkpass/internal/observability/telemetry"
)

// NewConnection initializes a new PostgreSQL connection using GORM.
// TranslateError maps driver unique-violation errors onto gorm.ErrDuplicatedKey
// so the repositories can surface them as domain unique-constraint failures.
func NewConnection(url string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
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

	registerLatencyCallbacks(db)

	log.Info("Successfully connected to PostgreSQL")
	return db, nil
}

type startTimeKey struct{}

func contextWithStart(ctx context.Context) context.Context {
	return context.WithValue(ctx, startTimeKey{}, time.Now())
}

func registerLatencyCallbacks(db *gorm.DB) {
	before := func(tx *gorm.DB) {
		tx.Statement.Context = contextWithStart(tx.Statement.Context)
	}
	after := func(tx *gorm.DB) {
		if start, ok := tx.Statement.Context.Value(startTimeKey{}).(time.Time); ok {
			telemetry.DatabaseLatency.Observe(time.Since(start).Seconds())
		}
	}

	db.Callback().Query().Before("gorm:query").Register("parkpass:latency_before", before)
	db.Callback().Query().After("gorm:query").Register("parkpass:latency_after", after)
	db.Callback().Create().Before("gorm:create").Register("parkpass:latency_before", before)
	db.Callback().Create().After("gorm:create").Register("parkpass:latency_after", after)
	db.Callback().Update().Before("gorm:update").Register("parkpass:latency_before", before)
	db.Callback().Update().After("gorm:update").Register("parkpass:latency_after", after)
}

// RunMigrations - migrations are managed via SQL files in migrations/.
// AutoMigrate is disabled to prevent conflicts with existing schema.
func RunMigrations(db *gorm.DB) error {
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
