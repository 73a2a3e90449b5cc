package testutil

import (
	"context"
	"time"

	"github.com/battlezone-labs/backend/config"
	"github.com/battlezone-labs/backend/internal/model"
	"github.com/battlezone-labs/backend/migration"
	"github.com/battlezone-labs/backend/pkg/authenticator"
	"github.com/battlezone-labs/backend/pkg/logger"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockContext returns a context backed by an in-memory database with the
// fixture data inserted. Each call builds a fresh database, so tests never
// share state.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	cfg := config.Default()
	cfg.Auth.TokenSecret = "secret"
	cfg.Auth.AccessToken.Expiration = config.Duration{Duration: time.Minute}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLoggerWithLevel(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration.Duration))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.Migrate(ctx); err != nil {
		panic(err)
	}

	insertFixture(ctx)

	return ctx
}

func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}
