package xcontext

import (
	"context"
	"net/http"

	"github.com/battlezone-labs/backend/config"
	"github.com/battlezone-labs/backend/internal/model"
	"github.com/battlezone-labs/backend/pkg/authenticator"
	"github.com/battlezone-labs/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey     struct{}
	loggerKey      struct{}
	dbKey          struct{}
	txKey          struct{}
	userIDKey      struct{}
	tokenEngineKey struct{}
	httpRequestKey struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	return ctx.Value(configsKey{}).(config.Configs)
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	return ctx.Value(loggerKey{}).(logger.Logger)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current transaction if one is open, otherwise the root
// database handle.
func DB(ctx context.Context) *gorm.DB {
	if t := currentTransaction(ctx); t != nil && !t.done {
		return t.tx
	}

	return ctx.Value(dbKey{}).(*gorm.DB)
}

type dbTransaction struct {
	tx   *gorm.DB
	done bool
}

func currentTransaction(ctx context.Context) *dbTransaction {
	if t, ok := ctx.Value(txKey{}).(*dbTransaction); ok {
		return t
	}

	return nil
}

// WithDBTransaction opens a database transaction and attaches it to the
// returned context. Until WithCommitDBTransaction or
// WithRollbackDBTransaction is called, DB() of the returned context resolves
// to this transaction, so every repository call inside the scope joins it.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &dbTransaction{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) {
	if t := currentTransaction(ctx); t != nil && !t.done {
		t.tx.Commit()
		t.done = true
	}
}

// WithRollbackDBTransaction is a no-op if the transaction was already
// committed, so it is safe to defer right after WithDBTransaction.
func WithRollbackDBTransaction(ctx context.Context) {
	if t := currentTransaction(ctx); t != nil && !t.done {
		t.tx.Rollback()
		t.done = true
	}
}

func WithRequestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok {
		return id
	}

	return ""
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[model.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken])
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	if r, ok := ctx.Value(httpRequestKey{}).(*http.Request); ok {
		return r
	}

	return nil
}
