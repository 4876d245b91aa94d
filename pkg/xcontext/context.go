package xcontext

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/vitalcycle/backend/config"
	"github.com/vitalcycle/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey       struct{}
	loggerKey        struct{}
	dbKey            struct{}
	dbTransactionKey struct{}
	snowFlakeKey     struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg := ctx.Value(configsKey{})
	if cfg == nil {
		return config.Default()
	}

	return cfg.(config.Configs)
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l := ctx.Value(loggerKey{})
	if l == nil {
		return logger.NewLogger(logger.INFO)
	}

	return l.(logger.Logger)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the running transaction if WithDBTransaction was called on this
// context, otherwise the root database.
func DB(ctx context.Context) *gorm.DB {
	if tx := ctx.Value(dbTransactionKey{}); tx != nil {
		return tx.(*gorm.DB)
	}

	db := ctx.Value(dbKey{})
	if db == nil {
		return nil
	}

	return db.(*gorm.DB).WithContext(ctx)
}

// WithDBTransaction begins a transaction and returns a context whose DB() is
// that transaction. Nested calls reuse the running transaction.
func WithDBTransaction(ctx context.Context) context.Context {
	if ctx.Value(dbTransactionKey{}) != nil {
		return ctx
	}

	tx := DB(ctx).Begin()
	return context.WithValue(ctx, dbTransactionKey{}, tx)
}

// WithCommitDBTransaction commits the running transaction and returns a context
// which uses the root database again.
func WithCommitDBTransaction(ctx context.Context) (context.Context, error) {
	tx := ctx.Value(dbTransactionKey{})
	if tx == nil {
		return ctx, nil
	}

	if err := tx.(*gorm.DB).Commit().Error; err != nil {
		return ctx, err
	}

	return context.WithValue(ctx, dbTransactionKey{}, nil), nil
}

// WithRollbackDBTransaction rollbacks the running transaction if it has not been
// committed yet. It is safe to defer right after WithDBTransaction.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	tx := ctx.Value(dbTransactionKey{})
	if tx == nil {
		return ctx
	}

	tx.(*gorm.DB).Rollback()
	return context.WithValue(ctx, dbTransactionKey{}, nil)
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowFlakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	node := ctx.Value(snowFlakeKey{})
	if node == nil {
		return nil
	}

	return node.(*snowflake.Node)
}
