package pg

import (
	"context"
	"errors"
	"fmt"

	"autoelite/internal/application"
	"autoelite/internal/infrastructure/logx"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ application.UnitOfWork = (*UnitOfWork)(nil)

type txKey struct{}

func txFromCtx(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

// UnitOfWork runs a callback in one pgx transaction. Docs collections on the
// same DB pick the transaction up from the context; nested calls join the
// outer transaction.
type UnitOfWork struct {
	db  *DB
	log *zap.Logger
}

func NewUnitOfWork(db *DB) *UnitOfWork {
	return &UnitOfWork{db: db, log: logx.L().With(zap.String("component", "uow"))}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := txFromCtx(ctx); ok {
		return fn(ctx)
	}
	tx, err := u.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				u.log.Warn("tx.rollback_failed", zap.Error(rbErr))
			}
		}
	}()
	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
