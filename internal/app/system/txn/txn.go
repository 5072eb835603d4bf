// Package txn runs multi-collection writes inside a MongoDB transaction when
// the deployment supports it. Standalone servers reject transactions, so Run
// falls back to executing the same function without one.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a transaction on client. When the server reports
// that transactions are unavailable, fn runs again against ctx directly.
// fn must be safe to retry.
func Run(ctx context.Context, client *mongo.Client, fn func(ctx context.Context) error) error {
	if client == nil {
		return fn(ctx)
	}

	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		zap.L().Debug("transactions unavailable; running without one", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// Server error codes that mean transactions cannot run here:
// 20 IllegalOperation, 51 (no replica set), 263 OperationNotSupportedInTransaction.
var unsupportedCodes = map[int32]struct{}{
	20:  {},
	51:  {},
	263: {},
}

// IsNotSupported reports whether err indicates the server cannot run
// transactions.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		if _, ok := unsupportedCodes[ce.Code]; ok {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "illegal operation"):
		return true
	case strings.Contains(msg, "transaction") &&
		(strings.Contains(msg, "replica set") || strings.Contains(msg, "session")):
		return true
	case strings.Contains(msg, "session") && strings.Contains(msg, "not supported"):
		return true
	}
	return false
}
