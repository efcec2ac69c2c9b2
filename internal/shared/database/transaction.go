package database

import (
	"context"
	"errors"
	"strings"

	"github.com/samcomo/dbz-api-server/internal/shared/logger"
	"gorm.io/gorm"
)

var ErrNilTransactionFn = errors.New("database: transaction function is nil")

// WithTransaction runs fn inside a transaction bound to ctx. fn returning an
// error rolls back; the error is returned unchanged so callers can classify it.
//
// Usage:
//
//	err := database.WithTransaction(ctx, db, func(tx *gorm.DB) error {
//	    return fn(&MemberRepository{db: tx})
//	})
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(*gorm.DB) error) error {
	if fn == nil {
		return ErrNilTransactionFn
	}

	if ctx == nil {
		ctx = context.Background()
	}

	err := db.WithContext(ctx).Transaction(fn)
	if err != nil {
		logger.FromContext(ctx).Debug("트랜잭션 롤백", "error", err)
	}
	return err
}

// IsUniqueViolation reports a unique constraint violation. Drivers without
// gorm error translation are matched on the message (ORA-00001, postgres
// 23505 and sqlite all mention "unique constraint").
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
