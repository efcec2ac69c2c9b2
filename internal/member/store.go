package member

import (
	"context"

	"github.com/samcomo/dbz-api-server/internal/model"
)

// MemberStore is the persistence contract of the member service.
//
// FindByID and FindByEmail return ErrMemberNotFound when no record matches.
// Save inserts a member with a zero ID and updates all columns otherwise;
// a unique key violation is reported as ErrDuplicateMember.
type MemberStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)
	FindByID(ctx context.Context, id uint32) (*model.Member, error)
	FindByEmail(ctx context.Context, email string) (*model.Member, error)
	Save(ctx context.Context, member *model.Member) (*model.Member, error)

	// Transaction runs fn against a store bound to a single transaction.
	// fn returning an error rolls the transaction back.
	Transaction(ctx context.Context, fn func(store MemberStore) error) error
}
