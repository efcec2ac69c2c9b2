package member

import (
	"context"
	"errors"

	"github.com/samcomo/dbz-api-server/internal/model"
	"github.com/samcomo/dbz-api-server/internal/shared/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemberRepository struct {
	db *gorm.DB
	// lockRows makes reads inside a transaction take a row lock until commit
	lockRows bool
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (m *MemberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.exists(ctx, "email = ?", email)
}

func (m *MemberRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	return m.exists(ctx, "nickname = ?", nickname)
}

func (m *MemberRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	err := m.db.WithContext(ctx).
		Model(&model.Member{}).
		Where(query, arg).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (m *MemberRepository) FindByID(ctx context.Context, id uint32) (*model.Member, error) {
	return m.findOne(ctx, "id = ?", id)
}

func (m *MemberRepository) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	return m.findOne(ctx, "email = ?", email)
}

func (m *MemberRepository) findOne(ctx context.Context, query string, arg any) (*model.Member, error) {
	var member model.Member
	err := m.lockingScope(m.db.WithContext(ctx)).Where(query, arg).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// lockingScope adds SELECT ... FOR UPDATE inside a transaction.
// SQLite has no row locks and serializes writers on the database file instead.
func (m *MemberRepository) lockingScope(db *gorm.DB) *gorm.DB {
	if !m.lockRows || db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (m *MemberRepository) Save(ctx context.Context, member *model.Member) (*model.Member, error) {
	saved := *member
	if err := m.db.WithContext(ctx).Save(&saved).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, errors.Join(ErrDuplicateMember, err)
		}
		return nil, err
	}
	return &saved, nil
}

func (m *MemberRepository) Transaction(ctx context.Context, fn func(store MemberStore) error) error {
	return database.WithTransaction(ctx, m.db, func(tx *gorm.DB) error {
		return fn(&MemberRepository{db: tx, lockRows: true})
	})
}

// Ensure MemberRepository implements MemberStore
var _ MemberStore = (*MemberRepository)(nil)
