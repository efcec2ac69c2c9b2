package testutil

import (
	"context"
	"sync"

	"github.com/samcomo/dbz-api-server/internal/member"
	"github.com/samcomo/dbz-api-server/internal/model"
)

// FakeMemberStore is an in-memory member.MemberStore that records every Save call.
// Unique email/nickname are enforced on Save like the database constraint.
type FakeMemberStore struct {
	mu        sync.Mutex
	members   map[uint32]model.Member
	nextID    uint32
	saveCalls []model.Member

	ExistsByEmailFunc    func(ctx context.Context, email string) (bool, error)
	ExistsByNicknameFunc func(ctx context.Context, nickname string) (bool, error)
	FindByIDFunc         func(ctx context.Context, id uint32) (*model.Member, error)
	SaveFunc             func(ctx context.Context, m *model.Member) (*model.Member, error)
}

// NewFakeMemberStore creates an empty store
func NewFakeMemberStore() *FakeMemberStore {
	return &FakeMemberStore{
		members: map[uint32]model.Member{},
		nextID:  1,
	}
}

// Seed stores m without recording a Save call and returns its ID
func (s *FakeMemberStore) Seed(m *model.Member) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *m
	if stored.ID == 0 {
		stored.ID = s.nextID
	}
	if stored.ID >= s.nextID {
		s.nextID = stored.ID + 1
	}
	s.members[stored.ID] = stored
	return stored.ID
}

// Get returns a copy of the stored member
func (s *FakeMemberStore) Get(id uint32) (model.Member, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[id]
	return m, ok
}

// SaveCalls returns copies of every member passed to Save
func (s *FakeMemberStore) SaveCalls() []model.Member {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.Member(nil), s.saveCalls...)
}

func (s *FakeMemberStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if s.ExistsByEmailFunc != nil {
		return s.ExistsByEmailFunc(ctx, email)
	}
	return s.exists(func(m model.Member) bool { return m.Email == email }), nil
}

func (s *FakeMemberStore) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	if s.ExistsByNicknameFunc != nil {
		return s.ExistsByNicknameFunc(ctx, nickname)
	}
	return s.exists(func(m model.Member) bool { return m.Nickname == nickname }), nil
}

func (s *FakeMemberStore) exists(match func(model.Member) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.members {
		if match(m) {
			return true
		}
	}
	return false
}

func (s *FakeMemberStore) FindByID(ctx context.Context, id uint32) (*model.Member, error) {
	if s.FindByIDFunc != nil {
		return s.FindByIDFunc(ctx, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[id]
	if !ok {
		return nil, member.ErrMemberNotFound
	}
	return &m, nil
}

func (s *FakeMemberStore) FindByEmail(_ context.Context, email string) (*model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.members {
		if m.Email == email {
			return &m, nil
		}
	}
	return nil, member.ErrMemberNotFound
}

func (s *FakeMemberStore) Save(ctx context.Context, m *model.Member) (*model.Member, error) {
	s.mu.Lock()
	s.saveCalls = append(s.saveCalls, *m)
	s.mu.Unlock()

	if s.SaveFunc != nil {
		return s.SaveFunc(ctx, m)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.members {
		if id != m.ID && (existing.Email == m.Email || existing.Nickname == m.Nickname) {
			return nil, member.ErrDuplicateMember
		}
	}

	saved := *m
	if saved.ID == 0 {
		saved.ID = s.nextID
		s.nextID++
	}
	s.members[saved.ID] = saved
	return &saved, nil
}

// Transaction runs fn against the same store; no rollback is simulated
func (s *FakeMemberStore) Transaction(_ context.Context, fn func(store member.MemberStore) error) error {
	return fn(s)
}

// Ensure FakeMemberStore implements member.MemberStore
var _ member.MemberStore = (*FakeMemberStore)(nil)
