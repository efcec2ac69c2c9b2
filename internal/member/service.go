package member

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/samcomo/dbz-api-server/internal/model"
	"github.com/samcomo/dbz-api-server/internal/shared/logger"
	"github.com/samcomo/dbz-api-server/internal/shared/password"
	"github.com/samcomo/dbz-api-server/internal/shared/storage"
)

type MemberService struct {
	memberStore    MemberStore
	passwordHasher password.Hasher
	imageStore     storage.ImageStore
}

func NewMemberService(memberStore MemberStore, passwordHasher password.Hasher, imageStore storage.ImageStore) *MemberService {
	return &MemberService{
		memberStore:    memberStore,
		passwordHasher: passwordHasher,
		imageStore:     imageStore,
	}
}

// Register creates an ACTIVE member after checking that email and nickname are unused.
// The existence checks are not a lock: a concurrent registration that wins the race
// is caught by the storage unique constraint and reported with the same errors.
func (s *MemberService) Register(ctx context.Context, request *RegisterRequest) error {
	log := logger.FromContext(ctx)

	err := s.memberStore.Transaction(ctx, func(store MemberStore) error {
		// 1. Email, nickname 중복 검사
		if err := s.validateDuplicateMember(ctx, store, request.Email, request.Nickname); err != nil {
			return err
		}

		// 2. Hash password
		hashedPassword, err := s.passwordHasher.Hash(request.Password)
		if err != nil {
			log.Error("Failed to hash password", "error", err)
			return fmt.Errorf("hash password: %w", err)
		}

		// 3. Save member
		member := model.NewMember(request.Email, request.Nickname, request.Phone, hashedPassword, request.Location())
		if _, err := store.Save(ctx, member); err != nil {
			return fmt.Errorf("create member: %w", err)
		}
		return nil
	})

	if errors.Is(err, ErrDuplicateMember) {
		// The transaction is rolled back at this point, so classify against the base store
		log.Warn("회원가입 중 unique 제약 위반", "email", logger.MaskEmail(request.Email))
		return s.classifyDuplicate(ctx, request.Email)
	}
	if err != nil {
		log.Error("Failed to register member", "error", err)
		return err
	}

	log.Info("Member created successfully",
		"email", logger.MaskEmail(request.Email),
		"nickname", logger.MaskNickname(request.Nickname),
	)
	return nil
}

func (s *MemberService) validateDuplicateMember(ctx context.Context, store MemberStore, email, nickname string) error {
	log := logger.FromContext(ctx)

	exists, err := store.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email existence: %w", err)
	}
	if exists {
		log.Warn("Email already exists", "email", logger.MaskEmail(email))
		return fmt.Errorf("error %w", ErrEmailAlreadyExists)
	}

	exists, err = store.ExistsByNickname(ctx, nickname)
	if err != nil {
		return fmt.Errorf("check nickname existence: %w", err)
	}
	if exists {
		log.Warn("Nickname already exists", "nickname", logger.MaskNickname(nickname))
		return fmt.Errorf("error %w", ErrNicknameAlreadyExists)
	}

	return nil
}

// classifyDuplicate maps a unique violation on save to the violated key.
// Only email and nickname are unique, so a violation that is not the email is the nickname.
func (s *MemberService) classifyDuplicate(ctx context.Context, email string) error {
	exists, err := s.memberStore.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email existence: %w", err)
	}
	if exists {
		return fmt.Errorf("error %w", ErrEmailAlreadyExists)
	}
	return fmt.Errorf("error %w", ErrNicknameAlreadyExists)
}

func (s *MemberService) GetMyInfo(ctx context.Context, memberID uint32) (*MyPageResponse, error) {
	member, err := s.findMember(ctx, s.memberStore, memberID)
	if err != nil {
		return nil, err
	}

	return newMyPageResponse(member), nil
}

// UpdateLocation replaces address, latitude and longitude together. No other column changes.
func (s *MemberService) UpdateLocation(ctx context.Context, memberID uint32, request *LocationRequest) error {
	log := logger.FromContext(ctx)

	return s.memberStore.Transaction(ctx, func(store MemberStore) error {
		member, err := s.findMember(ctx, store, memberID)
		if err != nil {
			return err
		}

		if _, err := store.Save(ctx, member.WithLocation(request.Location())); err != nil {
			log.Error("Failed to update location", "memberID", memberID, "error", err)
			return fmt.Errorf("update location: %w", err)
		}

		log.Info("위치 업데이트 완료", "memberID", memberID)
		return nil
	})
}

// UpdateProfileImage uploads the image first and points the member at it only after
// the image store confirms the upload. A failed upload leaves the member untouched.
//
// The upload runs outside any transaction. A crash between upload and save leaves an
// orphaned object, never a member pointing at a missing image.
// The row is read again inside the transaction after the upload so that changes made
// while the upload was in flight are kept.
func (s *MemberService) UpdateProfileImage(ctx context.Context, memberID uint32, image storage.ImageFile) error {
	log := logger.FromContext(ctx)

	if _, err := s.findMember(ctx, s.memberStore, memberID); err != nil {
		return err
	}

	key := storage.NewObjectKey(storage.CategoryProfile, strconv.FormatUint(uint64(memberID), 10), image.Filename)
	state := s.imageStore.Upload(ctx, image, key)
	if !state.Success {
		log.Warn("프로필 이미지 업로드 실패", "memberID", memberID, "key", key)
		return fmt.Errorf("프로필 이미지 업로드 실패 memberID=%d %w", memberID, ErrProfileImageNotUploaded)
	}

	err := s.memberStore.Transaction(ctx, func(store MemberStore) error {
		member, err := s.findMember(ctx, store, memberID)
		if err != nil {
			return err
		}

		if _, err := store.Save(ctx, member.WithProfileImage(state.URL)); err != nil {
			log.Error("Failed to save profile image url", "memberID", memberID, "key", key, "error", err)
			return fmt.Errorf("update profile image: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("프로필 이미지 업데이트 완료", "memberID", memberID, "key", key)
	return nil
}

func (s *MemberService) findMember(ctx context.Context, store MemberStore, memberID uint32) (*model.Member, error) {
	member, err := store.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			logger.FromContext(ctx).Warn("회원을 찾을 수 없습니다", "memberID", memberID)
			return nil, fmt.Errorf("회원을 찾을 수 없습니다 memberID=%d %w", memberID, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}
	return member, nil
}
