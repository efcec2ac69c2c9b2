package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/samcomo/dbz-api-server/internal/member"
	"github.com/samcomo/dbz-api-server/internal/model"
	"github.com/samcomo/dbz-api-server/internal/shared/logger"
	"github.com/samcomo/dbz-api-server/internal/shared/password"
	"github.com/samcomo/dbz-api-server/internal/shared/token"
)

type AuthService struct {
	memberStore    member.MemberStore
	passwordHasher password.Hasher
	tokenManager   token.Manager
}

func NewAuthService(memberStore member.MemberStore, passwordHasher password.Hasher, tokenManager token.Manager) *AuthService {
	return &AuthService{
		memberStore:    memberStore,
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
	}
}

func (a *AuthService) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	// 1. Find member by email
	found, err := a.memberStore.FindByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			log.Warn("로그인 실패 - member email not found", "email", logger.MaskEmail(request.Email))
			return nil, fmt.Errorf("로그인 실패: %w", ErrInCorrectEmailPassword) // Security: don't reveal if email exists
		}
		log.Error("로그인 실패 - 알 수 없는 오류", "error", err)
		return nil, fmt.Errorf("로그인 실패: %w", err)
	}

	// 2. Validate password
	if !a.passwordHasher.Verify(request.Password, found.Password) {
		log.Warn("로그인 실패 - invalid password", "email", logger.MaskEmail(request.Email))
		return nil, fmt.Errorf("로그인 실패: %w", ErrInCorrectEmailPassword)
	}

	// 3. Only active members may log in
	if found.Status != model.StatusActive {
		log.Warn("로그인 실패 - inactive member", "email", logger.MaskEmail(request.Email), "status", found.Status)
		return nil, fmt.Errorf("로그인 실패: %w", ErrInactiveMember)
	}

	// 4. Generate JWT tokens
	memberID := strconv.FormatUint(uint64(found.ID), 10)
	accessToken, err := a.tokenManager.GenerateAccessToken(memberID, found.Email)
	if err != nil {
		log.Error("access token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := a.tokenManager.GenerateRefreshToken(memberID, found.Email)
	if err != nil {
		log.Error("refresh token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	log.Info("로그인 성공", "member_id", found.ID, "email", logger.MaskEmail(request.Email))

	return &LoginResponse{
		MemberID:     found.ID,
		TokenType:    bearerTokenType,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
