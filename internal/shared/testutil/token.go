package testutil

import (
	"strings"

	"github.com/samcomo/dbz-api-server/internal/shared/token"
)

// MockTokenManager issues "<type>-<memberID>" tokens unless a Func override is set.
type MockTokenManager struct {
	GenerateAccessTokenFunc  func(memberID, email string) (string, error)
	GenerateRefreshTokenFunc func(memberID, email string) (string, error)
	ValidateTokenFunc        func(tokenString string) (*token.Claims, error)
}

var _ token.Manager = (*MockTokenManager)(nil)

func NewMockTokenManager() *MockTokenManager {
	return &MockTokenManager{}
}

func (m *MockTokenManager) GenerateAccessToken(memberID, email string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(memberID, email)
	}
	return token.TypeAccess + "-" + memberID, nil
}

func (m *MockTokenManager) GenerateRefreshToken(memberID, email string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(memberID, email)
	}
	return token.TypeRefresh + "-" + memberID, nil
}

// ValidateToken accepts tokens produced by the default generators.
func (m *MockTokenManager) ValidateToken(tokenString string) (*token.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(tokenString)
	}

	tokenType, memberID, ok := strings.Cut(tokenString, "-")
	if !ok || memberID == "" || (tokenType != token.TypeAccess && tokenType != token.TypeRefresh) {
		return nil, token.ErrInvalidToken
	}

	claims := &token.Claims{MemberID: memberID, TokenType: tokenType}
	claims.Subject = memberID
	return claims, nil
}
