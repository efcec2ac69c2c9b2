package middleware

import (
	"errors"
	"strings"

	"github.com/samcomo/dbz-api-server/internal/config"
	sharedContext "github.com/samcomo/dbz-api-server/internal/shared/context"
	sharedError "github.com/samcomo/dbz-api-server/internal/shared/error"
	"github.com/samcomo/dbz-api-server/internal/shared/logger"
	"github.com/samcomo/dbz-api-server/internal/shared/token"

	"github.com/gin-gonic/gin"
)

const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
)

// JWT error constants (errInfo)
const (
	missingToken  = "MISSING_TOKEN"
	invalidToken  = "INVALID_TOKEN"
	expiredToken  = "EXPIRED_TOKEN"
	invalidClaims = "INVALID_CLAIMS"
)

// Domain errors
var (
	ErrMissingToken  = sharedError.NewDomainError(missingToken)
	ErrInvalidToken  = sharedError.NewDomainError(invalidToken)
	ErrExpiredToken  = sharedError.NewDomainError(expiredToken)
	ErrInvalidClaims = sharedError.NewDomainError(invalidClaims)
)

// Every token failure answers with the same client response
func init() {
	for _, errInfo := range []string{missingToken, invalidToken, expiredToken, invalidClaims} {
		sharedError.RegisterDomainErrorResponse(errInfo, sharedError.Unauthorized)
	}
}

// JWT authenticates the bearer access token and stores the member id in the gin context.
// The member id is also bound to the request logger so service logs carry it.
func JWT(cfg *config.Config) gin.HandlerFunc {
	tokenManager := token.NewJWTManager(cfg)

	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context()).With(
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		// Step 1: 토큰 추출
		rawToken, err := extractToken(c)
		if err != nil {
			log.Warn("JWT 토큰 추출 실패", "step", "extract_token", "error", err.Error())
			handleJWTError(c, err)
			return
		}

		// Step 2: 토큰 검증
		claims, err := tokenManager.ValidateToken(rawToken)
		if err != nil {
			log.Warn("JWT 토큰 검증 실패", "step", "validate_token", "error", err.Error())
			handleJWTError(c, mapTokenError(err))
			return
		}

		// Refresh 토큰으로 API 호출 불가
		if claims.TokenType != token.TypeAccess {
			log.Warn("JWT 토큰 타입 불일치", "step", "token_type", "token_type", claims.TokenType)
			handleJWTError(c, ErrInvalidToken)
			return
		}

		// 인증 성공 - Context에 회원 정보 저장
		c.Set(sharedContext.MemberIDKey, claims.MemberID)
		c.Set(sharedContext.MemberEmailKey, claims.Email)
		c.Request = c.Request.WithContext(logger.With(c.Request.Context(), "member_id", claims.MemberID))
		c.Next()
	}
}

// handleJWTError handles JWT errors using the standardized error response format
// Note: Logging is done at the point of error detection in JWT() function
func handleJWTError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		c.JSON(resp.Status, resp)
	} else {
		c.JSON(sharedError.Unauthorized.Status, sharedError.Unauthorized)
	}
	c.Abort()
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return "", ErrMissingToken
	}

	scheme, rawToken, ok := strings.Cut(authHeader, " ")
	rawToken = strings.TrimSpace(rawToken)
	if !ok || !strings.EqualFold(scheme, BearerScheme) || rawToken == "" {
		return "", ErrInvalidToken
	}

	return rawToken, nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, token.ErrExpiredToken):
		return ErrExpiredToken
	case errors.Is(err, token.ErrInvalidClaims):
		return ErrInvalidClaims
	default:
		return ErrInvalidToken
	}
}
