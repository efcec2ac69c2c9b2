package auth

import (
	"net/http"

	sharedError "github.com/samcomo/dbz-api-server/internal/shared/error"
)

const (
	incorrectEmailPassword = "INCORRECT_EMAIL_PASSWORD" // errInfo
	inactiveMember         = "INACTIVE_MEMBER"          // errInfo
)

var (
	ErrInCorrectEmailPassword = sharedError.NewDomainError(incorrectEmailPassword)
	ErrInactiveMember         = sharedError.NewDomainError(inactiveMember)
)

func init() {
	sharedError.RegisterDomainErrorResponse(incorrectEmailPassword, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-003",
		Message: "이메일 또는 비밀번호가 일치하지 않습니다.",
	})

	sharedError.RegisterDomainErrorResponse(inactiveMember, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "AUTH-004",
		Message: "비활성화된 계정입니다.",
	})
}
