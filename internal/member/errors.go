package member

import (
	"errors"
	"net/http"

	sharedError "github.com/samcomo/dbz-api-server/internal/shared/error"
)

const (
	memberNotFound          = "MEMBER_NOT_FOUND"           // errInfo
	emailAlreadyExists      = "EMAIL_ALREADY_EXISTS"       // errInfo
	nicknameAlreadyExists   = "NICKNAME_ALREADY_EXISTS"    // errInfo
	profileImageNotUploaded = "PROFILE_IMAGE_NOT_UPLOADED" // errInfo
	invalidProfileImage     = "INVALID_PROFILE_IMAGE"      // errInfo
)

var (
	ErrMemberNotFound          = sharedError.NewDomainError(memberNotFound)
	ErrEmailAlreadyExists      = sharedError.NewDomainError(emailAlreadyExists)
	ErrNicknameAlreadyExists   = sharedError.NewDomainError(nicknameAlreadyExists)
	ErrProfileImageNotUploaded = sharedError.NewDomainError(profileImageNotUploaded)
	ErrInvalidProfileImage     = sharedError.NewDomainError(invalidProfileImage)
)

// ErrDuplicateMember is returned by MemberStore.Save when a unique key (email or nickname) is violated.
var ErrDuplicateMember = errors.New("member: duplicate unique key")

func init() {
	sharedError.RegisterDomainErrorResponse(memberNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MEMBER-001",
		Message: "회원 정보를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(emailAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-002",
		Message: "이미 가입된 이메일입니다.",
	})

	sharedError.RegisterDomainErrorResponse(nicknameAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-003",
		Message: "이미 사용 중인 닉네임입니다.",
	})

	sharedError.RegisterDomainErrorResponse(profileImageNotUploaded, sharedError.ErrorResponse{
		Status:  http.StatusBadGateway,
		Code:    "MEMBER-004",
		Message: "프로필 이미지 업로드에 실패했습니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidProfileImage, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-005",
		Message: "지원하지 않는 프로필 이미지입니다.",
	})
}
