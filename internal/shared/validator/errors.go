package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	sharedError "github.com/samcomo/dbz-api-server/internal/shared/error"
)

// ToErrorResponse converts gin binding/validator errors into a standardized response.
func ToErrorResponse(err error) (*sharedError.ErrorResponse, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	if len(validationErrors) == 0 {
		return nil, false
	}

	// 첫 번째 validation error만 반환 (사용자 친화적)
	fieldErr := validationErrors[0]
	message := getErrorMessage(fieldErr)

	resp := sharedError.ValidationFailed.WithMessage(message)
	return &resp, true
}

var staticMessages = map[string]string{
	"required": "필수 항목을 입력해 주세요.",
	"email":    "이메일 형식이 올바르지 않습니다.",
	"phone":    "휴대폰 번호 형식이 올바르지 않습니다. (010-XXXX-XXXX)",
	"notblank": "공백만 입력할 수 없습니다.",
}

// getErrorMessage returns the client message for the first failed tag
func getErrorMessage(fe validator.FieldError) string {
	if msg, ok := staticMessages[fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("최소 %s자 이상이어야 합니다.", fe.Param())
	case "max":
		return fmt.Sprintf("최대 %s자까지 입력 가능합니다.", fe.Param())
	default:
		return fmt.Sprintf("'%s' 필드가 올바르지 않습니다.", fe.Field())
	}
}
