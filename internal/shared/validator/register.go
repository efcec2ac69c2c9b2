package validator

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phoneRegex matches Korean mobile numbers: 010-1234-5678 or 01012345678
var phoneRegex = regexp.MustCompile(`^01[0-9]-?[0-9]{4}-?[0-9]{4}$`)

// rules are the binding tags shared by every domain
var rules = map[string]validator.Func{
	"phone":    ValidatePhone,
	"notblank": ValidateNotBlank,
}

func ValidatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// ValidateNotBlank rejects whitespace-only strings (nickname, address).
func ValidateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// GetValidator returns the validator instance from Gin binding
func GetValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("validator 엔진을 가져올 수 없습니다")
	}
	return v, nil
}

// RegisterAll registers the shared binding tags on gin's validator engine
func RegisterAll() error {
	v, err := GetValidator()
	if err != nil {
		return fmt.Errorf("validator 엔진 가져오기 실패: %w", err)
	}

	names := make([]string, 0, len(rules))
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("%s validator 등록 실패: %w", tag, err)
		}
		names = append(names, tag)
	}

	slog.Debug("공통 Validator 등록 완료", "validators", names)
	return nil
}
