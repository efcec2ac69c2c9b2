package logger

import "strings"

// Example: john.doe@gmail.com -> j***@gmail.com
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***@***"
	}

	username := parts[0]
	domain := parts[1]

	if len(username) == 0 {
		return "***@" + domain
	}

	// Keep only first character of username
	return username[:1] + "***@" + domain
}

// Example: 삼코모 -> 삼**
func MaskNickname(nickname string) string {
	runes := []rune(nickname)
	if len(runes) <= 1 {
		return strings.Repeat("*", len(runes))
	}

	return string(runes[0]) + strings.Repeat("*", len(runes)-1)
}
