package auth

// Login uses the same password length rule as member registration
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=50"`
	Password string `json:"password" binding:"required,min=8,max=15"`
}

type LoginResponse struct {
	MemberID     uint32 `json:"memberId"`
	TokenType    string `json:"tokenType"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

const bearerTokenType = "Bearer"
