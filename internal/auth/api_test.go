package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/samcomo/dbz-api-server/internal/auth"
	"github.com/samcomo/dbz-api-server/internal/member"
	"github.com/samcomo/dbz-api-server/internal/model"
	sharedError "github.com/samcomo/dbz-api-server/internal/shared/error"
	"github.com/samcomo/dbz-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "test@example.com"
	testPassword = "password123"
)

// setupTestEnvironment creates all dependencies needed for auth handler tests
func setupTestEnvironment(t *testing.T) (*auth.AuthHandler, *member.MemberRepository, *testutil.MockTokenManager) {
	t.Helper()

	// Setup test database
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	// Setup dependencies
	memberRepo := member.NewMemberRepository(db)
	hasher := testutil.NewTestPasswordHasher()
	mockTokenManager := testutil.NewMockTokenManager()
	authService := auth.NewAuthService(memberRepo, hasher, mockTokenManager)
	authHandler := auth.NewAuthHandler(authService)

	// Given: a registered member
	memberService := member.NewMemberService(memberRepo, hasher, testutil.NewFakeImageStore())
	latitude, longitude := 37.5665, 126.9780
	err := memberService.Register(context.Background(), &member.RegisterRequest{
		Email:     testEmail,
		Nickname:  "tester",
		Phone:     "010-1234-5678",
		Password:  testPassword,
		Address:   "서울시",
		Latitude:  &latitude,
		Longitude: &longitude,
	})
	require.NoError(t, err)

	return authHandler, memberRepo, mockTokenManager
}

func TestLogin_Success(t *testing.T) {
	// Given: Setup test environment
	authHandler, _, mockTokenManager := setupTestEnvironment(t)

	var issuedFor string
	mockTokenManager.GenerateAccessTokenFunc = func(memberID, email string) (string, error) {
		issuedFor = memberID
		return "access-token", nil
	}

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/login", authHandler.Login)

	// When: Execute login request
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body: auth.LoginRequest{
			Email:    testEmail,
			Password: testPassword,
		},
	})

	// Then: Verify response
	require.Equal(t, http.StatusOK, recorder.Code)

	var response auth.LoginResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, "access-token", response.AccessToken)
	assert.Equal(t, "refresh-1", response.RefreshToken)
	assert.Equal(t, uint32(1), response.MemberID)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, "1", issuedFor)
}

func TestLogin_IncorrectCredentials(t *testing.T) {
	authHandler, _, _ := setupTestEnvironment(t)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/login", authHandler.Login)

	testCases := []struct {
		name    string
		request auth.LoginRequest
	}{
		{
			name:    "Unknown email",
			request: auth.LoginRequest{Email: "unknown@example.com", Password: testPassword},
		},
		{
			name:    "Wrong password",
			request: auth.LoginRequest{Email: testEmail, Password: "wrongpass123"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/api/v1/auth/login",
				Body:   tc.request,
			})

			// Then: the same response whether or not the email exists
			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.Equal(t, "AUTH-003", errorResponse.Code)
		})
	}
}

func TestLogin_InactiveMember(t *testing.T) {
	// Given: the member is deactivated
	authHandler, memberRepo, _ := setupTestEnvironment(t)

	found, err := memberRepo.FindByEmail(context.Background(), testEmail)
	require.NoError(t, err)
	found.Status = model.StatusInactive
	_, err = memberRepo.Save(context.Background(), found)
	require.NoError(t, err)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/login", authHandler.Login)

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body:   auth.LoginRequest{Email: testEmail, Password: testPassword},
	})

	// Then
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "AUTH-004", errorResponse.Code)
}

func TestLogin_ValidationError(t *testing.T) {
	authHandler, _, _ := setupTestEnvironment(t)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/login", authHandler.Login)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body: map[string]string{
			"email": "invalid-email-format",
		},
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.NotEmpty(t, errorResponse.Message)
}
