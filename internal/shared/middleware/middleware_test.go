package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	sharedContext "github.com/samcomo/dbz-api-server/internal/shared/context"
	sharedError "github.com/samcomo/dbz-api-server/internal/shared/error"
	"github.com/samcomo/dbz-api-server/internal/shared/logger"
	"github.com/samcomo/dbz-api-server/internal/shared/middleware"
	"github.com/samcomo/dbz-api-server/internal/shared/testutil"
	"github.com/samcomo/dbz-api-server/internal/shared/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	router := testutil.SetupTestRouter()
	router.Use(middleware.RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})

	t.Run("propagates a well-formed header", func(t *testing.T) {
		w := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method:  http.MethodGet,
			URL:     "/ping",
			Headers: map[string]string{middleware.RequestIDHeader: "gw-123.abc"},
		})

		assert.Equal(t, "gw-123.abc", w.Body.String())
		assert.Equal(t, "gw-123.abc", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("replaces a missing or malformed header", func(t *testing.T) {
		for _, header := range []string{"", "has space", "<script>"} {
			w := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method:  http.MethodGet,
				URL:     "/ping",
				Headers: map[string]string{middleware.RequestIDHeader: header},
			})

			_, err := uuid.Parse(w.Body.String())
			assert.NoError(t, err, "header %q", header)
		}
	})
}

func TestTimeout(t *testing.T) {
	router := testutil.SetupTestRouter()
	router.Use(middleware.Timeout(10 * time.Millisecond))
	router.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	router.GET("/fast", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("deadline exceeded without a response", func(t *testing.T) {
		w := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/slow"})

		require.Equal(t, http.StatusGatewayTimeout, w.Code)

		var resp sharedError.ErrorResponse
		testutil.ParseResponse(t, w, &resp)
		assert.Equal(t, sharedError.RequestTimeout.Code, resp.Code)
	})

	t.Run("handler finishes in time", func(t *testing.T) {
		w := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/fast"})

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestJWT(t *testing.T) {
	cfg := testutil.NewTestConfig()
	tokenManager := token.NewJWTManager(cfg)

	var buf bytes.Buffer
	router := testutil.SetupTestRouter()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(logger.WithLogger(c.Request.Context(), logger.New(&buf, "prod", "debug")))
		c.Next()
	})
	router.Use(middleware.JWT(cfg))
	router.GET("/me", func(c *gin.Context) {
		memberID, _ := sharedContext.GetMemberID(c)
		logger.FromContext(c.Request.Context()).Info("내 정보 조회")
		c.JSON(http.StatusOK, gin.H{"memberId": memberID})
	})

	t.Run("missing token", func(t *testing.T) {
		w := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/me"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token is rejected", func(t *testing.T) {
		refresh, err := tokenManager.GenerateRefreshToken("3", "samcomo@gmail.com")
		require.NoError(t, err)

		w := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method:  http.MethodGet,
			URL:     "/me",
			Headers: map[string]string{middleware.AuthorizationHeader: "Bearer " + refresh},
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("access token binds member id", func(t *testing.T) {
		buf.Reset()
		access, err := tokenManager.GenerateAccessToken("3", "samcomo@gmail.com")
		require.NoError(t, err)

		w := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method:  http.MethodGet,
			URL:     "/me",
			Headers: map[string]string{middleware.AuthorizationHeader: "Bearer " + access},
		})

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		testutil.ParseResponse(t, w, &body)
		assert.Equal(t, float64(3), body["memberId"])

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "3", record["member_id"])
	})
}

func TestRequestLogger_StoresLoggerInContext(t *testing.T) {
	router := testutil.SetupTestRouter()

	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(logger.New(&buf, "prod", "debug"))
	t.Cleanup(func() { slog.SetDefault(previous) })

	var handlerLogger *slog.Logger
	router.Use(middleware.RequestID(), middleware.RequestLogger())
	router.GET("/ping", func(c *gin.Context) {
		handlerLogger = logger.FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     "/ping",
		Headers: map[string]string{middleware.RequestIDHeader: "req-1"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotSame(t, logger.FromContext(context.Background()), handlerLogger)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "req-1", record["request_id"])
	assert.Equal(t, float64(http.StatusOK), record["status"])
}
