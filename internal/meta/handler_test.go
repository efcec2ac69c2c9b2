package meta_test

import (
	"net/http"
	"testing"

	"github.com/samcomo/dbz-api-server/internal/meta"
	"github.com/samcomo/dbz-api-server/internal/shared/database"
	"github.com/samcomo/dbz-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_DatabaseDown(t *testing.T) {
	// Given: a closed database connection
	cfg := testutil.NewTestConfig()
	db, err := database.New(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	router := testutil.SetupTestRouter()
	router.GET("/health", meta.NewHandler(cfg, db).Health)

	// When
	w := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/health",
	})

	// Then
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]any
	testutil.ParseResponse(t, w, &body)
	assert.Equal(t, "unhealthy", body["status"])
}
