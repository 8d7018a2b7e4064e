package search

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Daeuning/WSD-Assignment-03/internal/auth"
	"github.com/Daeuning/WSD-Assignment-03/internal/database"
	"github.com/Daeuning/WSD-Assignment-03/internal/middleware"
	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/services"
	"github.com/Daeuning/WSD-Assignment-03/internal/testutil"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	td, db, err := database.GetTestDB()
	if err != nil {
		fmt.Printf("could not start test database: %v\n", err)
		os.Exit(1)
	}
	testDB = db

	code := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if td != nil {
		_ = td(ctx)
	}
	os.Exit(code)
}

func TestTopKeywordsHandler(t *testing.T) {
	listing := services.NewListingService(testDB, 20)
	sc := NewSearchController(listing)
	r := gin.New()
	r.GET("/search/top-keywords", middleware.RequireAuth(testDB, auth.TestJWT), sc.TopKeywordsHandler)

	ctx := context.Background()
	user := database.TestUser1
	for _, kw := range []string{"go", "go", "go", "rust", "rust", "java", "kotlin"} {
		require.NoError(t, listing.RecordSearch(ctx, user.ID, kw))
	}

	rec, resp := testutil.MakeJSONRequest(nil, auth.GetAccessToken(t, user), r, "/search/top-keywords", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	items := testutil.DataList(resp)
	require.Len(t, items, 3)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "go", first["search_keyword"])
	assert.Equal(t, float64(3), first["search_count"])

	rec, resp = testutil.MakeJSONRequest(nil, auth.GetAccessToken(t, user), r, "/search/top-keywords?limit=1", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DataList(resp), 1)

	rec, resp = testutil.MakeJSONRequest(nil, auth.GetAccessToken(t, database.TestUser2), r, "/search/top-keywords", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, testutil.DataList(resp))
}

func TestTopKeywordsHandlerValidation(t *testing.T) {
	sc := NewSearchController(services.NewListingService(testDB, 20))

	rec, resp, err := utilities.SimulateAPICall(sc.TopKeywordsHandler, "/search/top-keywords", http.MethodGet, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "auth_required", resp["error"])

	setUser := func(c *gin.Context) { c.Set("user", model.User{ID: database.TestUser1.ID}) }
	rec, _, err = utilities.SimulateAPICall(sc.TopKeywordsHandler, "/search/top-keywords?limit=many", http.MethodGet, nil, setUser)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
