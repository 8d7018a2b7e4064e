package application

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

func newRouter() *gin.Engine {
	ac := NewApplicationController(services.NewApplicationService(testDB))
	r := gin.New()
	g := r.Group("/applications", middleware.RequireAuth(testDB, auth.TestJWT))
	g.POST("", ac.ApplyHandler)
	g.GET("", ac.ListApplicationsHandler)
	g.DELETE("/:id", ac.CancelApplicationHandler)
	g.PATCH("/:id/status", middleware.CheckRole(model.RoleAdmin), ac.UpdateStatusHandler)
	return r
}

func TestApplyAndCancelHandler(t *testing.T) {
	r := newRouter()
	user, err := database.NewTestUser(testDB, "apply-handler@example.com")
	require.NoError(t, err)
	token := auth.GetAccessToken(t, user)

	rec, resp := testutil.MakeJSONRequest(gin.H{"jobId": database.TestJob1.ID}, token, r, "/applications", http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code)
	data := testutil.DataMap(resp)
	assert.Equal(t, "applying", data["status"])
	assert.Equal(t, database.TestJob1.Title, data["job"].(map[string]interface{})["title"])
	path := fmt.Sprintf("/applications/%v", data["id"])

	rec, resp = testutil.MakeJSONRequest(gin.H{"jobId": database.TestJob1.ID}, token, r, "/applications", http.MethodPost)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Already applied to this job", resp["message"])

	rec, _ = testutil.MakeJSONRequest(gin.H{"jobId": 555555}, token, r, "/applications", http.MethodPost)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// another user cannot cancel it
	other := auth.GetAccessToken(t, database.TestUser2)
	rec, _ = testutil.MakeJSONRequest(nil, other, r, path, http.MethodDelete)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, resp = testutil.MakeJSONRequest(nil, token, r, path, http.MethodDelete)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cancelled", testutil.DataMap(resp)["status"])

	rec, _ = testutil.MakeJSONRequest(nil, token, r, path, http.MethodDelete)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/applications?status=cancelled", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DataList(resp), 1)

	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/applications?status=lost", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatusHandler(t *testing.T) {
	r := newRouter()
	user, err := database.NewTestUser(testDB, "status-handler@example.com")
	require.NoError(t, err)
	token := auth.GetAccessToken(t, user)
	adminToken := auth.GetAccessToken(t, database.TestAdminUser)

	rec, resp := testutil.MakeJSONRequest(gin.H{"jobId": database.TestJob2.ID}, token, r, "/applications", http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code)
	path := fmt.Sprintf("/applications/%v/status", testutil.DataMap(resp)["id"])

	rec, _ = testutil.MakeJSONRequest(gin.H{"status": "accepted"}, token, r, path, http.MethodPatch)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp = testutil.MakeJSONRequest(gin.H{"status": "reviewing"}, adminToken, r, path, http.MethodPatch)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "reviewing", testutil.DataMap(resp)["status"])

	rec, _ = testutil.MakeJSONRequest(gin.H{"status": "applying"}, adminToken, r, path, http.MethodPatch)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{"status": "hired"}, adminToken, r, path, http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{"status": "accepted"}, adminToken, r, "/applications/777777/status", http.MethodPatch)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
