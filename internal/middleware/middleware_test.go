package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Daeuning/WSD-Assignment-03/internal/auth"
	"github.com/Daeuning/WSD-Assignment-03/internal/database"
	"github.com/Daeuning/WSD-Assignment-03/internal/model"
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

func checkUserHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.Respond(c, http.StatusOK, "anonymous", nil)
		return
	}
	utilities.Respond(c, http.StatusOK, "ok", gin.H{"email": user.Email})
}

func protectedEngine() *gin.Engine {
	r := gin.New()
	r.GET("/protected", RequireAuth(testDB, auth.TestJWT), checkUserHandler)
	r.GET("/optional", OptionalAuth(testDB, auth.TestJWT), checkUserHandler)
	r.GET("/admin", RequireAuth(testDB, auth.TestJWT), CheckRole(model.RoleAdmin), checkUserHandler)
	return r
}

func TestRequireAuthValidToken(t *testing.T) {
	token := auth.GetAccessToken(t, database.TestUser1)

	rec, resp := testutil.MakeJSONRequest(nil, token, protectedEngine(), "/protected", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestUser1.Email, testutil.DataMap(resp)["email"])
}

func TestRequireAuthMissingHeader(t *testing.T) {
	rec, resp := testutil.MakeJSONRequest(nil, "", protectedEngine(), "/protected", http.MethodGet)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, string(utilities.KindAuthRequired), resp["error"])
}

func TestRequireAuthExpiredToken(t *testing.T) {
	token, err := auth.TestJWT.GenerateTokenWithDuration(database.TestUser1.ID, -time.Minute)
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, token, protectedEngine(), "/protected", http.MethodGet)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access token expired", resp["message"])
}

func TestRequireAuthWrongIssuer(t *testing.T) {
	foreign := auth.NewJWTManager("test-secret", "not-us", time.Hour)
	token, err := foreign.GenerateStandardToken(database.TestUser1.ID)
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, token, protectedEngine(), "/protected", http.MethodGet)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token issuer", resp["message"])
}

func TestRequireAuthUnknownUser(t *testing.T) {
	token, err := auth.TestJWT.GenerateStandardToken(uuid.New())
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, token, protectedEngine(), "/protected", http.MethodGet)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User not exist", resp["message"])
}

func TestOptionalAuth(t *testing.T) {
	rec, resp := testutil.MakeJSONRequest(nil, "", protectedEngine(), "/optional", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", resp["message"])

	token := auth.GetAccessToken(t, database.TestUser2)
	rec, resp = testutil.MakeJSONRequest(nil, token, protectedEngine(), "/optional", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp["message"])

	// present but broken header is still rejected
	rec, _ = testutil.MakeJSONRequest(nil, "garbage", protectedEngine(), "/optional", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckRole(t *testing.T) {
	rec, resp := testutil.MakeJSONRequest(nil, auth.GetAccessToken(t, database.TestUser1), protectedEngine(), "/admin", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, string(utilities.KindForbidden), resp["error"])

	rec, _ = testutil.MakeJSONRequest(nil, auth.GetAccessToken(t, database.TestAdminUser), protectedEngine(), "/admin", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJwtBlacklistCheck(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := auth.NewInMemoryBlacklistStore(ctx, time.Minute)

	r := gin.New()
	r.GET("/protected", RequireAuth(testDB, auth.TestJWT), JwtBlacklistCheck(store), checkUserHandler)

	token := auth.GetAccessToken(t, database.TestUser1)
	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/protected", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	claims, err := auth.TestJWT.ValidatedToken(token)
	require.NoError(t, err)
	require.NoError(t, store.AddToBlacklist(claims.ID, claims.ExpiresAt.Time))

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/protected", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been revoked", resp["message"])

	// a fresh token of the same user is unaffected
	rec, _ = testutil.MakeJSONRequest(nil, auth.GetAccessToken(t, database.TestUser1), r, "/protected", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.GET("/limited", RateLimiterMiddleware(2), checkUserHandler)

	codes := []int{}
	for i := 0; i < 3; i++ {
		rec, _ := testutil.MakeJSONRequest(nil, "", r, "/limited", http.MethodGet)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestSafeHeader(t *testing.T) {
	r := gin.New()
	r.Use(SafeHeader())
	r.GET("/h", checkUserHandler)

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/h", http.MethodGet)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestSizeLimit(t *testing.T) {
	r := gin.New()
	r.POST("/body", SizeLimit(16), func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			utilities.RespondError(c, utilities.Validation("Body too large"))
			return
		}
		utilities.Respond(c, http.StatusOK, "ok", nil)
	})

	rec, _ := testutil.MakeJSONRequest(gin.H{"a": "b"}, "", r, "/body", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{"a": strings.Repeat("x", 64)}, "", r, "/body", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf strings.Builder
	logger := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/logged", checkUserHandler)

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/logged", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	reqID := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, reqID)
	assert.Contains(t, buf.String(), reqID)
	assert.Contains(t, buf.String(), `"path":"/logged"`)
	assert.Contains(t, buf.String(), `"status":200`)
}
