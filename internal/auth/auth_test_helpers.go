package auth

import (
	"testing"
	"time"

	"github.com/Daeuning/WSD-Assignment-03/internal/model"
)

// TestJWT is JWTManager used by handler tests
var TestJWT = NewJWTManager("test-secret", "job-board", time.Hour)

// GetAccessToken issues access token of user signed by TestJWT
func GetAccessToken(t *testing.T, user model.User) string {
	t.Helper()
	token, err := TestJWT.GenerateStandardToken(user.ID)
	if err != nil {
		t.Fatalf("failed to issue access token: %v", err)
	}
	return token
}
