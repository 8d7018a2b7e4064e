// Package auth issue and validate access and refresh credentials
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
)

// RefreshTokenBytes is length of random refresh token before hex encoding
const RefreshTokenBytes = 64

// JWTManager signs and validates HS256 access tokens
type JWTManager struct {
	secret []byte
	Issuer string
	TTL    time.Duration
}

// NewJWTManager creates JWTManager with given secret, issuer and token lifetime
func NewJWTManager(secret, issuer string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		Issuer: issuer,
		TTL:    ttl,
	}
}

// GenerateStandardToken issues access token valid for configured TTL
func (j *JWTManager) GenerateStandardToken(id uuid.UUID) (string, error) {
	return j.GenerateTokenWithDuration(id, j.TTL)
}

// GenerateTokenWithDuration issues access token for user id valid for dur
func (j *JWTManager) GenerateTokenWithDuration(id uuid.UUID, dur time.Duration) (string, error) {
	now := time.Now()
	generatedAccessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        ksuid.New().String(),
		Issuer:    j.Issuer,
		Subject:   id.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(dur)),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signedToken, err := generatedAccessToken.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signedToken, nil
}

// ValidatedToken parses encoded token and returns its claims.
// Expired token, foreign signing method and foreign issuer are rejected.
func (j *JWTManager) ValidatedToken(encodeToken string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(encodeToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid access token")
	}
	if !claims.VerifyIssuer(j.Issuer, true) {
		return nil, jwt.ErrTokenInvalidIssuer
	}
	return claims, nil
}

// GenerateRefreshToken returns random hex encoded refresh token
func GenerateRefreshToken() (string, error) {
	b := make([]byte, RefreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
