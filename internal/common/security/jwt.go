package security

import (
	"errors"
	"time"

	"tourbase/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// JWT signs and verifies the bearer credential. Validity is purely
// cryptographic plus expiry; staleness against a later password change is
// checked by the Protect middleware, not here.
type JWT struct {
	auth *jwtauth.JWTAuth
	exp  time.Duration
}

func NewJWT(cfg *config.Config) *JWT {
	return &JWT{
		auth: jwtauth.New("HS256", cfg.JWTKey, nil),
		exp:  cfg.JWTExp,
	}
}

// Auth exposes the underlying verifier for jwtauth.Verifier middleware,
// which extracts tokens from "Authorization: Bearer" or the "jwt" cookie.
func (j *JWT) Auth() *jwtauth.JWTAuth {
	return j.auth
}

func (j *JWT) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(j.exp).Unix(),
	}
	_, tokenString, err := j.auth.Encode(claims)
	return tokenString, err
}

// Expiry returns the configured token lifetime.
func (j *JWT) Expiry() time.Duration {
	return j.exp
}

// VerifyToken checks signature integrity and expiry and returns the subject
// id and issue time. Tampering, malformed structure and expiry all come back
// as errors; callers are expected to collapse them into one unauthenticated
// outcome.
func (j *JWT) VerifyToken(tokenString string) (string, time.Time, error) {
	token, err := jwtauth.VerifyToken(j.auth, tokenString)
	if err != nil {
		return "", time.Time{}, err
	}
	raw, ok := token.Get("user_id")
	userID, _ := raw.(string)
	if !ok || userID == "" {
		return "", time.Time{}, errors.New("user_id claim is missing or not a string")
	}
	return userID, token.IssuedAt(), nil
}

func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

// GetIssuedAtFromClaims extracts the iat claim. jwx surfaces registered
// temporal claims as time.Time; raw numeric forms are handled for tokens
// decoded outside the middleware.
func GetIssuedAtFromClaims(claims jwt.MapClaims) (time.Time, error) {
	switch v := claims["iat"].(type) {
	case time.Time:
		return v, nil
	case float64:
		return time.Unix(int64(v), 0), nil
	case int64:
		return time.Unix(v, 0), nil
	}
	return time.Time{}, errors.New("iat claim is missing or malformed")
}
