package token

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 24 * time.Hour

type JWT struct {
	Secret string
	TTL    time.Duration
}

func (j *JWT) CreateToken(userID string, email string) (string, error) {
	ttl := j.TTL

	if ttl == 0 {
		ttl = DefaultTTL
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
	})

	return token.SignedString([]byte(j.Secret))
}

// VerifyToken rejects malformed tokens, bad signatures and expired
// tokens alike; jwt/v5 validates exp during Parse.
func (j *JWT) VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(j.Secret), nil
	})

	if err != nil {
		slog.Error("Error verifying token", "error", err)
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid access token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

func CreateTokenForUser(userID string, email string) (string, error) {
	j := JWT{Secret: os.Getenv("JWT_SECRET"), TTL: ttlFromEnv()}
	return j.CreateToken(userID, email)
}

func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	j := JWT{Secret: os.Getenv("JWT_SECRET")}
	return j.VerifyToken(tokenString)
}

func ttlFromEnv() time.Duration {
	raw := os.Getenv("TOKEN_TTL")

	if raw == "" {
		return DefaultTTL
	}

	ttl, err := time.ParseDuration(raw)

	if err != nil {
		slog.Warn("Invalid TOKEN_TTL, using default", "value", raw)
		return DefaultTTL
	}

	return ttl
}
