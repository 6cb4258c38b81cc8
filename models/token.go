package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rohanthewiz/serr"
)

const (
	// TokenIssuer identifies the application that issued the token
	TokenIssuer = "mealbox"

	// MinSecretLength is the minimum acceptable length for the JWT secret
	MinSecretLength = 32
)

var (
	jwtSecret []byte
	tokenTTL  = 24 * 7 * time.Hour
)

// SessionClaims ties a box to the browser or client holding the token
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"session_id"`
}

// InitJWT sets the signing key and token lifetime.
// Must be called at startup before any token operations.
func InitJWT(secret string, ttl time.Duration) error {
	if len(secret) < MinSecretLength {
		return serr.New("JWT secret must be at least 32 characters")
	}
	jwtSecret = []byte(secret)
	if ttl > 0 {
		tokenTTL = ttl
	}
	return nil
}

// NewSessionID returns a fresh random session id
func NewSessionID() string {
	return uuid.NewString()
}

// GenerateSessionToken signs a token carrying the session id
func GenerateSessionToken(sessionID string) (string, error) {
	if len(jwtSecret) == 0 {
		return "", serr.New("JWT not initialized - call InitJWT first")
	}

	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", serr.Wrap(err, "failed to sign token")
	}
	return tokenString, nil
}

// ValidateSessionToken parses a token and returns its session id.
// Expired, malformed, or foreign-signed tokens are rejected.
func ValidateSessionToken(tokenString string) (string, error) {
	if len(jwtSecret) == 0 {
		return "", serr.New("JWT not initialized - call InitJWT first")
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, serr.New("unexpected signing method")
		}
		return jwtSecret, nil
	}, jwt.WithIssuer(TokenIssuer))
	if err != nil {
		return "", serr.Wrap(err, "failed to parse token")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", serr.New("invalid token claims")
	}
	return claims.SessionID, nil
}
