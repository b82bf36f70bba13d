package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "worklog-panel"

var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed session payload. SessionID points at the sessions row
// that logout revokes.
type Claims struct {
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	SessionID   string `json:"sid"`
	OTPVerified bool   `json:"otp_verified"`
	jwt.RegisteredClaims
}

// Manager signs and validates session tokens with HS256.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Issue signs a session token for the given session row.
func (m *Manager) Issue(userID uuid.UUID, role string, sessionID uuid.UUID, otpVerified bool, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:      userID.String(),
		Role:        role,
		SessionID:   sessionID.String(),
		OTPVerified: otpVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   userID.String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature, algorithm, issuer and expiry.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
