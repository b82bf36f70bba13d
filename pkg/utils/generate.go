package utils

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// OTPLength is the fixed number of digits in a one-time code.
const OTPLength = 6

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// GenerateOTP returns a numeric code of the given length drawn from crypto/rand.
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		length = OTPLength
	}

	var sb strings.Builder
	sb.Grow(length)
	ten := big.NewInt(10)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}

	return sb.String(), nil
}

// MaskPhone keeps the last four digits visible.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

// NormalizeUsername trims and lower-cases a username for storage and lookup.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
