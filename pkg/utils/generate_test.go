package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var digits = regexp.MustCompile(`^[0-9]+$`)

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP(OTPLength)
		require.NoError(t, err)
		assert.Len(t, code, OTPLength)
		assert.Regexp(t, digits, code)
	}
}

func TestGenerateOTP_DefaultLength(t *testing.T) {
	code, err := GenerateOTP(0)
	require.NoError(t, err)
	assert.Len(t, code, OTPLength)
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "******4567", MaskPhone("5321234567"))
	assert.Equal(t, "123", MaskPhone("123"))
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "ayse.k", NormalizeUsername("  Ayse.K "))
	assert.Equal(t, "", NormalizeUsername("   "))
}
