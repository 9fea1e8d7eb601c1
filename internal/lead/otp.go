// internal/lead/otp.go
package lead

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

const otpLength = 6

var ten = big.NewInt(10)

// generateOTPCode draws six independent uniform digits from crypto/rand.
// Leading zeros are valid codes.
func generateOTPCode() (string, error) {
	digits := make([]byte, otpLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("otp generation failed: %w", err)
		}
		digits[i] = byte('0') + byte(n.Int64())
	}
	return string(digits), nil
}

// codesMatch compares codes in constant time. The comparison gates access to
// a scored result, so no early exit on mismatching prefixes.
func codesMatch(expected, submitted string) bool {
	if len(expected) != len(submitted) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(submitted)) == 1
}
