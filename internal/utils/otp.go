package utils

import (
	"crypto/rand" // secure random number generation for OTP digits
	"regexp"
)

var mobileRe = regexp.MustCompile(`^[0-9]{10}$`)

// ValidMobile reports whether s is a ten-digit mobile number.
func ValidMobile(s string) bool { return mobileRe.MatchString(s) }

// GenerateOTP returns a numeric one-time password of the given length
// built from cryptographically secure random digits.
func GenerateOTP(length int) (string, error) {
	const digits = "0123456789"
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = digits[int(buf[i])%len(digits)]
	}
	return string(buf), nil
}
