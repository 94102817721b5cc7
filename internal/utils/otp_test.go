package utils

import "testing"

func TestValidMobile(t *testing.T) {
	for _, s := range []string{"9876543210", "0000000000"} {
		if !ValidMobile(s) {
			t.Errorf("ValidMobile(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "12345", "98765432100", "98765abcde", "+919876543210"} {
		if ValidMobile(s) {
			t.Errorf("ValidMobile(%q) = true, want false", s)
		}
	}
}

func TestGenerateOTP(t *testing.T) {
	code, err := GenerateOTP(4)
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != 4 {
		t.Fatalf("otp length = %d, want 4", len(code))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("otp %q contains non-digit", code)
		}
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	if err != nil {
		t.Fatal(err)
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}
