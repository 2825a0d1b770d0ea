package otp

import (
	"testing"
	"time"
)

func TestNumericGenerate(t *testing.T) {
	gen := NewNumeric()

	for range 100 {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != CodeLength {
			t.Fatalf("expected %d digits, got %q", CodeLength, code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("expected digits only, got %q", code)
			}
		}
	}
}

func TestExpired(t *testing.T) {
	now := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)

	if Expired(now.Add(time.Minute), now) {
		t.Fatal("future expiry should not be expired")
	}
	if Expired(now, now) {
		t.Fatal("expiry exactly at now should still be valid")
	}
	if !Expired(now.Add(-time.Nanosecond), now) {
		t.Fatal("past expiry should be expired")
	}
}

func TestMatch(t *testing.T) {
	if !Match("123456", "123456") {
		t.Fatal("identical codes should match")
	}
	if Match("123456", "654321") {
		t.Fatal("different codes should not match")
	}
	if Match(" 123456", "123456") {
		t.Fatal("no trimming, padded code should not match")
	}
	if Match("", "") != true {
		t.Fatal("empty codes compare equal")
	}
}
