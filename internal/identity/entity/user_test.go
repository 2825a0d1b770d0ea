package entity

import (
	"testing"
	"time"
)

func TestUserIsRegistrationComplete(t *testing.T) {
	complete := User{
		Email:          "rina@example.com",
		Phone:          "+628123456789",
		Name:           "Rina Wulandari",
		CredentialHash: "$2a$04$hash",
	}

	if !complete.IsRegistrationComplete() {
		t.Fatal("expected complete profile")
	}

	missing := []User{
		{Email: "a@b.c", Phone: "+628123456789", Name: "Rina Wulandari"},
		{Email: "a@b.c", Phone: "+628123456789", CredentialHash: "$2a$04$hash"},
		{Email: "a@b.c", Name: "Rina Wulandari", CredentialHash: "$2a$04$hash"},
	}
	for i, u := range missing {
		if u.IsRegistrationComplete() {
			t.Fatalf("case %d: expected incomplete profile", i)
		}
	}
}

func TestUserHasActiveChallenge(t *testing.T) {
	u := User{OTPCode: "123456", OTPExpiresAt: time.Now().Add(-time.Hour)}
	if !u.HasActiveChallenge() {
		t.Fatal("expected challenge to count even when expired")
	}

	if (User{}).HasActiveChallenge() {
		t.Fatal("expected no challenge on empty record")
	}
}

func TestUserAuthState(t *testing.T) {
	pending := User{Email: "a@b.c"}
	if got := pending.AuthState(); got != AuthStatePendingRegistration {
		t.Fatalf("expected PendingRegistration, got %v", got)
	}

	registered := User{
		Email:          "a@b.c",
		Phone:          "+628123456789",
		Name:           "Rina Wulandari",
		CredentialHash: "$2a$04$hash",
	}
	if got := registered.AuthState(); got != AuthStateRegistered {
		t.Fatalf("expected Registered, got %v", got)
	}
}

func TestRoleFromString(t *testing.T) {
	cases := map[string]Role{
		"user":     RoleUser,
		"admin":    RoleAdmin,
		"":         RoleUnknown,
		"sysadmin": RoleUnknown,
	}
	for in, want := range cases {
		if got := RoleFromString(in); got != want {
			t.Fatalf("RoleFromString(%q) = %v, want %v", in, got, want)
		}
	}

	if RoleAdmin.String() != "admin" || RoleUser.String() != "user" || RoleUnknown.String() != "unknown" {
		t.Fatal("unexpected role string values")
	}
}
