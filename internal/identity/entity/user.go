package entity

import "time"

// User is the identity record.
//
// CredentialHash holds the bcrypt digest and must never leave the service; it
// is excluded from every serialized representation.
type User struct {
	ID             int64
	Email          string
	Phone          string
	Name           string
	Role           Role
	CredentialHash string
	OTPCode        string
	OTPExpiresAt   time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsRegistrationComplete reports whether the profile fields required for
// authentication are all present.
func (u User) IsRegistrationComplete() bool {
	return u.Name != "" && u.Phone != "" && u.CredentialHash != ""
}

// HasActiveChallenge reports whether an OTP challenge is outstanding.
// Expiry is checked separately so an expired challenge still counts as present.
func (u User) HasActiveChallenge() bool {
	return u.OTPCode != ""
}

// AuthState derives the authentication state from the record's fields.
func (u User) AuthState() AuthState {
	if u.IsRegistrationComplete() {
		return AuthStateRegistered
	}
	return AuthStatePendingRegistration
}

// NewUser carries the fields for creating a fully registered record.
type NewUser struct {
	ID             int64
	Email          string
	Phone          string
	Name           string
	Role           Role
	CredentialHash string
}

// PatchUser carries the fields for a partial user update. Empty strings and
// RoleUnknown mean "leave unchanged".
type PatchUser struct {
	ID    int64
	Email string
	Phone string
	Name  string
	Role  Role
}

// UpsertChallenge carries the fields for storing an OTP challenge, creating a
// minimal record when none exists for the email.
type UpsertChallenge struct {
	NewID     int64
	Email     string
	Code      string
	ExpiresAt time.Time
}

// CompleteRegistration carries the fields for finishing a pending registration.
type CompleteRegistration struct {
	UserID         int64
	Name           string
	Phone          string
	CredentialHash string
}
