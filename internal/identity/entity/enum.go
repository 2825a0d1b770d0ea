package entity

// Role is the authorization role attached to a user.
type Role int16

const (
	// RoleUnknown is mean role is not known / not set.
	RoleUnknown Role = 0

	// RoleUser is the default role for end users.
	RoleUser Role = 1

	// RoleAdmin grants administrative permissions.
	RoleAdmin Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

func RoleFromString(str string) Role {
	switch str {
	case "user":
		return RoleUser
	case "admin":
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

// AuthState is the derived authentication state of an identity record.
//
// It is never stored; it is computed from the record's fields.
type AuthState int16

const (
	// AuthStateUnregistered mean no record exists for the subject.
	AuthStateUnregistered AuthState = 0

	// AuthStatePendingRegistration mean a record exists but the profile is incomplete.
	AuthStatePendingRegistration AuthState = 1

	// AuthStateRegistered mean the profile is complete and the user can authenticate.
	AuthStateRegistered AuthState = 2
)

func (s AuthState) String() string {
	switch s {
	case AuthStatePendingRegistration:
		return "PendingRegistration"
	case AuthStateRegistered:
		return "Registered"
	default:
		return "Unregistered"
	}
}
