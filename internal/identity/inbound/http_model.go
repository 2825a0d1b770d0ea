package inbound

import (
	"net/http"
	"time"

	"github.com/otentika/otentika/internal/identity/entity"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OTPSendRequest struct {
	Email string `json:"email"`
}

type OTPVerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type CompleteRegistrationRequest struct {
	UserID   int64  `json:"user_id,string"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type UserUpdateRequest struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// UserResponse is the public view of an identity record. The credential hash
// and OTP challenge never appear here.
type UserResponse struct {
	ID        int64     `json:"id,string"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		Name:      u.Name,
		Role:      u.Role.String(),
		State:     u.AuthState().String(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type SignupResponse struct {
	AuthResponse
}

func (SignupResponse) StatusCode() int {
	return http.StatusCreated
}

type MessageResponse struct {
	Message string `json:"message"`
}

type OTPVerifyResponse struct {
	RequiresRegistration bool          `json:"requires_registration,omitempty"`
	UserID               int64         `json:"user_id,string,omitempty"`
	Message              string        `json:"message,omitempty"`
	Token                string        `json:"token,omitempty"`
	User                 *UserResponse `json:"user,omitempty"`
}

type UserListResponse struct {
	Total int            `json:"total"`
	Users []UserResponse `json:"users"`
}

type UserDetailResponse struct {
	User UserResponse `json:"user"`
}

type UserUpdateResponse struct {
	User UserResponse `json:"user"`
}
