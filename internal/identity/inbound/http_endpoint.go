package inbound

import (
	"github.com/otentika/otentika/internal/identity/usecase"
	"github.com/otentika/otentika/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the authentication and user workflows.
type HTTPEndpoint struct {
	uc uc
}

// Signup creates a fully registered account and returns its first token.
func (h *HTTPEndpoint) Signup(r *router.Request) (any, error) {
	var req SignupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Signup(r.Context(), usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return nil, err
	}

	return SignupResponse{AuthResponse{
		Token: resp.Token,
		User:  toUserResponse(resp.User),
	}}, nil
}

// Login authenticates by email and password.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return AuthResponse{
		Token: resp.Token,
		User:  toUserResponse(resp.User),
	}, nil
}

// OTPSend issues a one-time code to the given email.
func (h *HTTPEndpoint) OTPSend(r *router.Request) (any, error) {
	var req OTPSendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OTPSend(r.Context(), usecase.OTPSendInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return MessageResponse{Message: resp.Message}, nil
}

// OTPVerify checks a one-time code; the outcome is either a token or a
// request to complete registration.
func (h *HTTPEndpoint) OTPVerify(r *router.Request) (any, error) {
	var req OTPVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OTPVerify(r.Context(), usecase.OTPVerifyInput{
		Email: req.Email,
		OTP:   req.OTP,
	})
	if err != nil {
		return nil, err
	}

	if resp.RequiresRegistration {
		return OTPVerifyResponse{
			RequiresRegistration: true,
			UserID:               resp.UserID,
			Message:              "OTP verified. Please complete your registration.",
		}, nil
	}

	user := toUserResponse(resp.User)
	return OTPVerifyResponse{
		Token: resp.Token,
		User:  &user,
	}, nil
}

// CompleteRegistration fills in a pending profile and returns a token.
func (h *HTTPEndpoint) CompleteRegistration(r *router.Request) (any, error) {
	var req CompleteRegistrationRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RegistrationComplete(r.Context(), usecase.RegistrationCompleteInput{
		UserID:   req.UserID,
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return AuthResponse{
		Token: resp.Token,
		User:  toUserResponse(resp.User),
	}, nil
}

// UserList returns all users.
func (h *HTTPEndpoint) UserList(r *router.Request) (any, error) {
	resp, err := h.uc.UserList(r.Context())
	if err != nil {
		return nil, err
	}

	users := make([]UserResponse, 0, len(resp.Users))
	for _, u := range resp.Users {
		users = append(users, toUserResponse(u))
	}

	return UserListResponse{Total: resp.Total, Users: users}, nil
}

// UserDetail returns a single user by id.
func (h *HTTPEndpoint) UserDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UserDetail(r.Context(), usecase.UserDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return UserDetailResponse{User: toUserResponse(resp.User)}, nil
}

// UserUpdate applies a partial update to a user.
func (h *HTTPEndpoint) UserUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UserUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.UserUpdate(r.Context(), usecase.UserUpdateInput{
		ID:    id,
		Email: req.Email,
		Phone: req.Phone,
		Name:  req.Name,
		Role:  req.Role,
	})
	if err != nil {
		return nil, err
	}

	return UserUpdateResponse{User: toUserResponse(resp.User)}, nil
}

// UserDelete removes a user permanently.
func (h *HTTPEndpoint) UserDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.UserDelete(r.Context(), usecase.UserDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}
