package response

import (
	"time"

	"worklog-panel/internal/data/entity"
)

type UserResponse struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	FullName string          `json:"full_name"`
	Role     entity.UserRole `json:"role"`
	Phone    *string         `json:"phone,omitempty"`
}

type AuthResponse struct {
	Token        string       `json:"token"`
	ExpiresAt    time.Time    `json:"expires_at"`
	User         UserResponse `json:"user"`
	LandingRoute string       `json:"landing_route"`
	OTPRequired  bool         `json:"otp_required"`
}

type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	OTPVerified   bool          `json:"otp_verified"`
	User          *UserResponse `json:"user,omitempty"`
	LandingRoute  string        `json:"landing_route,omitempty"`
}

type PanelResponse struct {
	Role         entity.UserRole `json:"role"`
	LandingRoute string          `json:"landing_route"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
		Phone:    user.Phone,
	}
}
