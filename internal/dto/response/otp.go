package response

import "time"

type SendOTPResponse struct {
	Sent      bool      `json:"sent"`
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expires_at"`
	JobID     string    `json:"job_id,omitempty"`
}

type VerifyOTPResponse struct {
	Verified  bool      `json:"verified"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
