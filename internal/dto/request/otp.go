package request

type VerifyOTPRequest struct {
	Code string `json:"code" validate:"required,len=6,number"`
}
