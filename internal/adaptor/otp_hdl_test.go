package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"worklog-panel/internal/dto/request"
	"worklog-panel/internal/dto/response"
	"worklog-panel/internal/usecase"
	"worklog-panel/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubOTPService struct {
	verifyErr error
	verified  int
}

func (s *stubOTPService) SendOTP(context.Context, uuid.UUID) (*response.SendOTPResponse, error) {
	return &response.SendOTPResponse{Sent: true}, nil
}

func (s *stubOTPService) VerifyOTP(_ context.Context, _ uuid.UUID, req *request.VerifyOTPRequest) error {
	s.verified++
	return s.verifyErr
}

type stubAuthService struct {
	usecase.AuthService
	elevated int
}

func (s *stubAuthService) Elevate(context.Context, *utils.Principal) (*response.VerifyOTPResponse, error) {
	s.elevated++
	return &response.VerifyOTPResponse{Verified: true, Token: "elevated-token"}, nil
}

func verifyRequest(body string, principal *utils.Principal) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/otp/verify", strings.NewReader(body))
	if principal != nil {
		r = r.WithContext(utils.SetPrincipal(r.Context(), principal))
	}
	return r
}

func TestVerifyOTPHandler_Elevates(t *testing.T) {
	otp := &stubOTPService{}
	auth := &stubAuthService{}
	h := NewOTPHandler(otp, auth, zap.NewNop())

	rec := httptest.NewRecorder()
	h.VerifyOTP(rec, verifyRequest(`{"code":"123456"}`, &utils.Principal{UserID: uuid.New()}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, auth.elevated)

	var body struct {
		Status bool                       `json:"status"`
		Data   response.VerifyOTPResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Status)
	assert.Equal(t, "elevated-token", body.Data.Token)
}

func TestVerifyOTPHandler_FailureDoesNotElevate(t *testing.T) {
	otp := &stubOTPService{verifyErr: usecase.ErrMismatch}
	auth := &stubAuthService{}
	h := NewOTPHandler(otp, auth, zap.NewNop())

	rec := httptest.NewRecorder()
	h.VerifyOTP(rec, verifyRequest(`{"code":"123450"}`, &utils.Principal{UserID: uuid.New()}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, auth.elevated)
}

func TestVerifyOTPHandler_NoSession(t *testing.T) {
	otp := &stubOTPService{}
	h := NewOTPHandler(otp, &stubAuthService{}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.VerifyOTP(rec, verifyRequest(`{"code":"123456"}`, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, otp.verified)
}

func TestVerifyOTPHandler_BadBody(t *testing.T) {
	otp := &stubOTPService{}
	h := NewOTPHandler(otp, &stubAuthService{}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.VerifyOTP(rec, verifyRequest(`{not json`, &utils.Principal{UserID: uuid.New()}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, otp.verified)
}
