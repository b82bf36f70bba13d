package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"worklog-panel/internal/data/entity"
	"worklog-panel/pkg/token"
	"worklog-panel/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	errNoToken      = errors.New("missing authorization token")
	errInvalidToken = errors.New("invalid or expired session")
)

// SessionStore looks up the server-side half of a signed session.
type SessionStore interface {
	FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error)
}

// SessionAuthority resolves the Authorization header into a principal.
type SessionAuthority struct {
	tokens   *token.Manager
	sessions SessionStore
	log      *zap.Logger
}

func NewSessionAuthority(tokens *token.Manager, sessions SessionStore, log *zap.Logger) *SessionAuthority {
	return &SessionAuthority{
		tokens:   tokens,
		sessions: sessions,
		log:      log.With(zap.String("middleware", "auth")),
	}
}

// Authenticate returns (nil, nil) for anonymous requests. A non-nil error means
// the session store could not be queried.
func (a *SessionAuthority) Authenticate(r *http.Request) (*utils.Principal, error) {
	principal, err := a.authenticate(r)
	if errors.Is(err, errNoToken) || errors.Is(err, errInvalidToken) {
		return nil, nil
	}
	return principal, err
}

func (a *SessionAuthority) authenticate(r *http.Request) (*utils.Principal, error) {
	raw, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	claims, err := a.tokens.Validate(raw)
	if err != nil {
		a.log.Debug("Rejected session token", zap.Error(err))
		return nil, errInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, errInvalidToken
	}
	sid, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, errInvalidToken
	}

	session, err := a.sessions.FindValidSession(r.Context(), sid)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != userID {
		return nil, errInvalidToken
	}

	return &utils.Principal{
		UserID:       userID,
		Role:         claims.Role,
		SessionToken: sid,
		OTPVerified:  claims.OTPVerified,
	}, nil
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", errNoToken
	}
	scheme, value, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errInvalidToken
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errInvalidToken
	}
	return value, nil
}

// VerifyOptionalSession attaches the principal when one is present and
// otherwise serves the request anonymously.
func (a *SessionAuthority) VerifyOptionalSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := a.Authenticate(r)
		if err != nil {
			a.log.Error("Session lookup failed, continuing anonymously", zap.Error(err))
			principal = nil
		}
		if principal != nil {
			r = r.WithContext(utils.SetPrincipal(r.Context(), principal))
		}
		next.ServeHTTP(w, r)
	})
}

// VerifyRequiredSession rejects requests without a valid session.
func (a *SessionAuthority) VerifyRequiredSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := a.authenticate(r)
		switch {
		case errors.Is(err, errNoToken):
			utils.ResponseUnauthorized(w, "Missing authorization token")
			return
		case errors.Is(err, errInvalidToken):
			utils.ResponseUnauthorized(w, "Invalid or expired session")
			return
		case err != nil:
			a.log.Error("Failed to validate session", zap.Error(err))
			utils.ResponseInternalError(w, "Internal server error")
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.SetPrincipal(r.Context(), principal)))
	})
}

// RequireVerified must run after VerifyRequiredSession.
func RequireVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := utils.GetPrincipal(r.Context())
		if principal == nil {
			utils.ResponseUnauthorized(w, "Authentication required")
			return
		}
		if !principal.OTPVerified {
			utils.ResponseForbidden(w, "OTP verification required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRoles must run after VerifyRequiredSession.
func RequireRoles(log *zap.Logger, roles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := utils.GetPrincipal(r.Context())
			if principal == nil {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}
			if !slices.Contains(roles, entity.ParseRole(principal.Role)) {
				log.Warn("Role check failed",
					zap.String("user_id", principal.UserID.String()),
					zap.String("role", principal.Role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
