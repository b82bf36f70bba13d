package entity

import (
	"time"

	"github.com/google/uuid"
)

type OTPCode struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	Code      string    `db:"code"`
	ExpiresAt time.Time `db:"expires_at"`
	Consumed  bool      `db:"consumed"`
}

// IsUsable reports whether the code can still be matched at now.
func (o *OTPCode) IsUsable(now time.Time) bool {
	return !o.Consumed && o.ExpiresAt.After(now)
}
