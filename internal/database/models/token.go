package models

import (
	"time"

	"github.com/google/uuid"
)

type TokenType string

const (
	TokenTypePasswordRecover TokenType = "PASSWORD_RECOVER"
)

// RecoveryToken is a single-use, time-limited code. The primary key is the
// code itself. Expiry is enforced lazily when the code is presented; there
// is no background sweeper.
type RecoveryToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Type      TokenType `gorm:"not null" json:"type"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (RecoveryToken) TableName() string {
	return "recovery_tokens"
}

// Expired reports whether the token's validity window has passed.
func (t *RecoveryToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
