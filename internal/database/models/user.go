package models

import "github.com/google/uuid"

// User is an account holder. PasswordHash is nil for social-login-only
// accounts; deactivation flips IsActive instead of deleting the row.
type User struct {
	Base
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash *string `gorm:"column:password_hash" json:"-"`
	FullName     string  `json:"full_name"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	AvatarURL    *string `json:"avatar_url"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`

	// Relationships
	OwnsCompanies []Company    `gorm:"foreignKey:OwnerID" json:"-"`
	Memberships   []Membership `gorm:"foreignKey:UserID" json:"-"`
	Accounts      []Account    `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Account links a user to an external identity provider. Rows are created by
// the social-login flow; this service only stores them.
type Account struct {
	Base
	Provider          string    `gorm:"uniqueIndex:idx_provider_account;not null" json:"provider"`
	ProviderAccountID string    `gorm:"uniqueIndex:idx_provider_account;not null" json:"provider_account_id"`
	UserID            uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
}

func (Account) TableName() string {
	return "accounts"
}
