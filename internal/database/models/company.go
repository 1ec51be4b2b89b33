package models

import "github.com/google/uuid"

type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "ACTIVE"
	CompanyStatusInactive CompanyStatus = "INACTIVE"
)

// Company is a tenant. The unique index on OwnerID enforces the
// one-company-per-owner cap at the store level; handlers still pre-check to
// return a friendly message. Usage counters only move through guarded
// atomic updates, in the same transaction as the row they account for.
type Company struct {
	Base
	Name             string        `gorm:"not null" json:"name"`
	Slug             string        `gorm:"uniqueIndex;not null" json:"slug"`
	OwnerID          uuid.UUID     `gorm:"type:uuid;uniqueIndex;not null" json:"owner_id"`
	Status           CompanyStatus `gorm:"default:'ACTIVE'" json:"status"`
	DomainsLimit     int           `gorm:"default:3" json:"domains_limit"`
	DomainsUsage     int           `gorm:"default:0" json:"domains_usage"`
	UserLimit        int           `gorm:"default:50" json:"user_limit"`
	UserUsage        int           `gorm:"default:0" json:"user_usage"`
	AutoJoinByDomain bool          `gorm:"default:false" json:"auto_join_by_domain"`
	DefaultRoleID    *uuid.UUID    `gorm:"type:uuid" json:"default_role_id"`

	// Relationships
	Owner       *User          `gorm:"foreignKey:OwnerID" json:"-"`
	Domains     []CustomDomain `gorm:"foreignKey:CompanyID" json:"-"`
	Roles       []Role         `gorm:"foreignKey:CompanyID" json:"-"`
	Memberships []Membership   `gorm:"foreignKey:CompanyID" json:"-"`
}

func (Company) TableName() string {
	return "companies"
}

// CustomDomain is a company-registered domain. Domain strings are globally
// unique; the first domain a company registers becomes its primary one.
type CustomDomain struct {
	Base
	Domain    string    `gorm:"uniqueIndex;not null" json:"domain"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null" json:"company_id"`
	Primary   bool      `gorm:"default:false" json:"primary"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	OnlyEmail bool      `gorm:"default:false" json:"only_email"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (CustomDomain) TableName() string {
	return "custom_domains"
}

// Membership binds one user to one role within one company. At most one
// membership per (user, company) pair.
type Membership struct {
	Base
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_company;not null" json:"user_id"`
	CompanyID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_company;not null" json:"company_id"`
	RoleID    uuid.UUID `gorm:"type:uuid;not null" json:"role_id"`

	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Company *Company `gorm:"foreignKey:CompanyID" json:"-"`
	Role    *Role    `gorm:"foreignKey:RoleID" json:"-"`
}

func (Membership) TableName() string {
	return "memberships"
}
