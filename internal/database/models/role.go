package models

import (
	"time"

	"github.com/google/uuid"
)

type RoleStatus string

const (
	RoleStatusActive  RoleStatus = "ACTIVE"
	RoleStatusDeleted RoleStatus = "DELETED"
)

// Role is a named, company-scoped bundle of permission strings. Deleting a
// role is a status change; the row is never removed. DeletedAt is set iff
// Status is DELETED — mutate through SoftDelete to keep the pair in step.
type Role struct {
	Base
	Name        string      `gorm:"uniqueIndex:idx_role_name_company;not null" json:"name"`
	CompanyID   uuid.UUID   `gorm:"type:uuid;uniqueIndex:idx_role_name_company;not null" json:"company_id"`
	Permissions StringArray `gorm:"type:text" json:"permissions"`
	Status      RoleStatus  `gorm:"default:'ACTIVE'" json:"status"`
	DeletedAt   *time.Time  `json:"deleted_at,omitempty"`
	CreatedByID uuid.UUID   `gorm:"type:uuid" json:"created_by_id"`
	UpdatedByID uuid.UUID   `gorm:"type:uuid" json:"updated_by_id"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (Role) TableName() string {
	return "roles"
}

// SoftDelete marks the role deleted and stamps the deletion time.
func (r *Role) SoftDelete(at time.Time) {
	r.Status = RoleStatusDeleted
	r.DeletedAt = &at
}

// IsDeleted reports whether the role has been soft-deleted.
func (r *Role) IsDeleted() bool {
	return r.Status == RoleStatusDeleted
}
