package models

import "github.com/google/uuid"

// Per-company reference records seeded when a company is created. They are
// plain lookup tables for the ticketing surface; creation is part of the
// company transaction so a company never exists half-provisioned.

type TicketStatusKind string

const (
	TicketStatusKindNew     TicketStatusKind = "NEW"
	TicketStatusKindPending TicketStatusKind = "PENDING"
	TicketStatusKindClosed  TicketStatusKind = "CLOSED"
)

type DocumentType struct {
	Base
	Name        string    `gorm:"not null" json:"name"`
	CompanyID   uuid.UUID `gorm:"type:uuid;index;not null" json:"company_id"`
	CreatedByID uuid.UUID `gorm:"type:uuid" json:"created_by_id"`
	UpdatedByID uuid.UUID `gorm:"type:uuid" json:"updated_by_id"`
}

func (DocumentType) TableName() string {
	return "document_types"
}

type ServiceForm struct {
	Base
	Name        string    `gorm:"not null" json:"name"`
	CompanyID   uuid.UUID `gorm:"type:uuid;index;not null" json:"company_id"`
	CreatedByID uuid.UUID `gorm:"type:uuid" json:"created_by_id"`
	UpdatedByID uuid.UUID `gorm:"type:uuid" json:"updated_by_id"`
}

func (ServiceForm) TableName() string {
	return "service_forms"
}

type TicketType struct {
	Base
	Name        string        `gorm:"not null" json:"name"`
	CompanyID   uuid.UUID     `gorm:"type:uuid;index;not null" json:"company_id"`
	Status      CompanyStatus `gorm:"default:'ACTIVE'" json:"status"`
	CreatedByID uuid.UUID     `gorm:"type:uuid" json:"created_by_id"`
	UpdatedByID uuid.UUID     `gorm:"type:uuid" json:"updated_by_id"`
}

func (TicketType) TableName() string {
	return "ticket_types"
}

type TicketStage struct {
	Base
	Name        string    `gorm:"not null" json:"name"`
	CompanyID   uuid.UUID `gorm:"type:uuid;index;not null" json:"company_id"`
	CreatedByID uuid.UUID `gorm:"type:uuid" json:"created_by_id"`
	UpdatedByID uuid.UUID `gorm:"type:uuid" json:"updated_by_id"`
}

func (TicketStage) TableName() string {
	return "ticket_stages"
}

type TicketStatus struct {
	Base
	Name        string           `gorm:"not null" json:"name"`
	Kind        TicketStatusKind `gorm:"not null" json:"kind"`
	CompanyID   uuid.UUID        `gorm:"type:uuid;index;not null" json:"company_id"`
	CreatedByID uuid.UUID        `gorm:"type:uuid" json:"created_by_id"`
	UpdatedByID uuid.UUID        `gorm:"type:uuid" json:"updated_by_id"`
}

func (TicketStatus) TableName() string {
	return "ticket_statuses"
}
