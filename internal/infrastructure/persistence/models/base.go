package models

import (
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel holds the columns shared by all tables
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// OwnedModel adds the owning user column
type OwnedModel struct {
	BaseModel
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// FromDomainOwnedEntity copies the shared entity fields into the model
func (m *OwnedModel) FromDomainOwnedEntity(e shared.OwnedEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
	m.OwnerID = e.OwnerID
}

// ToDomainOwnedEntity rebuilds the shared entity fields from the model
func (m *OwnedModel) ToDomainOwnedEntity() shared.OwnedEntity {
	return shared.OwnedEntity{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		OwnerID: m.OwnerID,
	}
}
