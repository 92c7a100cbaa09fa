// Package clientrepo persists client aggregates with gorm.
package clientrepo

import (
	"time"

	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ClientDTO is the clients table. UUIDs are stored as char(36) so the same
// schema works on postgres and mysql.
type ClientDTO struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:255;not null;uniqueIndex"`
	Phone     string    `gorm:"size:20;not null"`
	Address   string    `gorm:"size:255;not null"`
	Status    string    `gorm:"size:10;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ClientDTO) TableName() string {
	return "clients"
}

func fromDomain(c *client.Client) ClientDTO {
	return ClientDTO{
		ID:      c.ID().Bytes(),
		Name:    c.Name(),
		Email:   c.Email(),
		Phone:   c.Phone(),
		Address: c.Address(),
		Status:  string(c.Status()),
	}
}

func toDomain(dto ClientDTO) (*client.Client, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return client.RestoreClient(id, dto.Name, dto.Email, dto.Phone, dto.Address, client.Status(dto.Status))
}
