package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	FullName   string `gorm:"size:200;not null" json:"full_name"`
	DocumentID string `gorm:"size:50;uniqueIndex;not null" json:"document_id"`
	Phone      string `gorm:"size:20" json:"phone"`
	Email      string `gorm:"size:100" json:"email"`
	Address    string `json:"address"`

	Rentals []Rental `gorm:"foreignKey:ClientID" json:"rentals,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
