package models

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_rooms_name_org" json:"orgId"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_rooms_name_org" json:"name" validate:"required,max=100"`
	Capacity  int       `gorm:"not null" json:"capacity" validate:"gte=0"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	IsDeleted bool      `gorm:"not null;default:false" json:"isDeleted"`

	Courses   []Course   `gorm:"foreignKey:RoomID" json:"courses,omitempty"`
	Schedules []Schedule `gorm:"foreignKey:RoomID" json:"schedules,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Room) TableName() string { return "rooms" }
