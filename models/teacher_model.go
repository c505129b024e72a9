package models

import (
	"time"

	"github.com/google/uuid"
)

type Teacher struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_teachers_email_org" json:"orgId"`
	Name      string    `gorm:"size:255;not null" json:"name" validate:"required,max=255"`
	Email     *string   `gorm:"size:255;uniqueIndex:idx_teachers_email_org" json:"email" validate:"omitempty,email"`
	Phone     *string   `gorm:"size:30" json:"phone"`
	Gender    *Gender   `gorm:"size:10" json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	IsDeleted bool      `gorm:"not null;default:false" json:"isDeleted"`

	Courses   []Course   `gorm:"foreignKey:TeacherID" json:"courses,omitempty"`
	Schedules []Schedule `gorm:"foreignKey:TeacherID" json:"schedules,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Teacher) TableName() string { return "teachers" }
