package models

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is a weekly slot. DayOfWeek follows time.Weekday (0 is Sunday).
type Schedule struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"orgId"`
	CourseID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"courseId" validate:"required"`
	TeacherID *uuid.UUID `gorm:"type:uuid;index" json:"teacherId"`
	RoomID    *uuid.UUID `gorm:"type:uuid;index" json:"roomId"`
	DayOfWeek int        `gorm:"not null" json:"dayOfWeek" validate:"gte=0,lte=6"`
	StartTime string     `gorm:"size:5;not null" json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string     `gorm:"size:5;not null" json:"endTime" validate:"required,datetime=15:04"`
	IsActive  bool       `gorm:"not null" json:"isActive"`
	IsDeleted bool       `gorm:"not null;default:false" json:"isDeleted"`

	Course   *Course           `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Teacher  *Teacher          `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Room     *Room             `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Students []StudentSchedule `gorm:"foreignKey:ScheduleID" json:"students,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Schedule) TableName() string { return "schedules" }

// Weekday returns DayOfWeek as a time.Weekday.
func (s Schedule) Weekday() time.Weekday { return time.Weekday(s.DayOfWeek) }
