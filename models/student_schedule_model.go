package models

import (
	"time"

	"github.com/google/uuid"
)

type StudentSchedule struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID      uuid.UUID `gorm:"type:uuid;not null;index" json:"orgId"`
	StudentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_student_schedules_student_schedule" json:"studentId" validate:"required"`
	ScheduleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_student_schedules_student_schedule" json:"scheduleId" validate:"required"`
	JoinedAt   time.Time `gorm:"not null;default:now()" json:"joinedAt"`
	IsActive   bool      `gorm:"not null" json:"isActive"`
	IsDeleted  bool      `gorm:"not null;default:false" json:"isDeleted"`

	Student  *Student  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Schedule *Schedule `gorm:"foreignKey:ScheduleID" json:"schedule,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (StudentSchedule) TableName() string { return "student_schedules" }
