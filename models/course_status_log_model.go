package models

import (
	"time"

	"github.com/google/uuid"
)

type CourseStatusLog struct {
	ID              uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID           uuid.UUID     `gorm:"type:uuid;not null;index" json:"orgId"`
	StudentCourseID uuid.UUID     `gorm:"type:uuid;not null;index" json:"studentCourseId" validate:"required"`
	FromStatus      *CourseStatus `gorm:"size:20" json:"fromStatus"`
	ToStatus        CourseStatus  `gorm:"size:20;not null" json:"toStatus" validate:"required,oneof=PENDING ACTIVE PAUSED COMPLETED DROPPED"`
	Note            *string       `gorm:"type:text" json:"note"`
	ChangedAt       time.Time     `gorm:"not null;default:now()" json:"changedAt"`
	IsDeleted       bool          `gorm:"not null;default:false" json:"isDeleted"`

	StudentCourse *StudentCourse `gorm:"foreignKey:StudentCourseID" json:"studentCourse,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (CourseStatusLog) TableName() string { return "course_status_logs" }
