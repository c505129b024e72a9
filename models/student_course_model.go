package models

import (
	"time"

	"github.com/google/uuid"
)

// StudentCourse records one student's enrolment in one course.
type StudentCourse struct {
	ID          uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"orgId"`
	StudentID   uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_student_courses_student_course" json:"studentId" validate:"required"`
	CourseID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_student_courses_student_course" json:"courseId" validate:"required"`
	Status      CourseStatus `gorm:"size:20;not null;default:'PENDING'" json:"status" validate:"omitempty,oneof=PENDING ACTIVE PAUSED COMPLETED DROPPED"`
	StartedAt   *time.Time   `json:"startedAt"`
	CompletedAt *time.Time   `json:"completedAt"`
	IsArchived  bool         `gorm:"not null;default:false" json:"isArchived"`
	IsDeleted   bool         `gorm:"not null;default:false" json:"isDeleted"`

	Student    *Student          `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Course     *Course           `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	StatusLogs []CourseStatusLog `gorm:"foreignKey:StudentCourseID" json:"statusLogs,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (StudentCourse) TableName() string { return "student_courses" }
