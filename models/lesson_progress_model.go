package models

import (
	"time"

	"github.com/google/uuid"
)

type LessonProgress struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"orgId"`
	StudentID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_lesson_progress_student_book" json:"studentId" validate:"required"`
	LessonBookID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_lesson_progress_student_book" json:"lessonBookId" validate:"required"`
	IsCompleted  bool       `gorm:"not null;default:false" json:"isCompleted"`
	CompletedAt  *time.Time `json:"completedAt"`
	Score        *float64   `gorm:"type:numeric(5,2)" json:"score" validate:"omitempty,gte=0,lte=100"`
	Notes        *string    `gorm:"type:text" json:"notes"`
	IsDeleted    bool       `gorm:"not null;default:false" json:"isDeleted"`

	Student    *Student    `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	LessonBook *LessonBook `gorm:"foreignKey:LessonBookID" json:"lessonBook,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (LessonProgress) TableName() string { return "lesson_progress" }
