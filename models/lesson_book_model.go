package models

import (
	"time"

	"github.com/google/uuid"
)

type LessonBook struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID        uuid.UUID `gorm:"type:uuid;not null;index" json:"orgId"`
	CourseID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_lesson_books_course_number" json:"courseId" validate:"required"`
	Title        string    `gorm:"size:255;not null" json:"title" validate:"required,max=255"`
	LessonNumber int       `gorm:"not null;uniqueIndex:idx_lesson_books_course_number" json:"lessonNumber" validate:"gte=1"`
	Content      *string   `gorm:"type:text" json:"content"`
	IsDeleted    bool      `gorm:"not null;default:false" json:"isDeleted"`

	Course   *Course          `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Progress []LessonProgress `gorm:"foreignKey:LessonBookID" json:"progress,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (LessonBook) TableName() string { return "lesson_books" }
