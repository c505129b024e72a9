package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID              uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID           uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:idx_courses_name_org" json:"orgId"`
	Name            string      `gorm:"size:255;not null;uniqueIndex:idx_courses_name_org" json:"name" validate:"required,max=255"`
	Description     *string     `gorm:"type:text" json:"description"`
	Level           CourseLevel `gorm:"size:20;not null;default:'BEGINNER'" json:"level" validate:"omitempty,oneof=BEGINNER ELEMENTARY INTERMEDIATE UPPER_INTERMEDIATE ADVANCED"`
	Price           float64     `gorm:"type:numeric(10,2);not null;default:0.00" json:"price" validate:"gte=0"`
	TotalLessons    int         `gorm:"not null;default:0" json:"totalLessons" validate:"gte=0"`
	DurationMinutes int         `gorm:"not null" json:"durationMinutes" validate:"gte=0"`
	TeacherID       *uuid.UUID  `gorm:"type:uuid;index" json:"teacherId"`
	RoomID          *uuid.UUID  `gorm:"type:uuid;index" json:"roomId"`
	IsActive        bool        `gorm:"not null" json:"isActive"`
	IsArchived      bool        `gorm:"not null;default:false" json:"isArchived"`
	IsDeleted       bool        `gorm:"not null;default:false" json:"isDeleted"`

	Teacher     *Teacher        `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Room        *Room           `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Schedules   []Schedule      `gorm:"foreignKey:CourseID" json:"schedules,omitempty"`
	LessonBooks []LessonBook    `gorm:"foreignKey:CourseID" json:"lessonBooks,omitempty"`
	Students    []StudentCourse `gorm:"foreignKey:CourseID" json:"students,omitempty"`
	Purchases   []Purchase      `gorm:"foreignKey:CourseID" json:"purchases,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Course) TableName() string { return "courses" }
