package models

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID       uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_students_email_org" json:"orgId"`
	FirstName   string     `gorm:"size:100;not null" json:"firstName" validate:"required,max=100"`
	LastName    string     `gorm:"size:100;not null" json:"lastName" validate:"required,max=100"`
	Nickname    *string    `gorm:"size:100" json:"nickname"`
	Email       *string    `gorm:"size:255;uniqueIndex:idx_students_email_org" json:"email" validate:"omitempty,email"`
	Phone       *string    `gorm:"size:30" json:"phone"`
	Gender      *Gender    `gorm:"size:10" json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	ParentName  *string    `gorm:"size:255" json:"parentName"`
	ParentPhone *string    `gorm:"size:30" json:"parentPhone"`
	Notes       *string    `gorm:"type:text" json:"notes"`
	EnrolledAt  time.Time  `gorm:"not null;default:now()" json:"enrolledAt"`
	IsActive    bool       `gorm:"not null" json:"isActive"`
	IsArchived  bool       `gorm:"not null;default:false" json:"isArchived"`
	IsDeleted   bool       `gorm:"not null;default:false" json:"isDeleted"`

	Schedules      []StudentSchedule `gorm:"foreignKey:StudentID" json:"schedules,omitempty"`
	Courses        []StudentCourse   `gorm:"foreignKey:StudentID" json:"courses,omitempty"`
	Purchases      []Purchase        `gorm:"foreignKey:StudentID" json:"purchases,omitempty"`
	LessonProgress []LessonProgress  `gorm:"foreignKey:StudentID" json:"lessonProgress,omitempty"`
	Invoices       []Invoice         `gorm:"foreignKey:StudentID" json:"invoices,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Student) TableName() string { return "students" }

// FullName joins first and last name.
func (s Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
