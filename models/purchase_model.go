package models

import (
	"time"

	"github.com/google/uuid"
)

type Purchase struct {
	ID            uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID         uuid.UUID     `gorm:"type:uuid;not null;index" json:"orgId"`
	StudentID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"studentId" validate:"required"`
	CourseID      *uuid.UUID    `gorm:"type:uuid;index" json:"courseId"`
	InvoiceID     *uuid.UUID    `gorm:"type:uuid;index" json:"invoiceId"`
	Type          PurchaseType  `gorm:"size:20;not null" json:"type" validate:"required,oneof=COURSE MATERIAL REGISTRATION OTHER"`
	PaymentMethod PaymentMethod `gorm:"size:20;not null;default:'CASH'" json:"paymentMethod" validate:"omitempty,oneof=CASH BANK_TRANSFER CREDIT_CARD MOBILE_PAYMENT OTHER"`
	Amount        float64       `gorm:"type:numeric(10,2);not null" json:"amount" validate:"gte=0"`
	Quantity      int           `gorm:"not null" json:"quantity" validate:"gte=0"`
	Description   *string       `gorm:"type:text" json:"description"`
	PurchasedAt   time.Time     `gorm:"not null;default:now()" json:"purchasedAt"`
	IsDeleted     bool          `gorm:"not null;default:false" json:"isDeleted"`

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Course  *Course  `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Invoice *Invoice `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Purchase) TableName() string { return "purchases" }
