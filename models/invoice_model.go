package models

import (
	"time"

	"github.com/google/uuid"
)

type Invoice struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID         uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_invoices_number_org" json:"orgId"`
	StudentID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"studentId" validate:"required"`
	InvoiceNumber string         `gorm:"size:20;not null;uniqueIndex:idx_invoices_number_org" json:"invoiceNumber" validate:"required,max=20"`
	IssuedAt      time.Time      `gorm:"not null;default:now()" json:"issuedAt"`
	DueAt         *time.Time     `json:"dueAt"`
	TotalAmount   float64        `gorm:"type:numeric(10,2);not null;default:0.00" json:"totalAmount" validate:"gte=0"`
	IsPaid        bool           `gorm:"not null;default:false" json:"isPaid"`
	PaidAt        *time.Time     `json:"paidAt"`
	PaymentMethod *PaymentMethod `gorm:"size:20" json:"paymentMethod" validate:"omitempty,oneof=CASH BANK_TRANSFER CREDIT_CARD MOBILE_PAYMENT OTHER"`
	Notes         *string        `gorm:"type:text" json:"notes"`
	DocumentURL   *string        `gorm:"type:text" json:"documentUrl"`
	IsDeleted     bool           `gorm:"not null;default:false" json:"isDeleted"`

	Student   *Student   `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Purchases []Purchase `gorm:"foreignKey:InvoiceID" json:"purchases,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Invoice) TableName() string { return "invoices" }

// IsOverdue reports whether the invoice is unpaid past its due date.
func (i Invoice) IsOverdue(now time.Time) bool {
	return !i.IsPaid && i.DueAt != nil && i.DueAt.Before(now)
}
