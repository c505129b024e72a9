package client

import (
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type InvoiceField string

const (
	InvoiceFieldID            InvoiceField = "id"
	InvoiceFieldOrgID         InvoiceField = "orgId"
	InvoiceFieldStudentID     InvoiceField = "studentId"
	InvoiceFieldInvoiceNumber InvoiceField = "invoiceNumber"
	InvoiceFieldIssuedAt      InvoiceField = "issuedAt"
	InvoiceFieldDueAt         InvoiceField = "dueAt"
	InvoiceFieldTotalAmount   InvoiceField = "totalAmount"
	InvoiceFieldIsPaid        InvoiceField = "isPaid"
	InvoiceFieldPaidAt        InvoiceField = "paidAt"
	InvoiceFieldPaymentMethod InvoiceField = "paymentMethod"
	InvoiceFieldNotes         InvoiceField = "notes"
	InvoiceFieldDocumentURL   InvoiceField = "documentUrl"
	InvoiceFieldIsDeleted     InvoiceField = "isDeleted"
	InvoiceFieldCreatedAt     InvoiceField = "createdAt"
	InvoiceFieldUpdatedAt     InvoiceField = "updatedAt"
)

// Relations that can be included with Invoice reads.
const (
	InvoiceIncludeStudent   = "student"
	InvoiceIncludePurchases = "purchases"
)

var (
	invoiceStudent   = query.Relation{Name: "student", Table: "students", Column: "id", References: "student_id"}
	invoicePurchases = query.Relation{Name: "purchases", Table: "purchases", Column: "invoice_id", References: "id"}
)

type InvoiceWhereInput struct {
	AND []InvoiceWhereInput `json:"AND,omitempty"`
	OR  []InvoiceWhereInput `json:"OR,omitempty"`
	NOT []InvoiceWhereInput `json:"NOT,omitempty"`

	ID            *query.UUIDFilter                         `json:"id,omitempty"`
	OrgID         *query.UUIDFilter                         `json:"orgId,omitempty"`
	StudentID     *query.UUIDFilter                         `json:"studentId,omitempty"`
	InvoiceNumber *query.StringFilter                       `json:"invoiceNumber,omitempty"`
	IssuedAt      *query.DateTimeFilter                     `json:"issuedAt,omitempty"`
	DueAt         *query.DateTimeFilter                     `json:"dueAt,omitempty"`
	TotalAmount   *query.FloatFilter                        `json:"totalAmount,omitempty"`
	IsPaid        *query.BoolFilter                         `json:"isPaid,omitempty"`
	PaidAt        *query.DateTimeFilter                     `json:"paidAt,omitempty"`
	PaymentMethod *query.EqualsFilter[models.PaymentMethod] `json:"paymentMethod,omitempty"`
	Notes         *query.StringFilter                       `json:"notes,omitempty"`
	DocumentURL   *query.StringFilter                       `json:"documentUrl,omitempty"`
	IsDeleted     *query.BoolFilter                         `json:"isDeleted,omitempty"`
	CreatedAt     *query.DateTimeFilter                     `json:"createdAt,omitempty"`
	UpdatedAt     *query.DateTimeFilter                     `json:"updatedAt,omitempty"`

	Student   *query.RelationFilter[StudentWhereInput]      `json:"student,omitempty"`
	Purchases *query.ListRelationFilter[PurchaseWhereInput] `json:"purchases,omitempty"`
}

func (w InvoiceWhereInput) Expression(alias string) clause.Expression {
	b := query.NewWhere(alias)
	query.Logical(b, w.AND, w.OR, w.NOT)
	b.Field("id", w.ID).
		Field("org_id", w.OrgID).
		Field("student_id", w.StudentID).
		Field("invoice_number", w.InvoiceNumber).
		Field("issued_at", w.IssuedAt).
		Field("due_at", w.DueAt).
		Field("total_amount", w.TotalAmount).
		Field("is_paid", w.IsPaid).
		Field("paid_at", w.PaidAt).
		Field("payment_method", w.PaymentMethod).
		Field("notes", w.Notes).
		Field("document_url", w.DocumentURL).
		Field("is_deleted", w.IsDeleted).
		Field("created_at", w.CreatedAt).
		Field("updated_at", w.UpdatedAt)
	b.Relation(invoiceStudent, w.Student).
		Relation(invoicePurchases, w.Purchases)
	return b.Expression()
}

type InvoiceInvoiceNumberOrgIDCompoundUniqueInput struct {
	InvoiceNumber string    `json:"invoiceNumber"`
	OrgID         uuid.UUID `json:"orgId"`
}

// InvoiceWhereUniqueInput selects one invoice by id or by its number within
// an organization.
type InvoiceWhereUniqueInput struct {
	ID                 *uuid.UUID                                    `json:"id,omitempty"`
	InvoiceNumberOrgID *InvoiceInvoiceNumberOrgIDCompoundUniqueInput `json:"invoiceNumber_orgId,omitempty"`
}

func (u InvoiceWhereUniqueInput) UniqueExpression(alias string) (clause.Expression, error) {
	keys := []clause.Expression{byID(alias, u.ID)}
	if k := u.InvoiceNumberOrgID; k != nil {
		keys = append(keys, query.And(query.Equals(alias, "invoice_number", k.InvoiceNumber), query.Equals(alias, "org_id", k.OrgID)))
	}
	return query.Unique("Invoice", keys...)
}

func (u InvoiceWhereUniqueInput) PrimaryKey() (uuid.UUID, bool) {
	return primaryKey(u.ID, u.InvoiceNumberOrgID == nil)
}

type (
	InvoiceDelegate       = Delegate[models.Invoice, InvoiceWhereInput, InvoiceWhereUniqueInput, InvoiceField]
	InvoiceFindUniqueArgs = query.FindUniqueArgs[InvoiceWhereUniqueInput, InvoiceField]
	InvoiceFindManyArgs   = query.FindManyArgs[InvoiceWhereInput, InvoiceWhereUniqueInput, InvoiceField]
	InvoiceCountArgs      = query.CountArgs[InvoiceWhereInput, InvoiceWhereUniqueInput, InvoiceField]
	InvoiceAggregateArgs  = query.AggregateArgs[InvoiceWhereInput, InvoiceWhereUniqueInput, InvoiceField]
	InvoiceGroupByArgs    = query.GroupByArgs[InvoiceWhereInput, InvoiceField]
	InvoiceOrderBy        = query.OrderBy[InvoiceField]
	InvoiceAssignment     = query.Assignment[InvoiceField]
)
