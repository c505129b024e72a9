package client

import (
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type PurchaseField string

const (
	PurchaseFieldID            PurchaseField = "id"
	PurchaseFieldOrgID         PurchaseField = "orgId"
	PurchaseFieldStudentID     PurchaseField = "studentId"
	PurchaseFieldCourseID      PurchaseField = "courseId"
	PurchaseFieldInvoiceID     PurchaseField = "invoiceId"
	PurchaseFieldType          PurchaseField = "type"
	PurchaseFieldPaymentMethod PurchaseField = "paymentMethod"
	PurchaseFieldAmount        PurchaseField = "amount"
	PurchaseFieldQuantity      PurchaseField = "quantity"
	PurchaseFieldDescription   PurchaseField = "description"
	PurchaseFieldPurchasedAt   PurchaseField = "purchasedAt"
	PurchaseFieldIsDeleted     PurchaseField = "isDeleted"
	PurchaseFieldCreatedAt     PurchaseField = "createdAt"
	PurchaseFieldUpdatedAt     PurchaseField = "updatedAt"
)

// Relations that can be included with Purchase reads.
const (
	PurchaseIncludeStudent = "student"
	PurchaseIncludeCourse  = "course"
	PurchaseIncludeInvoice = "invoice"
)

var (
	purchaseStudent = query.Relation{Name: "student", Table: "students", Column: "id", References: "student_id"}
	purchaseCourse  = query.Relation{Name: "course", Table: "courses", Column: "id", References: "course_id"}
	purchaseInvoice = query.Relation{Name: "invoice", Table: "invoices", Column: "id", References: "invoice_id"}
)

type PurchaseWhereInput struct {
	AND []PurchaseWhereInput `json:"AND,omitempty"`
	OR  []PurchaseWhereInput `json:"OR,omitempty"`
	NOT []PurchaseWhereInput `json:"NOT,omitempty"`

	ID            *query.UUIDFilter                         `json:"id,omitempty"`
	OrgID         *query.UUIDFilter                         `json:"orgId,omitempty"`
	StudentID     *query.UUIDFilter                         `json:"studentId,omitempty"`
	CourseID      *query.UUIDFilter                         `json:"courseId,omitempty"`
	InvoiceID     *query.UUIDFilter                         `json:"invoiceId,omitempty"`
	Type          *query.EqualsFilter[models.PurchaseType]  `json:"type,omitempty"`
	PaymentMethod *query.EqualsFilter[models.PaymentMethod] `json:"paymentMethod,omitempty"`
	Amount        *query.FloatFilter                        `json:"amount,omitempty"`
	Quantity      *query.IntFilter                          `json:"quantity,omitempty"`
	Description   *query.StringFilter                       `json:"description,omitempty"`
	PurchasedAt   *query.DateTimeFilter                     `json:"purchasedAt,omitempty"`
	IsDeleted     *query.BoolFilter                         `json:"isDeleted,omitempty"`
	CreatedAt     *query.DateTimeFilter                     `json:"createdAt,omitempty"`
	UpdatedAt     *query.DateTimeFilter                     `json:"updatedAt,omitempty"`

	Student *query.RelationFilter[StudentWhereInput] `json:"student,omitempty"`
	Course  *query.RelationFilter[CourseWhereInput]  `json:"course,omitempty"`
	Invoice *query.RelationFilter[InvoiceWhereInput] `json:"invoice,omitempty"`
}

func (w PurchaseWhereInput) Expression(alias string) clause.Expression {
	b := query.NewWhere(alias)
	query.Logical(b, w.AND, w.OR, w.NOT)
	b.Field("id", w.ID).
		Field("org_id", w.OrgID).
		Field("student_id", w.StudentID).
		Field("course_id", w.CourseID).
		Field("invoice_id", w.InvoiceID).
		Field("type", w.Type).
		Field("payment_method", w.PaymentMethod).
		Field("amount", w.Amount).
		Field("quantity", w.Quantity).
		Field("description", w.Description).
		Field("purchased_at", w.PurchasedAt).
		Field("is_deleted", w.IsDeleted).
		Field("created_at", w.CreatedAt).
		Field("updated_at", w.UpdatedAt)
	b.Relation(purchaseStudent, w.Student).
		Relation(purchaseCourse, w.Course).
		Relation(purchaseInvoice, w.Invoice)
	return b.Expression()
}

type PurchaseWhereUniqueInput struct {
	ID *uuid.UUID `json:"id,omitempty"`
}

func (u PurchaseWhereUniqueInput) UniqueExpression(alias string) (clause.Expression, error) {
	return query.Unique("Purchase", byID(alias, u.ID))
}

func (u PurchaseWhereUniqueInput) PrimaryKey() (uuid.UUID, bool) {
	return primaryKey(u.ID, true)
}

type (
	PurchaseDelegate       = Delegate[models.Purchase, PurchaseWhereInput, PurchaseWhereUniqueInput, PurchaseField]
	PurchaseFindUniqueArgs = query.FindUniqueArgs[PurchaseWhereUniqueInput, PurchaseField]
	PurchaseFindManyArgs   = query.FindManyArgs[PurchaseWhereInput, PurchaseWhereUniqueInput, PurchaseField]
	PurchaseCountArgs      = query.CountArgs[PurchaseWhereInput, PurchaseWhereUniqueInput, PurchaseField]
	PurchaseAggregateArgs  = query.AggregateArgs[PurchaseWhereInput, PurchaseWhereUniqueInput, PurchaseField]
	PurchaseGroupByArgs    = query.GroupByArgs[PurchaseWhereInput, PurchaseField]
	PurchaseOrderBy        = query.OrderBy[PurchaseField]
	PurchaseAssignment     = query.Assignment[PurchaseField]
)
