package client

import (
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type StudentField string

const (
	StudentFieldID          StudentField = "id"
	StudentFieldOrgID       StudentField = "orgId"
	StudentFieldFirstName   StudentField = "firstName"
	StudentFieldLastName    StudentField = "lastName"
	StudentFieldNickname    StudentField = "nickname"
	StudentFieldEmail       StudentField = "email"
	StudentFieldPhone       StudentField = "phone"
	StudentFieldGender      StudentField = "gender"
	StudentFieldDateOfBirth StudentField = "dateOfBirth"
	StudentFieldParentName  StudentField = "parentName"
	StudentFieldParentPhone StudentField = "parentPhone"
	StudentFieldNotes       StudentField = "notes"
	StudentFieldEnrolledAt  StudentField = "enrolledAt"
	StudentFieldIsActive    StudentField = "isActive"
	StudentFieldIsArchived  StudentField = "isArchived"
	StudentFieldIsDeleted   StudentField = "isDeleted"
	StudentFieldCreatedAt   StudentField = "createdAt"
	StudentFieldUpdatedAt   StudentField = "updatedAt"
)

// Relations that can be included with Student reads.
const (
	StudentIncludeSchedules      = "schedules"
	StudentIncludeCourses        = "courses"
	StudentIncludePurchases      = "purchases"
	StudentIncludeLessonProgress = "lessonProgress"
	StudentIncludeInvoices       = "invoices"
)

var (
	studentSchedules      = query.Relation{Name: "schedules", Table: "student_schedules", Column: "student_id", References: "id"}
	studentCourses        = query.Relation{Name: "courses", Table: "student_courses", Column: "student_id", References: "id"}
	studentPurchases      = query.Relation{Name: "purchases", Table: "purchases", Column: "student_id", References: "id"}
	studentLessonProgress = query.Relation{Name: "lessonProgress", Table: "lesson_progress", Column: "student_id", References: "id"}
	studentInvoices       = query.Relation{Name: "invoices", Table: "invoices", Column: "student_id", References: "id"}
)

// StudentWhereInput filters students. Every set field must match; relation
// filters match through correlated EXISTS subqueries.
type StudentWhereInput struct {
	AND []StudentWhereInput `json:"AND,omitempty"`
	OR  []StudentWhereInput `json:"OR,omitempty"`
	NOT []StudentWhereInput `json:"NOT,omitempty"`

	ID          *query.UUIDFilter                  `json:"id,omitempty"`
	OrgID       *query.UUIDFilter                  `json:"orgId,omitempty"`
	FirstName   *query.StringFilter                `json:"firstName,omitempty"`
	LastName    *query.StringFilter                `json:"lastName,omitempty"`
	Nickname    *query.StringFilter                `json:"nickname,omitempty"`
	Email       *query.StringFilter                `json:"email,omitempty"`
	Phone       *query.StringFilter                `json:"phone,omitempty"`
	Gender      *query.EqualsFilter[models.Gender] `json:"gender,omitempty"`
	DateOfBirth *query.DateTimeFilter              `json:"dateOfBirth,omitempty"`
	ParentName  *query.StringFilter                `json:"parentName,omitempty"`
	ParentPhone *query.StringFilter                `json:"parentPhone,omitempty"`
	Notes       *query.StringFilter                `json:"notes,omitempty"`
	EnrolledAt  *query.DateTimeFilter              `json:"enrolledAt,omitempty"`
	IsActive    *query.BoolFilter                  `json:"isActive,omitempty"`
	IsArchived  *query.BoolFilter                  `json:"isArchived,omitempty"`
	IsDeleted   *query.BoolFilter                  `json:"isDeleted,omitempty"`
	CreatedAt   *query.DateTimeFilter              `json:"createdAt,omitempty"`
	UpdatedAt   *query.DateTimeFilter              `json:"updatedAt,omitempty"`

	Schedules      *query.ListRelationFilter[StudentScheduleWhereInput] `json:"schedules,omitempty"`
	Courses        *query.ListRelationFilter[StudentCourseWhereInput]   `json:"courses,omitempty"`
	Purchases      *query.ListRelationFilter[PurchaseWhereInput]        `json:"purchases,omitempty"`
	LessonProgress *query.ListRelationFilter[LessonProgressWhereInput]  `json:"lessonProgress,omitempty"`
	Invoices       *query.ListRelationFilter[InvoiceWhereInput]         `json:"invoices,omitempty"`
}

func (w StudentWhereInput) Expression(alias string) clause.Expression {
	b := query.NewWhere(alias)
	query.Logical(b, w.AND, w.OR, w.NOT)
	b.Field("id", w.ID).
		Field("org_id", w.OrgID).
		Field("first_name", w.FirstName).
		Field("last_name", w.LastName).
		Field("nickname", w.Nickname).
		Field("email", w.Email).
		Field("phone", w.Phone).
		Field("gender", w.Gender).
		Field("date_of_birth", w.DateOfBirth).
		Field("parent_name", w.ParentName).
		Field("parent_phone", w.ParentPhone).
		Field("notes", w.Notes).
		Field("enrolled_at", w.EnrolledAt).
		Field("is_active", w.IsActive).
		Field("is_archived", w.IsArchived).
		Field("is_deleted", w.IsDeleted).
		Field("created_at", w.CreatedAt).
		Field("updated_at", w.UpdatedAt)
	b.Relation(studentSchedules, w.Schedules).
		Relation(studentCourses, w.Courses).
		Relation(studentPurchases, w.Purchases).
		Relation(studentLessonProgress, w.LessonProgress).
		Relation(studentInvoices, w.Invoices)
	return b.Expression()
}

type StudentEmailOrgIDCompoundUniqueInput struct {
	Email string    `json:"email"`
	OrgID uuid.UUID `json:"orgId"`
}

// StudentWhereUniqueInput selects one student by id or by email within an
// organization.
type StudentWhereUniqueInput struct {
	ID         *uuid.UUID                            `json:"id,omitempty"`
	EmailOrgID *StudentEmailOrgIDCompoundUniqueInput `json:"email_orgId,omitempty"`
}

func (u StudentWhereUniqueInput) UniqueExpression(alias string) (clause.Expression, error) {
	keys := []clause.Expression{byID(alias, u.ID)}
	if k := u.EmailOrgID; k != nil {
		keys = append(keys, query.And(query.Equals(alias, "email", k.Email), query.Equals(alias, "org_id", k.OrgID)))
	}
	return query.Unique("Student", keys...)
}

func (u StudentWhereUniqueInput) PrimaryKey() (uuid.UUID, bool) {
	return primaryKey(u.ID, u.EmailOrgID == nil)
}

type (
	StudentDelegate       = Delegate[models.Student, StudentWhereInput, StudentWhereUniqueInput, StudentField]
	StudentFindUniqueArgs = query.FindUniqueArgs[StudentWhereUniqueInput, StudentField]
	StudentFindManyArgs   = query.FindManyArgs[StudentWhereInput, StudentWhereUniqueInput, StudentField]
	StudentCountArgs      = query.CountArgs[StudentWhereInput, StudentWhereUniqueInput, StudentField]
	StudentAggregateArgs  = query.AggregateArgs[StudentWhereInput, StudentWhereUniqueInput, StudentField]
	StudentGroupByArgs    = query.GroupByArgs[StudentWhereInput, StudentField]
	StudentOrderBy        = query.OrderBy[StudentField]
	StudentAssignment     = query.Assignment[StudentField]
)
