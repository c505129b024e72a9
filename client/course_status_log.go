package client

import (
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type CourseStatusLogField string

const (
	CourseStatusLogFieldID              CourseStatusLogField = "id"
	CourseStatusLogFieldOrgID           CourseStatusLogField = "orgId"
	CourseStatusLogFieldStudentCourseID CourseStatusLogField = "studentCourseId"
	CourseStatusLogFieldFromStatus      CourseStatusLogField = "fromStatus"
	CourseStatusLogFieldToStatus        CourseStatusLogField = "toStatus"
	CourseStatusLogFieldNote            CourseStatusLogField = "note"
	CourseStatusLogFieldChangedAt       CourseStatusLogField = "changedAt"
	CourseStatusLogFieldIsDeleted       CourseStatusLogField = "isDeleted"
	CourseStatusLogFieldCreatedAt       CourseStatusLogField = "createdAt"
	CourseStatusLogFieldUpdatedAt       CourseStatusLogField = "updatedAt"
)

// Relations that can be included with CourseStatusLog reads.
const (
	CourseStatusLogIncludeStudentCourse = "studentCourse"
)

var (
	courseStatusLogStudentCourse = query.Relation{Name: "studentCourse", Table: "student_courses", Column: "id", References: "student_course_id"}
)

type CourseStatusLogWhereInput struct {
	AND []CourseStatusLogWhereInput `json:"AND,omitempty"`
	OR  []CourseStatusLogWhereInput `json:"OR,omitempty"`
	NOT []CourseStatusLogWhereInput `json:"NOT,omitempty"`

	ID              *query.UUIDFilter                        `json:"id,omitempty"`
	OrgID           *query.UUIDFilter                        `json:"orgId,omitempty"`
	StudentCourseID *query.UUIDFilter                        `json:"studentCourseId,omitempty"`
	FromStatus      *query.EqualsFilter[models.CourseStatus] `json:"fromStatus,omitempty"`
	ToStatus        *query.EqualsFilter[models.CourseStatus] `json:"toStatus,omitempty"`
	Note            *query.StringFilter                      `json:"note,omitempty"`
	ChangedAt       *query.DateTimeFilter                    `json:"changedAt,omitempty"`
	IsDeleted       *query.BoolFilter                        `json:"isDeleted,omitempty"`
	CreatedAt       *query.DateTimeFilter                    `json:"createdAt,omitempty"`
	UpdatedAt       *query.DateTimeFilter                    `json:"updatedAt,omitempty"`

	StudentCourse *query.RelationFilter[StudentCourseWhereInput] `json:"studentCourse,omitempty"`
}

func (w CourseStatusLogWhereInput) Expression(alias string) clause.Expression {
	b := query.NewWhere(alias)
	query.Logical(b, w.AND, w.OR, w.NOT)
	b.Field("id", w.ID).
		Field("org_id", w.OrgID).
		Field("student_course_id", w.StudentCourseID).
		Field("from_status", w.FromStatus).
		Field("to_status", w.ToStatus).
		Field("note", w.Note).
		Field("changed_at", w.ChangedAt).
		Field("is_deleted", w.IsDeleted).
		Field("created_at", w.CreatedAt).
		Field("updated_at", w.UpdatedAt)
	b.Relation(courseStatusLogStudentCourse, w.StudentCourse)
	return b.Expression()
}

type CourseStatusLogWhereUniqueInput struct {
	ID *uuid.UUID `json:"id,omitempty"`
}

func (u CourseStatusLogWhereUniqueInput) UniqueExpression(alias string) (clause.Expression, error) {
	return query.Unique("CourseStatusLog", byID(alias, u.ID))
}

func (u CourseStatusLogWhereUniqueInput) PrimaryKey() (uuid.UUID, bool) {
	return primaryKey(u.ID, true)
}

type (
	CourseStatusLogDelegate       = Delegate[models.CourseStatusLog, CourseStatusLogWhereInput, CourseStatusLogWhereUniqueInput, CourseStatusLogField]
	CourseStatusLogFindUniqueArgs = query.FindUniqueArgs[CourseStatusLogWhereUniqueInput, CourseStatusLogField]
	CourseStatusLogFindManyArgs   = query.FindManyArgs[CourseStatusLogWhereInput, CourseStatusLogWhereUniqueInput, CourseStatusLogField]
	CourseStatusLogCountArgs      = query.CountArgs[CourseStatusLogWhereInput, CourseStatusLogWhereUniqueInput, CourseStatusLogField]
	CourseStatusLogAggregateArgs  = query.AggregateArgs[CourseStatusLogWhereInput, CourseStatusLogWhereUniqueInput, CourseStatusLogField]
	CourseStatusLogGroupByArgs    = query.GroupByArgs[CourseStatusLogWhereInput, CourseStatusLogField]
	CourseStatusLogOrderBy        = query.OrderBy[CourseStatusLogField]
	CourseStatusLogAssignment     = query.Assignment[CourseStatusLogField]
)
