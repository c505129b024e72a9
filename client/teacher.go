package client

import (
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type TeacherField string

const (
	TeacherFieldID        TeacherField = "id"
	TeacherFieldOrgID     TeacherField = "orgId"
	TeacherFieldName      TeacherField = "name"
	TeacherFieldEmail     TeacherField = "email"
	TeacherFieldPhone     TeacherField = "phone"
	TeacherFieldGender    TeacherField = "gender"
	TeacherFieldIsActive  TeacherField = "isActive"
	TeacherFieldIsDeleted TeacherField = "isDeleted"
	TeacherFieldCreatedAt TeacherField = "createdAt"
	TeacherFieldUpdatedAt TeacherField = "updatedAt"
)

// Relations that can be included with Teacher reads.
const (
	TeacherIncludeCourses   = "courses"
	TeacherIncludeSchedules = "schedules"
)

var (
	teacherCourses   = query.Relation{Name: "courses", Table: "courses", Column: "teacher_id", References: "id"}
	teacherSchedules = query.Relation{Name: "schedules", Table: "schedules", Column: "teacher_id", References: "id"}
)

type TeacherWhereInput struct {
	AND []TeacherWhereInput `json:"AND,omitempty"`
	OR  []TeacherWhereInput `json:"OR,omitempty"`
	NOT []TeacherWhereInput `json:"NOT,omitempty"`

	ID        *query.UUIDFilter                  `json:"id,omitempty"`
	OrgID     *query.UUIDFilter                  `json:"orgId,omitempty"`
	Name      *query.StringFilter                `json:"name,omitempty"`
	Email     *query.StringFilter                `json:"email,omitempty"`
	Phone     *query.StringFilter                `json:"phone,omitempty"`
	Gender    *query.EqualsFilter[models.Gender] `json:"gender,omitempty"`
	IsActive  *query.BoolFilter                  `json:"isActive,omitempty"`
	IsDeleted *query.BoolFilter                  `json:"isDeleted,omitempty"`
	CreatedAt *query.DateTimeFilter              `json:"createdAt,omitempty"`
	UpdatedAt *query.DateTimeFilter              `json:"updatedAt,omitempty"`

	Courses   *query.ListRelationFilter[CourseWhereInput]   `json:"courses,omitempty"`
	Schedules *query.ListRelationFilter[ScheduleWhereInput] `json:"schedules,omitempty"`
}

func (w TeacherWhereInput) Expression(alias string) clause.Expression {
	b := query.NewWhere(alias)
	query.Logical(b, w.AND, w.OR, w.NOT)
	b.Field("id", w.ID).
		Field("org_id", w.OrgID).
		Field("name", w.Name).
		Field("email", w.Email).
		Field("phone", w.Phone).
		Field("gender", w.Gender).
		Field("is_active", w.IsActive).
		Field("is_deleted", w.IsDeleted).
		Field("created_at", w.CreatedAt).
		Field("updated_at", w.UpdatedAt)
	b.Relation(teacherCourses, w.Courses).
		Relation(teacherSchedules, w.Schedules)
	return b.Expression()
}

type TeacherEmailOrgIDCompoundUniqueInput struct {
	Email string    `json:"email"`
	OrgID uuid.UUID `json:"orgId"`
}

type TeacherWhereUniqueInput struct {
	ID         *uuid.UUID                            `json:"id,omitempty"`
	EmailOrgID *TeacherEmailOrgIDCompoundUniqueInput `json:"email_orgId,omitempty"`
}

func (u TeacherWhereUniqueInput) UniqueExpression(alias string) (clause.Expression, error) {
	keys := []clause.Expression{byID(alias, u.ID)}
	if k := u.EmailOrgID; k != nil {
		keys = append(keys, query.And(query.Equals(alias, "email", k.Email), query.Equals(alias, "org_id", k.OrgID)))
	}
	return query.Unique("Teacher", keys...)
}

func (u TeacherWhereUniqueInput) PrimaryKey() (uuid.UUID, bool) {
	return primaryKey(u.ID, u.EmailOrgID == nil)
}

type (
	TeacherDelegate       = Delegate[models.Teacher, TeacherWhereInput, TeacherWhereUniqueInput, TeacherField]
	TeacherFindUniqueArgs = query.FindUniqueArgs[TeacherWhereUniqueInput, TeacherField]
	TeacherFindManyArgs   = query.FindManyArgs[TeacherWhereInput, TeacherWhereUniqueInput, TeacherField]
	TeacherCountArgs      = query.CountArgs[TeacherWhereInput, TeacherWhereUniqueInput, TeacherField]
	TeacherAggregateArgs  = query.AggregateArgs[TeacherWhereInput, TeacherWhereUniqueInput, TeacherField]
	TeacherGroupByArgs    = query.GroupByArgs[TeacherWhereInput, TeacherField]
	TeacherOrderBy        = query.OrderBy[TeacherField]
	TeacherAssignment     = query.Assignment[TeacherField]
)
