package client

import (
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type StudentCourseField string

const (
	StudentCourseFieldID          StudentCourseField = "id"
	StudentCourseFieldOrgID       StudentCourseField = "orgId"
	StudentCourseFieldStudentID   StudentCourseField = "studentId"
	StudentCourseFieldCourseID    StudentCourseField = "courseId"
	StudentCourseFieldStatus      StudentCourseField = "status"
	StudentCourseFieldStartedAt   StudentCourseField = "startedAt"
	StudentCourseFieldCompletedAt StudentCourseField = "completedAt"
	StudentCourseFieldIsArchived  StudentCourseField = "isArchived"
	StudentCourseFieldIsDeleted   StudentCourseField = "isDeleted"
	StudentCourseFieldCreatedAt   StudentCourseField = "createdAt"
	StudentCourseFieldUpdatedAt   StudentCourseField = "updatedAt"
)

// Relations that can be included with StudentCourse reads.
const (
	StudentCourseIncludeStudent    = "student"
	StudentCourseIncludeCourse     = "course"
	StudentCourseIncludeStatusLogs = "statusLogs"
)

var (
	studentCourseStudent    = query.Relation{Name: "student", Table: "students", Column: "id", References: "student_id"}
	studentCourseCourse     = query.Relation{Name: "course", Table: "courses", Column: "id", References: "course_id"}
	studentCourseStatusLogs = query.Relation{Name: "statusLogs", Table: "course_status_logs", Column: "student_course_id", References: "id"}
)

type StudentCourseWhereInput struct {
	AND []StudentCourseWhereInput `json:"AND,omitempty"`
	OR  []StudentCourseWhereInput `json:"OR,omitempty"`
	NOT []StudentCourseWhereInput `json:"NOT,omitempty"`

	ID          *query.UUIDFilter                        `json:"id,omitempty"`
	OrgID       *query.UUIDFilter                        `json:"orgId,omitempty"`
	StudentID   *query.UUIDFilter                        `json:"studentId,omitempty"`
	CourseID    *query.UUIDFilter                        `json:"courseId,omitempty"`
	Status      *query.EqualsFilter[models.CourseStatus] `json:"status,omitempty"`
	StartedAt   *query.DateTimeFilter                    `json:"startedAt,omitempty"`
	CompletedAt *query.DateTimeFilter                    `json:"completedAt,omitempty"`
	IsArchived  *query.BoolFilter                        `json:"isArchived,omitempty"`
	IsDeleted   *query.BoolFilter                        `json:"isDeleted,omitempty"`
	CreatedAt   *query.DateTimeFilter                    `json:"createdAt,omitempty"`
	UpdatedAt   *query.DateTimeFilter                    `json:"updatedAt,omitempty"`

	Student    *query.RelationFilter[StudentWhereInput]             `json:"student,omitempty"`
	Course     *query.RelationFilter[CourseWhereInput]              `json:"course,omitempty"`
	StatusLogs *query.ListRelationFilter[CourseStatusLogWhereInput] `json:"statusLogs,omitempty"`
}

func (w StudentCourseWhereInput) Expression(alias string) clause.Expression {
	b := query.NewWhere(alias)
	query.Logical(b, w.AND, w.OR, w.NOT)
	b.Field("id", w.ID).
		Field("org_id", w.OrgID).
		Field("student_id", w.StudentID).
		Field("course_id", w.CourseID).
		Field("status", w.Status).
		Field("started_at", w.StartedAt).
		Field("completed_at", w.CompletedAt).
		Field("is_archived", w.IsArchived).
		Field("is_deleted", w.IsDeleted).
		Field("created_at", w.CreatedAt).
		Field("updated_at", w.UpdatedAt)
	b.Relation(studentCourseStudent, w.Student).
		Relation(studentCourseCourse, w.Course).
		Relation(studentCourseStatusLogs, w.StatusLogs)
	return b.Expression()
}

type StudentCourseStudentIDCourseIDCompoundUniqueInput struct {
	StudentID uuid.UUID `json:"studentId"`
	CourseID  uuid.UUID `json:"courseId"`
}

// StudentCourseWhereUniqueInput selects one enrolment. A student is enrolled
// in a course at most once.
type StudentCourseWhereUniqueInput struct {
	ID                *uuid.UUID                                         `json:"id,omitempty"`
	StudentIDCourseID *StudentCourseStudentIDCourseIDCompoundUniqueInput `json:"studentId_courseId,omitempty"`
}

func (u StudentCourseWhereUniqueInput) UniqueExpression(alias string) (clause.Expression, error) {
	keys := []clause.Expression{byID(alias, u.ID)}
	if k := u.StudentIDCourseID; k != nil {
		keys = append(keys, query.And(query.Equals(alias, "student_id", k.StudentID), query.Equals(alias, "course_id", k.CourseID)))
	}
	return query.Unique("StudentCourse", keys...)
}

func (u StudentCourseWhereUniqueInput) PrimaryKey() (uuid.UUID, bool) {
	return primaryKey(u.ID, u.StudentIDCourseID == nil)
}

type (
	StudentCourseDelegate       = Delegate[models.StudentCourse, StudentCourseWhereInput, StudentCourseWhereUniqueInput, StudentCourseField]
	StudentCourseFindUniqueArgs = query.FindUniqueArgs[StudentCourseWhereUniqueInput, StudentCourseField]
	StudentCourseFindManyArgs   = query.FindManyArgs[StudentCourseWhereInput, StudentCourseWhereUniqueInput, StudentCourseField]
	StudentCourseCountArgs      = query.CountArgs[StudentCourseWhereInput, StudentCourseWhereUniqueInput, StudentCourseField]
	StudentCourseAggregateArgs  = query.AggregateArgs[StudentCourseWhereInput, StudentCourseWhereUniqueInput, StudentCourseField]
	StudentCourseGroupByArgs    = query.GroupByArgs[StudentCourseWhereInput, StudentCourseField]
	StudentCourseOrderBy        = query.OrderBy[StudentCourseField]
	StudentCourseAssignment     = query.Assignment[StudentCourseField]
)
