package client

import (
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type StudentScheduleField string

const (
	StudentScheduleFieldID         StudentScheduleField = "id"
	StudentScheduleFieldOrgID      StudentScheduleField = "orgId"
	StudentScheduleFieldStudentID  StudentScheduleField = "studentId"
	StudentScheduleFieldScheduleID StudentScheduleField = "scheduleId"
	StudentScheduleFieldJoinedAt   StudentScheduleField = "joinedAt"
	StudentScheduleFieldIsActive   StudentScheduleField = "isActive"
	StudentScheduleFieldIsDeleted  StudentScheduleField = "isDeleted"
	StudentScheduleFieldCreatedAt  StudentScheduleField = "createdAt"
	StudentScheduleFieldUpdatedAt  StudentScheduleField = "updatedAt"
)

// Relations that can be included with StudentSchedule reads.
const (
	StudentScheduleIncludeStudent  = "student"
	StudentScheduleIncludeSchedule = "schedule"
)

var (
	studentScheduleStudent  = query.Relation{Name: "student", Table: "students", Column: "id", References: "student_id"}
	studentScheduleSchedule = query.Relation{Name: "schedule", Table: "schedules", Column: "id", References: "schedule_id"}
)

type StudentScheduleWhereInput struct {
	AND []StudentScheduleWhereInput `json:"AND,omitempty"`
	OR  []StudentScheduleWhereInput `json:"OR,omitempty"`
	NOT []StudentScheduleWhereInput `json:"NOT,omitempty"`

	ID         *query.UUIDFilter     `json:"id,omitempty"`
	OrgID      *query.UUIDFilter     `json:"orgId,omitempty"`
	StudentID  *query.UUIDFilter     `json:"studentId,omitempty"`
	ScheduleID *query.UUIDFilter     `json:"scheduleId,omitempty"`
	JoinedAt   *query.DateTimeFilter `json:"joinedAt,omitempty"`
	IsActive   *query.BoolFilter     `json:"isActive,omitempty"`
	IsDeleted  *query.BoolFilter     `json:"isDeleted,omitempty"`
	CreatedAt  *query.DateTimeFilter `json:"createdAt,omitempty"`
	UpdatedAt  *query.DateTimeFilter `json:"updatedAt,omitempty"`

	Student  *query.RelationFilter[StudentWhereInput]  `json:"student,omitempty"`
	Schedule *query.RelationFilter[ScheduleWhereInput] `json:"schedule,omitempty"`
}

func (w StudentScheduleWhereInput) Expression(alias string) clause.Expression {
	b := query.NewWhere(alias)
	query.Logical(b, w.AND, w.OR, w.NOT)
	b.Field("id", w.ID).
		Field("org_id", w.OrgID).
		Field("student_id", w.StudentID).
		Field("schedule_id", w.ScheduleID).
		Field("joined_at", w.JoinedAt).
		Field("is_active", w.IsActive).
		Field("is_deleted", w.IsDeleted).
		Field("created_at", w.CreatedAt).
		Field("updated_at", w.UpdatedAt)
	b.Relation(studentScheduleStudent, w.Student).
		Relation(studentScheduleSchedule, w.Schedule)
	return b.Expression()
}

type StudentScheduleStudentIDScheduleIDCompoundUniqueInput struct {
	StudentID  uuid.UUID `json:"studentId"`
	ScheduleID uuid.UUID `json:"scheduleId"`
}

type StudentScheduleWhereUniqueInput struct {
	ID                  *uuid.UUID                                             `json:"id,omitempty"`
	StudentIDScheduleID *StudentScheduleStudentIDScheduleIDCompoundUniqueInput `json:"studentId_scheduleId,omitempty"`
}

func (u StudentScheduleWhereUniqueInput) UniqueExpression(alias string) (clause.Expression, error) {
	keys := []clause.Expression{byID(alias, u.ID)}
	if k := u.StudentIDScheduleID; k != nil {
		keys = append(keys, query.And(query.Equals(alias, "student_id", k.StudentID), query.Equals(alias, "schedule_id", k.ScheduleID)))
	}
	return query.Unique("StudentSchedule", keys...)
}

func (u StudentScheduleWhereUniqueInput) PrimaryKey() (uuid.UUID, bool) {
	return primaryKey(u.ID, u.StudentIDScheduleID == nil)
}

type (
	StudentScheduleDelegate       = Delegate[models.StudentSchedule, StudentScheduleWhereInput, StudentScheduleWhereUniqueInput, StudentScheduleField]
	StudentScheduleFindUniqueArgs = query.FindUniqueArgs[StudentScheduleWhereUniqueInput, StudentScheduleField]
	StudentScheduleFindManyArgs   = query.FindManyArgs[StudentScheduleWhereInput, StudentScheduleWhereUniqueInput, StudentScheduleField]
	StudentScheduleCountArgs      = query.CountArgs[StudentScheduleWhereInput, StudentScheduleWhereUniqueInput, StudentScheduleField]
	StudentScheduleAggregateArgs  = query.AggregateArgs[StudentScheduleWhereInput, StudentScheduleWhereUniqueInput, StudentScheduleField]
	StudentScheduleGroupByArgs    = query.GroupByArgs[StudentScheduleWhereInput, StudentScheduleField]
	StudentScheduleOrderBy        = query.OrderBy[StudentScheduleField]
	StudentScheduleAssignment     = query.Assignment[StudentScheduleField]
)
