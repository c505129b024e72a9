package client

import (
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type ScheduleField string

const (
	ScheduleFieldID        ScheduleField = "id"
	ScheduleFieldOrgID     ScheduleField = "orgId"
	ScheduleFieldCourseID  ScheduleField = "courseId"
	ScheduleFieldTeacherID ScheduleField = "teacherId"
	ScheduleFieldRoomID    ScheduleField = "roomId"
	ScheduleFieldDayOfWeek ScheduleField = "dayOfWeek"
	ScheduleFieldStartTime ScheduleField = "startTime"
	ScheduleFieldEndTime   ScheduleField = "endTime"
	ScheduleFieldIsActive  ScheduleField = "isActive"
	ScheduleFieldIsDeleted ScheduleField = "isDeleted"
	ScheduleFieldCreatedAt ScheduleField = "createdAt"
	ScheduleFieldUpdatedAt ScheduleField = "updatedAt"
)

// Relations that can be included with Schedule reads.
const (
	ScheduleIncludeCourse   = "course"
	ScheduleIncludeTeacher  = "teacher"
	ScheduleIncludeRoom     = "room"
	ScheduleIncludeStudents = "students"
)

var (
	scheduleCourse   = query.Relation{Name: "course", Table: "courses", Column: "id", References: "course_id"}
	scheduleTeacher  = query.Relation{Name: "teacher", Table: "teachers", Column: "id", References: "teacher_id"}
	scheduleRoom     = query.Relation{Name: "room", Table: "rooms", Column: "id", References: "room_id"}
	scheduleStudents = query.Relation{Name: "students", Table: "student_schedules", Column: "schedule_id", References: "id"}
)

type ScheduleWhereInput struct {
	AND []ScheduleWhereInput `json:"AND,omitempty"`
	OR  []ScheduleWhereInput `json:"OR,omitempty"`
	NOT []ScheduleWhereInput `json:"NOT,omitempty"`

	ID        *query.UUIDFilter     `json:"id,omitempty"`
	OrgID     *query.UUIDFilter     `json:"orgId,omitempty"`
	CourseID  *query.UUIDFilter     `json:"courseId,omitempty"`
	TeacherID *query.UUIDFilter     `json:"teacherId,omitempty"`
	RoomID    *query.UUIDFilter     `json:"roomId,omitempty"`
	DayOfWeek *query.IntFilter      `json:"dayOfWeek,omitempty"`
	StartTime *query.StringFilter   `json:"startTime,omitempty"`
	EndTime   *query.StringFilter   `json:"endTime,omitempty"`
	IsActive  *query.BoolFilter     `json:"isActive,omitempty"`
	IsDeleted *query.BoolFilter     `json:"isDeleted,omitempty"`
	CreatedAt *query.DateTimeFilter `json:"createdAt,omitempty"`
	UpdatedAt *query.DateTimeFilter `json:"updatedAt,omitempty"`

	Course   *query.RelationFilter[CourseWhereInput]              `json:"course,omitempty"`
	Teacher  *query.RelationFilter[TeacherWhereInput]             `json:"teacher,omitempty"`
	Room     *query.RelationFilter[RoomWhereInput]                `json:"room,omitempty"`
	Students *query.ListRelationFilter[StudentScheduleWhereInput] `json:"students,omitempty"`
}

func (w ScheduleWhereInput) Expression(alias string) clause.Expression {
	b := query.NewWhere(alias)
	query.Logical(b, w.AND, w.OR, w.NOT)
	b.Field("id", w.ID).
		Field("org_id", w.OrgID).
		Field("course_id", w.CourseID).
		Field("teacher_id", w.TeacherID).
		Field("room_id", w.RoomID).
		Field("day_of_week", w.DayOfWeek).
		Field("start_time", w.StartTime).
		Field("end_time", w.EndTime).
		Field("is_active", w.IsActive).
		Field("is_deleted", w.IsDeleted).
		Field("created_at", w.CreatedAt).
		Field("updated_at", w.UpdatedAt)
	b.Relation(scheduleCourse, w.Course).
		Relation(scheduleTeacher, w.Teacher).
		Relation(scheduleRoom, w.Room).
		Relation(scheduleStudents, w.Students)
	return b.Expression()
}

type ScheduleWhereUniqueInput struct {
	ID *uuid.UUID `json:"id,omitempty"`
}

func (u ScheduleWhereUniqueInput) UniqueExpression(alias string) (clause.Expression, error) {
	return query.Unique("Schedule", byID(alias, u.ID))
}

func (u ScheduleWhereUniqueInput) PrimaryKey() (uuid.UUID, bool) {
	return primaryKey(u.ID, true)
}

type (
	ScheduleDelegate       = Delegate[models.Schedule, ScheduleWhereInput, ScheduleWhereUniqueInput, ScheduleField]
	ScheduleFindUniqueArgs = query.FindUniqueArgs[ScheduleWhereUniqueInput, ScheduleField]
	ScheduleFindManyArgs   = query.FindManyArgs[ScheduleWhereInput, ScheduleWhereUniqueInput, ScheduleField]
	ScheduleCountArgs      = query.CountArgs[ScheduleWhereInput, ScheduleWhereUniqueInput, ScheduleField]
	ScheduleAggregateArgs  = query.AggregateArgs[ScheduleWhereInput, ScheduleWhereUniqueInput, ScheduleField]
	ScheduleGroupByArgs    = query.GroupByArgs[ScheduleWhereInput, ScheduleField]
	ScheduleOrderBy        = query.OrderBy[ScheduleField]
	ScheduleAssignment     = query.Assignment[ScheduleField]
)
