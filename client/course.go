package client

import (
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type CourseField string

const (
	CourseFieldID              CourseField = "id"
	CourseFieldOrgID           CourseField = "orgId"
	CourseFieldName            CourseField = "name"
	CourseFieldDescription     CourseField = "description"
	CourseFieldLevel           CourseField = "level"
	CourseFieldPrice           CourseField = "price"
	CourseFieldTotalLessons    CourseField = "totalLessons"
	CourseFieldDurationMinutes CourseField = "durationMinutes"
	CourseFieldTeacherID       CourseField = "teacherId"
	CourseFieldRoomID          CourseField = "roomId"
	CourseFieldIsActive        CourseField = "isActive"
	CourseFieldIsArchived      CourseField = "isArchived"
	CourseFieldIsDeleted       CourseField = "isDeleted"
	CourseFieldCreatedAt       CourseField = "createdAt"
	CourseFieldUpdatedAt       CourseField = "updatedAt"
)

// Relations that can be included with Course reads.
const (
	CourseIncludeTeacher     = "teacher"
	CourseIncludeRoom        = "room"
	CourseIncludeSchedules   = "schedules"
	CourseIncludeLessonBooks = "lessonBooks"
	CourseIncludeStudents    = "students"
	CourseIncludePurchases   = "purchases"
)

var (
	courseTeacher     = query.Relation{Name: "teacher", Table: "teachers", Column: "id", References: "teacher_id"}
	courseRoom        = query.Relation{Name: "room", Table: "rooms", Column: "id", References: "room_id"}
	courseSchedules   = query.Relation{Name: "schedules", Table: "schedules", Column: "course_id", References: "id"}
	courseLessonBooks = query.Relation{Name: "lessonBooks", Table: "lesson_books", Column: "course_id", References: "id"}
	courseStudents    = query.Relation{Name: "students", Table: "student_courses", Column: "course_id", References: "id"}
	coursePurchases   = query.Relation{Name: "purchases", Table: "purchases", Column: "course_id", References: "id"}
)

// CourseWhereInput filters courses.
type CourseWhereInput struct {
	AND []CourseWhereInput `json:"AND,omitempty"`
	OR  []CourseWhereInput `json:"OR,omitempty"`
	NOT []CourseWhereInput `json:"NOT,omitempty"`

	ID              *query.UUIDFilter                       `json:"id,omitempty"`
	OrgID           *query.UUIDFilter                       `json:"orgId,omitempty"`
	Name            *query.StringFilter                     `json:"name,omitempty"`
	Description     *query.StringFilter                     `json:"description,omitempty"`
	Level           *query.EqualsFilter[models.CourseLevel] `json:"level,omitempty"`
	Price           *query.FloatFilter                      `json:"price,omitempty"`
	TotalLessons    *query.IntFilter                        `json:"totalLessons,omitempty"`
	DurationMinutes *query.IntFilter                        `json:"durationMinutes,omitempty"`
	TeacherID       *query.UUIDFilter                       `json:"teacherId,omitempty"`
	RoomID          *query.UUIDFilter                       `json:"roomId,omitempty"`
	IsActive        *query.BoolFilter                       `json:"isActive,omitempty"`
	IsArchived      *query.BoolFilter                       `json:"isArchived,omitempty"`
	IsDeleted       *query.BoolFilter                       `json:"isDeleted,omitempty"`
	CreatedAt       *query.DateTimeFilter                   `json:"createdAt,omitempty"`
	UpdatedAt       *query.DateTimeFilter                   `json:"updatedAt,omitempty"`

	Teacher     *query.RelationFilter[TeacherWhereInput]           `json:"teacher,omitempty"`
	Room        *query.RelationFilter[RoomWhereInput]              `json:"room,omitempty"`
	Schedules   *query.ListRelationFilter[ScheduleWhereInput]      `json:"schedules,omitempty"`
	LessonBooks *query.ListRelationFilter[LessonBookWhereInput]    `json:"lessonBooks,omitempty"`
	Students    *query.ListRelationFilter[StudentCourseWhereInput] `json:"students,omitempty"`
	Purchases   *query.ListRelationFilter[PurchaseWhereInput]      `json:"purchases,omitempty"`
}

func (w CourseWhereInput) Expression(alias string) clause.Expression {
	b := query.NewWhere(alias)
	query.Logical(b, w.AND, w.OR, w.NOT)
	b.Field("id", w.ID).
		Field("org_id", w.OrgID).
		Field("name", w.Name).
		Field("description", w.Description).
		Field("level", w.Level).
		Field("price", w.Price).
		Field("total_lessons", w.TotalLessons).
		Field("duration_minutes", w.DurationMinutes).
		Field("teacher_id", w.TeacherID).
		Field("room_id", w.RoomID).
		Field("is_active", w.IsActive).
		Field("is_archived", w.IsArchived).
		Field("is_deleted", w.IsDeleted).
		Field("created_at", w.CreatedAt).
		Field("updated_at", w.UpdatedAt)
	b.Relation(courseTeacher, w.Teacher).
		Relation(courseRoom, w.Room).
		Relation(courseSchedules, w.Schedules).
		Relation(courseLessonBooks, w.LessonBooks).
		Relation(courseStudents, w.Students).
		Relation(coursePurchases, w.Purchases)
	return b.Expression()
}

type CourseNameOrgIDCompoundUniqueInput struct {
	Name  string    `json:"name"`
	OrgID uuid.UUID `json:"orgId"`
}

type CourseWhereUniqueInput struct {
	ID        *uuid.UUID                          `json:"id,omitempty"`
	NameOrgID *CourseNameOrgIDCompoundUniqueInput `json:"name_orgId,omitempty"`
}

func (u CourseWhereUniqueInput) UniqueExpression(alias string) (clause.Expression, error) {
	keys := []clause.Expression{byID(alias, u.ID)}
	if k := u.NameOrgID; k != nil {
		keys = append(keys, query.And(query.Equals(alias, "name", k.Name), query.Equals(alias, "org_id", k.OrgID)))
	}
	return query.Unique("Course", keys...)
}

func (u CourseWhereUniqueInput) PrimaryKey() (uuid.UUID, bool) {
	return primaryKey(u.ID, u.NameOrgID == nil)
}

type (
	CourseDelegate       = Delegate[models.Course, CourseWhereInput, CourseWhereUniqueInput, CourseField]
	CourseFindUniqueArgs = query.FindUniqueArgs[CourseWhereUniqueInput, CourseField]
	CourseFindManyArgs   = query.FindManyArgs[CourseWhereInput, CourseWhereUniqueInput, CourseField]
	CourseCountArgs      = query.CountArgs[CourseWhereInput, CourseWhereUniqueInput, CourseField]
	CourseAggregateArgs  = query.AggregateArgs[CourseWhereInput, CourseWhereUniqueInput, CourseField]
	CourseGroupByArgs    = query.GroupByArgs[CourseWhereInput, CourseField]
	CourseOrderBy        = query.OrderBy[CourseField]
	CourseAssignment     = query.Assignment[CourseField]
)
