package client

import (
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type LessonBookField string

const (
	LessonBookFieldID           LessonBookField = "id"
	LessonBookFieldOrgID        LessonBookField = "orgId"
	LessonBookFieldCourseID     LessonBookField = "courseId"
	LessonBookFieldTitle        LessonBookField = "title"
	LessonBookFieldLessonNumber LessonBookField = "lessonNumber"
	LessonBookFieldContent      LessonBookField = "content"
	LessonBookFieldIsDeleted    LessonBookField = "isDeleted"
	LessonBookFieldCreatedAt    LessonBookField = "createdAt"
	LessonBookFieldUpdatedAt    LessonBookField = "updatedAt"
)

// Relations that can be included with LessonBook reads.
const (
	LessonBookIncludeCourse   = "course"
	LessonBookIncludeProgress = "progress"
)

var (
	lessonBookCourse   = query.Relation{Name: "course", Table: "courses", Column: "id", References: "course_id"}
	lessonBookProgress = query.Relation{Name: "progress", Table: "lesson_progress", Column: "lesson_book_id", References: "id"}
)

type LessonBookWhereInput struct {
	AND []LessonBookWhereInput `json:"AND,omitempty"`
	OR  []LessonBookWhereInput `json:"OR,omitempty"`
	NOT []LessonBookWhereInput `json:"NOT,omitempty"`

	ID           *query.UUIDFilter     `json:"id,omitempty"`
	OrgID        *query.UUIDFilter     `json:"orgId,omitempty"`
	CourseID     *query.UUIDFilter     `json:"courseId,omitempty"`
	Title        *query.StringFilter   `json:"title,omitempty"`
	LessonNumber *query.IntFilter      `json:"lessonNumber,omitempty"`
	Content      *query.StringFilter   `json:"content,omitempty"`
	IsDeleted    *query.BoolFilter     `json:"isDeleted,omitempty"`
	CreatedAt    *query.DateTimeFilter `json:"createdAt,omitempty"`
	UpdatedAt    *query.DateTimeFilter `json:"updatedAt,omitempty"`

	Course   *query.RelationFilter[CourseWhereInput]             `json:"course,omitempty"`
	Progress *query.ListRelationFilter[LessonProgressWhereInput] `json:"progress,omitempty"`
}

func (w LessonBookWhereInput) Expression(alias string) clause.Expression {
	b := query.NewWhere(alias)
	query.Logical(b, w.AND, w.OR, w.NOT)
	b.Field("id", w.ID).
		Field("org_id", w.OrgID).
		Field("course_id", w.CourseID).
		Field("title", w.Title).
		Field("lesson_number", w.LessonNumber).
		Field("content", w.Content).
		Field("is_deleted", w.IsDeleted).
		Field("created_at", w.CreatedAt).
		Field("updated_at", w.UpdatedAt)
	b.Relation(lessonBookCourse, w.Course).
		Relation(lessonBookProgress, w.Progress)
	return b.Expression()
}

type LessonBookCourseIDLessonNumberCompoundUniqueInput struct {
	CourseID     uuid.UUID `json:"courseId"`
	LessonNumber int       `json:"lessonNumber"`
}

type LessonBookWhereUniqueInput struct {
	ID                   *uuid.UUID                                         `json:"id,omitempty"`
	CourseIDLessonNumber *LessonBookCourseIDLessonNumberCompoundUniqueInput `json:"courseId_lessonNumber,omitempty"`
}

func (u LessonBookWhereUniqueInput) UniqueExpression(alias string) (clause.Expression, error) {
	keys := []clause.Expression{byID(alias, u.ID)}
	if k := u.CourseIDLessonNumber; k != nil {
		keys = append(keys, query.And(query.Equals(alias, "course_id", k.CourseID), query.Equals(alias, "lesson_number", k.LessonNumber)))
	}
	return query.Unique("LessonBook", keys...)
}

func (u LessonBookWhereUniqueInput) PrimaryKey() (uuid.UUID, bool) {
	return primaryKey(u.ID, u.CourseIDLessonNumber == nil)
}

type (
	LessonBookDelegate       = Delegate[models.LessonBook, LessonBookWhereInput, LessonBookWhereUniqueInput, LessonBookField]
	LessonBookFindUniqueArgs = query.FindUniqueArgs[LessonBookWhereUniqueInput, LessonBookField]
	LessonBookFindManyArgs   = query.FindManyArgs[LessonBookWhereInput, LessonBookWhereUniqueInput, LessonBookField]
	LessonBookCountArgs      = query.CountArgs[LessonBookWhereInput, LessonBookWhereUniqueInput, LessonBookField]
	LessonBookAggregateArgs  = query.AggregateArgs[LessonBookWhereInput, LessonBookWhereUniqueInput, LessonBookField]
	LessonBookGroupByArgs    = query.GroupByArgs[LessonBookWhereInput, LessonBookField]
	LessonBookOrderBy        = query.OrderBy[LessonBookField]
	LessonBookAssignment     = query.Assignment[LessonBookField]
)
