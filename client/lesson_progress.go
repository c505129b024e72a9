package client

import (
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type LessonProgressField string

const (
	LessonProgressFieldID           LessonProgressField = "id"
	LessonProgressFieldOrgID        LessonProgressField = "orgId"
	LessonProgressFieldStudentID    LessonProgressField = "studentId"
	LessonProgressFieldLessonBookID LessonProgressField = "lessonBookId"
	LessonProgressFieldIsCompleted  LessonProgressField = "isCompleted"
	LessonProgressFieldCompletedAt  LessonProgressField = "completedAt"
	LessonProgressFieldScore        LessonProgressField = "score"
	LessonProgressFieldNotes        LessonProgressField = "notes"
	LessonProgressFieldIsDeleted    LessonProgressField = "isDeleted"
	LessonProgressFieldCreatedAt    LessonProgressField = "createdAt"
	LessonProgressFieldUpdatedAt    LessonProgressField = "updatedAt"
)

// Relations that can be included with LessonProgress reads.
const (
	LessonProgressIncludeStudent    = "student"
	LessonProgressIncludeLessonBook = "lessonBook"
)

var (
	lessonProgressStudent    = query.Relation{Name: "student", Table: "students", Column: "id", References: "student_id"}
	lessonProgressLessonBook = query.Relation{Name: "lessonBook", Table: "lesson_books", Column: "id", References: "lesson_book_id"}
)

// LessonProgressWhereInput filters per-lesson progress records.
type LessonProgressWhereInput struct {
	AND []LessonProgressWhereInput `json:"AND,omitempty"`
	OR  []LessonProgressWhereInput `json:"OR,omitempty"`
	NOT []LessonProgressWhereInput `json:"NOT,omitempty"`

	ID           *query.UUIDFilter     `json:"id,omitempty"`
	OrgID        *query.UUIDFilter     `json:"orgId,omitempty"`
	StudentID    *query.UUIDFilter     `json:"studentId,omitempty"`
	LessonBookID *query.UUIDFilter     `json:"lessonBookId,omitempty"`
	IsCompleted  *query.BoolFilter     `json:"isCompleted,omitempty"`
	CompletedAt  *query.DateTimeFilter `json:"completedAt,omitempty"`
	Score        *query.FloatFilter    `json:"score,omitempty"`
	Notes        *query.StringFilter   `json:"notes,omitempty"`
	IsDeleted    *query.BoolFilter     `json:"isDeleted,omitempty"`
	CreatedAt    *query.DateTimeFilter `json:"createdAt,omitempty"`
	UpdatedAt    *query.DateTimeFilter `json:"updatedAt,omitempty"`

	Student    *query.RelationFilter[StudentWhereInput]    `json:"student,omitempty"`
	LessonBook *query.RelationFilter[LessonBookWhereInput] `json:"lessonBook,omitempty"`
}

func (w LessonProgressWhereInput) Expression(alias string) clause.Expression {
	b := query.NewWhere(alias)
	query.Logical(b, w.AND, w.OR, w.NOT)
	b.Field("id", w.ID).
		Field("org_id", w.OrgID).
		Field("student_id", w.StudentID).
		Field("lesson_book_id", w.LessonBookID).
		Field("is_completed", w.IsCompleted).
		Field("completed_at", w.CompletedAt).
		Field("score", w.Score).
		Field("notes", w.Notes).
		Field("is_deleted", w.IsDeleted).
		Field("created_at", w.CreatedAt).
		Field("updated_at", w.UpdatedAt)
	b.Relation(lessonProgressStudent, w.Student).
		Relation(lessonProgressLessonBook, w.LessonBook)
	return b.Expression()
}

type LessonProgressStudentIDLessonBookIDCompoundUniqueInput struct {
	StudentID    uuid.UUID `json:"studentId"`
	LessonBookID uuid.UUID `json:"lessonBookId"`
}

type LessonProgressWhereUniqueInput struct {
	ID                    *uuid.UUID                                              `json:"id,omitempty"`
	StudentIDLessonBookID *LessonProgressStudentIDLessonBookIDCompoundUniqueInput `json:"studentId_lessonBookId,omitempty"`
}

func (u LessonProgressWhereUniqueInput) UniqueExpression(alias string) (clause.Expression, error) {
	keys := []clause.Expression{byID(alias, u.ID)}
	if k := u.StudentIDLessonBookID; k != nil {
		keys = append(keys, query.And(query.Equals(alias, "student_id", k.StudentID), query.Equals(alias, "lesson_book_id", k.LessonBookID)))
	}
	return query.Unique("LessonProgress", keys...)
}

func (u LessonProgressWhereUniqueInput) PrimaryKey() (uuid.UUID, bool) {
	return primaryKey(u.ID, u.StudentIDLessonBookID == nil)
}

type (
	LessonProgressDelegate       = Delegate[models.LessonProgress, LessonProgressWhereInput, LessonProgressWhereUniqueInput, LessonProgressField]
	LessonProgressFindUniqueArgs = query.FindUniqueArgs[LessonProgressWhereUniqueInput, LessonProgressField]
	LessonProgressFindManyArgs   = query.FindManyArgs[LessonProgressWhereInput, LessonProgressWhereUniqueInput, LessonProgressField]
	LessonProgressCountArgs      = query.CountArgs[LessonProgressWhereInput, LessonProgressWhereUniqueInput, LessonProgressField]
	LessonProgressAggregateArgs  = query.AggregateArgs[LessonProgressWhereInput, LessonProgressWhereUniqueInput, LessonProgressField]
	LessonProgressGroupByArgs    = query.GroupByArgs[LessonProgressWhereInput, LessonProgressField]
	LessonProgressOrderBy        = query.OrderBy[LessonProgressField]
	LessonProgressAssignment     = query.Assignment[LessonProgressField]
)
