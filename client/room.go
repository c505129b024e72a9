package client

import (
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type RoomField string

const (
	RoomFieldID        RoomField = "id"
	RoomFieldOrgID     RoomField = "orgId"
	RoomFieldName      RoomField = "name"
	RoomFieldCapacity  RoomField = "capacity"
	RoomFieldIsActive  RoomField = "isActive"
	RoomFieldIsDeleted RoomField = "isDeleted"
	RoomFieldCreatedAt RoomField = "createdAt"
	RoomFieldUpdatedAt RoomField = "updatedAt"
)

// Relations that can be included with Room reads.
const (
	RoomIncludeCourses   = "courses"
	RoomIncludeSchedules = "schedules"
)

var (
	roomCourses   = query.Relation{Name: "courses", Table: "courses", Column: "room_id", References: "id"}
	roomSchedules = query.Relation{Name: "schedules", Table: "schedules", Column: "room_id", References: "id"}
)

type RoomWhereInput struct {
	AND []RoomWhereInput `json:"AND,omitempty"`
	OR  []RoomWhereInput `json:"OR,omitempty"`
	NOT []RoomWhereInput `json:"NOT,omitempty"`

	ID        *query.UUIDFilter     `json:"id,omitempty"`
	OrgID     *query.UUIDFilter     `json:"orgId,omitempty"`
	Name      *query.StringFilter   `json:"name,omitempty"`
	Capacity  *query.IntFilter      `json:"capacity,omitempty"`
	IsActive  *query.BoolFilter     `json:"isActive,omitempty"`
	IsDeleted *query.BoolFilter     `json:"isDeleted,omitempty"`
	CreatedAt *query.DateTimeFilter `json:"createdAt,omitempty"`
	UpdatedAt *query.DateTimeFilter `json:"updatedAt,omitempty"`

	Courses   *query.ListRelationFilter[CourseWhereInput]   `json:"courses,omitempty"`
	Schedules *query.ListRelationFilter[ScheduleWhereInput] `json:"schedules,omitempty"`
}

func (w RoomWhereInput) Expression(alias string) clause.Expression {
	b := query.NewWhere(alias)
	query.Logical(b, w.AND, w.OR, w.NOT)
	b.Field("id", w.ID).
		Field("org_id", w.OrgID).
		Field("name", w.Name).
		Field("capacity", w.Capacity).
		Field("is_active", w.IsActive).
		Field("is_deleted", w.IsDeleted).
		Field("created_at", w.CreatedAt).
		Field("updated_at", w.UpdatedAt)
	b.Relation(roomCourses, w.Courses).
		Relation(roomSchedules, w.Schedules)
	return b.Expression()
}

type RoomNameOrgIDCompoundUniqueInput struct {
	Name  string    `json:"name"`
	OrgID uuid.UUID `json:"orgId"`
}

type RoomWhereUniqueInput struct {
	ID        *uuid.UUID                        `json:"id,omitempty"`
	NameOrgID *RoomNameOrgIDCompoundUniqueInput `json:"name_orgId,omitempty"`
}

func (u RoomWhereUniqueInput) UniqueExpression(alias string) (clause.Expression, error) {
	keys := []clause.Expression{byID(alias, u.ID)}
	if k := u.NameOrgID; k != nil {
		keys = append(keys, query.And(query.Equals(alias, "name", k.Name), query.Equals(alias, "org_id", k.OrgID)))
	}
	return query.Unique("Room", keys...)
}

func (u RoomWhereUniqueInput) PrimaryKey() (uuid.UUID, bool) {
	return primaryKey(u.ID, u.NameOrgID == nil)
}

type (
	RoomDelegate       = Delegate[models.Room, RoomWhereInput, RoomWhereUniqueInput, RoomField]
	RoomFindUniqueArgs = query.FindUniqueArgs[RoomWhereUniqueInput, RoomField]
	RoomFindManyArgs   = query.FindManyArgs[RoomWhereInput, RoomWhereUniqueInput, RoomField]
	RoomCountArgs      = query.CountArgs[RoomWhereInput, RoomWhereUniqueInput, RoomField]
	RoomAggregateArgs  = query.AggregateArgs[RoomWhereInput, RoomWhereUniqueInput, RoomField]
	RoomGroupByArgs    = query.GroupByArgs[RoomWhereInput, RoomField]
	RoomOrderBy        = query.OrderBy[RoomField]
	RoomAssignment     = query.Assignment[RoomField]
)
