package client

import (
	"context"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStampsOrganization(t *testing.T) {
	rec := &recorder{}
	c, mock := newTestClient(t, WithListener(rec.listen))
	org, id := uuid.New(), uuid.New()
	mock.ExpectQuery(`INSERT INTO "students" \(.*"org_id".*\) VALUES .* RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	s, err := c.ForOrg(org).Student.Create(context.Background(), &models.Student{FirstName: "Ann", LastName: "Lee"})
	require.NoError(t, err)
	assert.Equal(t, org, s.OrgID)
	assert.Equal(t, id, s.ID)
	require.NoError(t, mock.ExpectationsWereMet())

	events := rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, ActionCreate, events[0].Action)
	assert.Equal(t, "Student", events[0].Model)
	assert.Equal(t, []uuid.UUID{id}, events[0].IDs)
	require.NotNil(t, events[0].OrgID)
	assert.Equal(t, org, *events[0].OrgID)
}

func TestCreateStoresZeroValues(t *testing.T) {
	c, mock := newTestClient(t)
	org, id := uuid.New(), uuid.New()
	anyArg := sqlmock.AnyArg()
	// org_id, name, description, level, price, total_lessons, duration_minutes,
	// teacher_id, room_id, is_active, is_archived, is_deleted, created_at, updated_at
	mock.ExpectQuery(`INSERT INTO "courses" \(.*"duration_minutes".*"is_active".*\) VALUES`).
		WithArgs(org, "X", anyArg, anyArg, anyArg, anyArg, 0, anyArg, anyArg, false, false, false, anyArg, anyArg).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	course, err := c.ForOrg(org).Course.Create(context.Background(), &models.Course{Name: "X"})
	require.NoError(t, err)
	assert.False(t, course.IsActive)
	assert.Zero(t, course.DurationMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyDefaultsThenOverride(t *testing.T) {
	course := &models.Course{}
	course.ApplyDefaults()
	assert.True(t, course.IsActive)
	assert.Equal(t, 60, course.DurationMinutes)

	room := &models.Room{}
	room.ApplyDefaults()
	room.IsActive = false
	assert.Equal(t, 1, room.Capacity)
	assert.False(t, room.IsActive)
}

func TestCreateRequiresOrganization(t *testing.T) {
	c, mock := newTestClient(t)
	_, err := c.Student.Create(context.Background(), &models.Student{FirstName: "Ann"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNilData(t *testing.T) {
	c, _ := newTestClient(t)
	_, err := c.Room.Create(context.Background(), nil)
	assert.True(t, IsValidation(err))
}

func TestStampReachesNestedRows(t *testing.T) {
	c, _ := newTestClient(t)
	org := uuid.New()
	course := models.Course{
		Name:        "Algebra",
		LessonBooks: []models.LessonBook{{Title: "Book 1"}},
		Students:    []models.StudentCourse{{StudentID: uuid.New()}},
	}
	scoped := c.ForOrg(org)
	require.NoError(t, scoped.stamp(context.Background(), reflect.ValueOf(&course).Elem(), scoped.Course.meta, 0))
	assert.Equal(t, org, course.OrgID)
	assert.Equal(t, org, course.LessonBooks[0].OrgID)
	assert.Equal(t, org, course.Students[0].OrgID)
}

func TestCreateManySkipDuplicates(t *testing.T) {
	rec := &recorder{}
	c, mock := newTestClient(t, WithListener(rec.listen))
	org := uuid.New()
	mock.ExpectQuery(`INSERT INTO "rooms" .* ON CONFLICT DO NOTHING RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))

	n, err := c.ForOrg(org).Room.CreateMany(context.Background(), []models.Room{
		{Name: "Room A", Capacity: 8},
		{Name: "Room A", Capacity: 8},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.Len(t, rec.all(), 1)
	assert.Equal(t, ActionCreateMany, rec.all()[0].Action)
}

func TestCreateManyEmpty(t *testing.T) {
	c, mock := newTestClient(t)
	n, err := c.Room.CreateMany(context.Background(), nil, false)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReturnsRow(t *testing.T) {
	rec := &recorder{}
	c, mock := newTestClient(t, WithListener(rec.listen))
	id := uuid.New()
	mock.ExpectQuery(q(`UPDATE "students" SET "first_name"=$1,"updated_at"=$2 WHERE "students"."id" = $3 RETURNING *`)).
		WithArgs("Anne", sqlmock.AnyArg(), id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name"}).AddRow(id.String(), "Anne"))

	s, err := c.Student.Update(context.Background(), StudentWhereUniqueInput{ID: &id}, []StudentAssignment{
		query.Set(StudentFieldFirstName, "Anne"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Anne", s.FirstName)
	require.Len(t, rec.all(), 1)
	assert.Equal(t, ActionUpdate, rec.all()[0].Action)
	assert.Equal(t, []uuid.UUID{id}, rec.all()[0].IDs)
}

func TestUpdateIncrement(t *testing.T) {
	c, mock := newTestClient(t)
	id := uuid.New()
	mock.ExpectQuery(q(`UPDATE "courses" SET "price"="price" + $1,"updated_at"=$2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).AddRow(id.String(), 15.5))

	course, err := c.Course.Update(context.Background(), CourseWhereUniqueInput{ID: &id}, []CourseAssignment{
		query.Increment(CourseFieldPrice, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, 15.5, course.Price)
}

func TestUpdateMissingRow(t *testing.T) {
	rec := &recorder{}
	c, mock := newTestClient(t, WithListener(rec.listen))
	id := uuid.New()
	mock.ExpectQuery(q(`UPDATE "students"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := c.Student.Update(context.Background(), StudentWhereUniqueInput{ID: &id}, []StudentAssignment{
		query.Set(StudentFieldFirstName, "Anne"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Empty(t, rec.all())
}

func TestUpdateRejectsUnknownField(t *testing.T) {
	c, _ := newTestClient(t)
	id := uuid.New()
	_, err := c.Student.Update(context.Background(), StudentWhereUniqueInput{ID: &id}, []StudentAssignment{
		query.Set[StudentField]("shoeSize", 42),
	})
	assert.True(t, IsValidation(err))
}

func TestUpdateCannotChangeOrganization(t *testing.T) {
	c, _ := newTestClient(t)
	id := uuid.New()
	_, err := c.ForOrg(uuid.New()).Student.Update(context.Background(), StudentWhereUniqueInput{ID: &id}, []StudentAssignment{
		query.Set(StudentFieldOrgID, uuid.New()),
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestUpdateMany(t *testing.T) {
	rec := &recorder{}
	c, mock := newTestClient(t, WithListener(rec.listen))
	org := uuid.New()
	mock.ExpectExec(q(`UPDATE "students" SET "is_archived"=$1,"updated_at"=$2 WHERE "students"."org_id" = $3 AND "students"."is_active" = $4`)).
		WithArgs(true, sqlmock.AnyArg(), org, false).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := c.ForOrg(org).Student.UpdateMany(context.Background(),
		&StudentWhereInput{IsActive: &query.BoolFilter{Equals: query.Ptr(false)}},
		[]StudentAssignment{query.Set(StudentFieldIsArchived, true)})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	require.Len(t, rec.all(), 1)
	assert.Equal(t, ActionUpdateMany, rec.all()[0].Action)
	assert.Equal(t, int64(4), rec.all()[0].Count)
}

func TestDeleteReturnsRow(t *testing.T) {
	c, mock := newTestClient(t)
	id := uuid.New()
	mock.ExpectQuery(q(`DELETE FROM "rooms" WHERE "rooms"."id" = $1 RETURNING *`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(id.String(), "Room B"))

	r, err := c.Room.Delete(context.Background(), RoomWhereUniqueInput{ID: &id})
	require.NoError(t, err)
	assert.Equal(t, "Room B", r.Name)
}

func TestDeleteMissingRow(t *testing.T) {
	c, mock := newTestClient(t)
	id := uuid.New()
	mock.ExpectQuery(q(`DELETE FROM "rooms"`)).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := c.Room.Delete(context.Background(), RoomWhereUniqueInput{ID: &id})
	assert.True(t, IsNotFound(err))
}

func TestDeleteManyWithoutFilter(t *testing.T) {
	rec := &recorder{}
	c, mock := newTestClient(t, WithListener(rec.listen))
	org := uuid.New()
	mock.ExpectExec(q(`DELETE FROM "courses" WHERE "courses"."org_id" = $1`)).
		WithArgs(org).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := c.ForOrg(org).Course.DeleteMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, ActionDeleteMany, rec.all()[0].Action)
}

func TestDeleteManyNothingMatchedEmitsNothing(t *testing.T) {
	rec := &recorder{}
	c, mock := newTestClient(t, WithListener(rec.listen))
	mock.ExpectExec(q(`DELETE FROM "courses"`)).WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := c.Course.DeleteMany(context.Background(), &CourseWhereInput{Name: &query.StringFilter{Equals: query.Ptr("Nope")}})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, rec.all())
}

func TestUpsertCreatesWhenMissing(t *testing.T) {
	c, mock := newTestClient(t)
	org, id := uuid.New(), uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(q(`SELECT * FROM "rooms" WHERE "rooms"."org_id" = $1 AND ("rooms"."name" = $2 AND "rooms"."org_id" = $3)`) + `.* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "rooms"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))
	mock.ExpectCommit()

	r, err := c.ForOrg(org).Room.Upsert(context.Background(),
		RoomWhereUniqueInput{NameOrgID: &RoomNameOrgIDCompoundUniqueInput{Name: "Lab", OrgID: org}},
		&models.Room{Name: "Lab", Capacity: 4},
		[]RoomAssignment{query.Set(RoomFieldCapacity, 6)})
	require.NoError(t, err)
	assert.Equal(t, id, r.ID)
	assert.Equal(t, org, r.OrgID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertUpdatesWhenPresent(t *testing.T) {
	c, mock := newTestClient(t)
	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(q(`SELECT * FROM "rooms" WHERE "rooms"."id" = $1`) + `.* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "capacity"}).AddRow(id.String(), 4))
	mock.ExpectQuery(q(`UPDATE "rooms" SET "capacity"=$1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "capacity"}).AddRow(id.String(), 6))
	mock.ExpectCommit()

	r, err := c.Room.Upsert(context.Background(), RoomWhereUniqueInput{ID: &id},
		&models.Room{Name: "Lab", Capacity: 4},
		[]RoomAssignment{query.Set(RoomFieldCapacity, 6)})
	require.NoError(t, err)
	assert.Equal(t, 6, r.Capacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDelete(t *testing.T) {
	c, mock := newTestClient(t)
	id := uuid.New()
	mock.ExpectQuery(q(`UPDATE "teachers" SET "is_deleted"=$1`)).
		WithArgs(true, sqlmock.AnyArg(), id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_deleted"}).AddRow(id.String(), true))

	tch, err := c.Teacher.SoftDelete(context.Background(), TeacherWhereUniqueInput{ID: &id})
	require.NoError(t, err)
	assert.True(t, tch.IsDeleted)
}
