package client

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindUniqueByID(t *testing.T) {
	c, mock := newTestClient(t)
	id := uuid.New()
	mock.ExpectQuery(q(`SELECT * FROM "students" WHERE "students"."id" = $1`)).
		WithArgs(id, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name"}).AddRow(id.String(), "Ann", "Lee"))

	s, err := c.Student.FindUnique(context.Background(), StudentFindUniqueArgs{Where: StudentWhereUniqueInput{ID: &id}})
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, id, s.ID)
	assert.Equal(t, "Ann Lee", s.FullName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUniqueMissingReturnsNil(t *testing.T) {
	c, mock := newTestClient(t)
	id := uuid.New()
	mock.ExpectQuery(q(`SELECT * FROM "students"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	s, err := c.Student.FindUnique(context.Background(), StudentFindUniqueArgs{Where: StudentWhereUniqueInput{ID: &id}})
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestFindUniqueOrThrow(t *testing.T) {
	c, mock := newTestClient(t)
	id := uuid.New()
	mock.ExpectQuery(q(`SELECT * FROM "students"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := c.Student.FindUniqueOrThrow(context.Background(), StudentFindUniqueArgs{Where: StudentWhereUniqueInput{ID: &id}})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	var known *KnownRequestError
	require.ErrorAs(t, err, &known)
	assert.Equal(t, "Student", known.Model)
}

func TestFindUniqueRequiresSelector(t *testing.T) {
	c, _ := newTestClient(t)
	_, err := c.Student.FindUnique(context.Background(), StudentFindUniqueArgs{})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestFindUniqueCompoundKey(t *testing.T) {
	c, mock := newTestClient(t)
	org := uuid.New()
	mock.ExpectQuery(q(`SELECT * FROM "students" WHERE ("students"."email" = $1 AND "students"."org_id" = $2)`)).
		WithArgs("ann@example.com", org, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(uuid.NewString(), "ann@example.com"))

	s, err := c.Student.FindUnique(context.Background(), StudentFindUniqueArgs{Where: StudentWhereUniqueInput{
		EmailOrgID: &StudentEmailOrgIDCompoundUniqueInput{Email: "ann@example.com", OrgID: org},
	}})
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "ann@example.com", *s.Email)
}

func TestFindManyScopedToOrg(t *testing.T) {
	c, mock := newTestClient(t)
	org := uuid.New()
	mock.ExpectQuery(q(`SELECT * FROM "students" WHERE "students"."org_id" = $1 AND "students"."first_name" ILIKE $2 ORDER BY "students"."last_name" DESC`)+` LIMIT \S+ OFFSET \S+`).
		WithArgs(org, "an%", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name"}).
			AddRow(uuid.NewString(), "Anna").
			AddRow(uuid.NewString(), "Andre"))

	take := 10
	rows, err := c.ForOrg(org).Student.FindMany(context.Background(), StudentFindManyArgs{
		Where:   &StudentWhereInput{FirstName: &query.StringFilter{StartsWith: query.Ptr("an"), Mode: query.ModeInsensitive}},
		OrderBy: []StudentOrderBy{{Field: StudentFieldLastName, Direction: query.Desc}},
		Skip:    5,
		Take:    &take,
	})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindManyTakeZero(t *testing.T) {
	c, mock := newTestClient(t)
	zero := 0
	rows, err := c.Student.FindMany(context.Background(), StudentFindManyArgs{Take: &zero})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindManyUnknownOrderField(t *testing.T) {
	c, _ := newTestClient(t)
	_, err := c.Student.FindMany(context.Background(), StudentFindManyArgs{
		OrderBy: []StudentOrderBy{{Field: "shoeSize"}},
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestFindManyNegativeTakeReadsBackwards(t *testing.T) {
	c, mock := newTestClient(t)
	a, b := uuid.New(), uuid.New()
	mock.ExpectQuery(q(`ORDER BY "students"."last_name" DESC, "students"."id" DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "last_name"}).
			AddRow(b.String(), "Young").
			AddRow(a.String(), "Xu"))

	take := -2
	rows, err := c.Student.FindMany(context.Background(), StudentFindManyArgs{
		OrderBy: []StudentOrderBy{{Field: StudentFieldLastName}},
		Take:    &take,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Xu", rows[0].LastName)
	assert.Equal(t, "Young", rows[1].LastName)
}

func TestFindManyCursor(t *testing.T) {
	c, mock := newTestClient(t)
	cur := uuid.New()
	mock.ExpectQuery(q(`SELECT "last_name","id" FROM "students" WHERE "students"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"last_name", "id"}).AddRow("Lee", cur.String()))
	mock.ExpectQuery(q(`(("students"."last_name" > $1 OR "students"."last_name" IS NULL) OR ("students"."last_name" = $2 AND "students"."id" > $3) OR ("students"."last_name" = $4 AND "students"."id" = $5)) ORDER BY "students"."last_name" ASC, "students"."id" ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "last_name"}).
			AddRow(cur.String(), "Lee").
			AddRow(uuid.NewString(), "Moss"))

	take := 2
	rows, err := c.Student.FindMany(context.Background(), StudentFindManyArgs{
		OrderBy: []StudentOrderBy{{Field: StudentFieldLastName}},
		Cursor:  &StudentWhereUniqueInput{ID: &cur},
		Take:    &take,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, cur, rows[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindManyMissingCursorIsEmpty(t *testing.T) {
	c, mock := newTestClient(t)
	cur := uuid.New()
	mock.ExpectQuery(q(`SELECT "id" FROM "students"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rows, err := c.Student.FindMany(context.Background(), StudentFindManyArgs{Cursor: &StudentWhereUniqueInput{ID: &cur}})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindManyDistinct(t *testing.T) {
	c, mock := newTestClient(t)
	mock.ExpectQuery(q(`SELECT * FROM "courses"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "level"}).
			AddRow(uuid.NewString(), "BEGINNER").
			AddRow(uuid.NewString(), "BEGINNER").
			AddRow(uuid.NewString(), "ADVANCED").
			AddRow(uuid.NewString(), "ADVANCED"))

	take := 1
	rows, err := c.Course.FindMany(context.Background(), CourseFindManyArgs{
		Distinct: []CourseField{CourseFieldLevel},
		Skip:     1,
		Take:     &take,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.CourseLevel("ADVANCED"), rows[0].Level)
}

func TestFindManySelectKeepsPrimaryKey(t *testing.T) {
	c, mock := newTestClient(t)
	mock.ExpectQuery(q(`SELECT "first_name","id" FROM "students"`)).
		WillReturnRows(sqlmock.NewRows([]string{"first_name", "id"}).AddRow("Ann", uuid.NewString()))

	rows, err := c.Student.FindMany(context.Background(), StudentFindManyArgs{Select: []StudentField{StudentFieldFirstName}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotEqual(t, uuid.Nil, rows[0].ID)
}

func TestFindManyIncludeTrimsPerParent(t *testing.T) {
	c, mock := newTestClient(t)
	s1, s2 := uuid.New(), uuid.New()
	mock.ExpectQuery(q(`SELECT * FROM "students"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(s1.String()).AddRow(s2.String()))
	mock.ExpectQuery(q(`SELECT * FROM "student_courses" WHERE `) + `.*` + q(`"student_courses"."status" = `)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "status"}).
			AddRow(uuid.NewString(), s1.String(), "ACTIVE").
			AddRow(uuid.NewString(), s1.String(), "ACTIVE").
			AddRow(uuid.NewString(), s2.String(), "ACTIVE"))

	one := 1
	rows, err := c.Student.FindMany(context.Background(), StudentFindManyArgs{
		Include: []query.Include{{
			Relation: StudentIncludeCourses,
			RawWhere: []byte(`{"status":{"equals":"ACTIVE"}}`),
			Take:     &one,
		}},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0].Courses, 1)
	assert.Len(t, rows[1].Courses, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindManyUnknownInclude(t *testing.T) {
	c, _ := newTestClient(t)
	_, err := c.Student.FindMany(context.Background(), StudentFindManyArgs{
		Include: []query.Include{{Relation: "pets"}},
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestFindFirst(t *testing.T) {
	c, mock := newTestClient(t)
	mock.ExpectQuery(q(`SELECT * FROM "rooms" ORDER BY "rooms"."capacity" DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity"}).AddRow(uuid.NewString(), "Online", 20))

	r, err := c.Room.FindFirst(context.Background(), RoomFindManyArgs{
		OrderBy: []RoomOrderBy{{Field: RoomFieldCapacity, Direction: query.Desc}},
	})
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, 20, r.Capacity)
}

func TestFindFirstOrThrow(t *testing.T) {
	c, mock := newTestClient(t)
	mock.ExpectQuery(q(`SELECT * FROM "rooms"`)).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := c.Room.FindFirstOrThrow(context.Background(), RoomFindManyArgs{})
	assert.True(t, IsNotFound(err))
}
