package client

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount(t *testing.T) {
	c, mock := newTestClient(t)
	mock.ExpectQuery(q(`SELECT count(*) FROM "students" WHERE "students"."is_active" = $1`)).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	n, err := c.Student.Count(context.Background(), StudentCountArgs{
		Where: &StudentWhereInput{IsActive: &query.BoolFilter{Equals: query.Ptr(true)}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestCountWindowed(t *testing.T) {
	c, mock := newTestClient(t)
	mock.ExpectQuery(q(`SELECT count(*) FROM (SELECT "id" FROM "students"`) + `.*` + q(`) AS counted`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))

	take := 2
	n, err := c.Student.Count(context.Background(), StudentCountArgs{Take: &take})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestCountMissingCursor(t *testing.T) {
	c, mock := newTestClient(t)
	cur := uuid.New()
	mock.ExpectQuery(q(`SELECT "id" FROM "students"`)).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	n, err := c.Student.Count(context.Background(), StudentCountArgs{Cursor: &StudentWhereUniqueInput{ID: &cur}})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregate(t *testing.T) {
	c, mock := newTestClient(t)
	mock.ExpectQuery(q(`SELECT COUNT(*) AS "_count__all", AVG("courses"."price") AS "_avg_price", MAX("courses"."total_lessons") AS "_max_totalLessons" FROM "courses"`)).
		WillReturnRows(sqlmock.NewRows([]string{"_count__all", "_avg_price", "_max_totalLessons"}).AddRow(int64(3), 12.5, int64(24)))

	res, err := c.Course.Aggregate(context.Background(), CourseAggregateArgs{
		AggregateSelect: query.AggregateSelect[CourseField]{
			Count: []CourseField{query.CountAll},
			Avg:   []CourseField{CourseFieldPrice},
			Max:   []CourseField{CourseFieldTotalLessons},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Count[query.CountAll])
	require.NotNil(t, res.Avg[CourseFieldPrice])
	assert.Equal(t, 12.5, *res.Avg[CourseFieldPrice])
	assert.Equal(t, int64(24), res.Max[CourseFieldTotalLessons])
}

func TestAggregateEmptyTableAverages(t *testing.T) {
	c, mock := newTestClient(t)
	mock.ExpectQuery(q(`SELECT SUM("courses"."price") AS "_sum_price" FROM "courses"`)).
		WillReturnRows(sqlmock.NewRows([]string{"_sum_price"}).AddRow(nil))

	res, err := c.Course.Aggregate(context.Background(), CourseAggregateArgs{
		AggregateSelect: query.AggregateSelect[CourseField]{Sum: []CourseField{CourseFieldPrice}},
	})
	require.NoError(t, err)
	v, ok := res.Sum[CourseFieldPrice]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestAggregateValidation(t *testing.T) {
	c, _ := newTestClient(t)
	cases := map[string]query.AggregateSelect[CourseField]{
		"nothing selected":   {},
		"avg of text":        {Avg: []CourseField{CourseFieldName}},
		"unknown field":      {Min: []CourseField{"color"}},
		"_all outside count": {Sum: []CourseField{query.CountAll}},
	}
	for name, sel := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.Course.Aggregate(context.Background(), CourseAggregateArgs{AggregateSelect: sel})
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestGroupBy(t *testing.T) {
	c, mock := newTestClient(t)
	mock.ExpectQuery(q(`SELECT "courses"."level" AS "by_level", COUNT(*) AS "_count__all" FROM "courses" GROUP BY "courses"."level" HAVING COUNT(*) > $1 ORDER BY "courses"."level" ASC`)).
		WithArgs(1.0).
		WillReturnRows(sqlmock.NewRows([]string{"by_level", "_count__all"}).
			AddRow("ADVANCED", int64(2)).
			AddRow("BEGINNER", int64(5)))

	rows, err := c.Course.GroupBy(context.Background(), CourseGroupByArgs{
		By:      []CourseField{CourseFieldLevel},
		Having:  []query.Having[CourseField]{{Func: query.FuncCount, Field: query.CountAll, Filter: query.FloatFilter{Gt: query.Ptr(1.0)}}},
		OrderBy: []CourseOrderBy{{Field: CourseFieldLevel}},
		AggregateSelect: query.AggregateSelect[CourseField]{
			Count: []CourseField{query.CountAll},
		},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ADVANCED", rows[0].Keys[CourseFieldLevel])
	assert.Equal(t, int64(5), rows[1].Count[query.CountAll])
}

func TestGroupByValidation(t *testing.T) {
	c, _ := newTestClient(t)
	take := 2
	cases := map[string]CourseGroupByArgs{
		"no by":              {},
		"order by ungrouped": {By: []CourseField{CourseFieldLevel}, OrderBy: []CourseOrderBy{{Field: CourseFieldPrice}}},
		"take without order": {By: []CourseField{CourseFieldLevel}, Take: &take},
		"unknown by field":   {By: []CourseField{"color"}},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.Course.GroupBy(context.Background(), args)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
}
