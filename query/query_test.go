package query

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DryRun: true,
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

// build renders e the way gorm would inside a WHERE clause.
func build(t *testing.T, e clause.Expression) (string, []interface{}) {
	t.Helper()
	require.NotNil(t, e)
	stmt := &gorm.Statement{DB: testDB(t), Clauses: map[string]clause.Clause{}}
	e.Build(stmt)
	return stmt.SQL.String(), stmt.Vars
}

type courseWhere struct {
	Name   *StringFilter `json:"name,omitempty"`
	Active *BoolFilter   `json:"isActive,omitempty"`
}

func (w courseWhere) Expression(alias string) clause.Expression {
	return NewWhere(alias).
		Field("name", w.Name).
		Field("is_active", w.Active).
		Expression()
}

type studentWhere struct {
	AND []studentWhere `json:"AND,omitempty"`
	OR  []studentWhere `json:"OR,omitempty"`
	NOT []studentWhere `json:"NOT,omitempty"`

	FirstName *StringFilter `json:"firstName,omitempty"`
	Age       *IntFilter    `json:"age,omitempty"`

	Courses *ListRelationFilter[courseWhere] `json:"courses,omitempty"`
	Mentor  *RelationFilter[courseWhere]     `json:"mentor,omitempty"`
}

var (
	studentCourses = Relation{Name: "courses", Table: "courses", Column: "student_id", References: "id"}
	studentMentor  = Relation{Name: "mentor", Table: "courses", Column: "id", References: "mentor_id"}
)

func (w studentWhere) Expression(alias string) clause.Expression {
	b := NewWhere(alias)
	Logical(b, w.AND, w.OR, w.NOT)
	b.Field("first_name", w.FirstName).Field("age", w.Age)
	b.Relation(studentCourses, w.Courses).Relation(studentMentor, w.Mentor)
	return b.Expression()
}
