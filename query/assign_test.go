package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

type field string

var columns = map[field]string{"name": "name", "price": "price", "totalLessons": "total_lessons", "notes": "notes"}

func column(f field) (string, bool) {
	c, ok := columns[f]
	return c, ok
}

func TestColumns(t *testing.T) {
	values, err := Columns("Course", []Assignment[field]{
		Set[field]("name", "Algebra"),
		Unset[field]("notes"),
		Increment[field]("totalLessons", 2),
		Multiply[field]("price", 1.1),
	}, column)
	require.NoError(t, err)

	assert.Equal(t, "Algebra", values["name"])
	assert.Nil(t, values["notes"])
	assert.Contains(t, values, "notes")

	inc, ok := values["total_lessons"].(clause.Expr)
	require.True(t, ok)
	assert.Equal(t, "? + ?", inc.SQL)
	assert.Equal(t, []interface{}{clause.Column{Name: "total_lessons"}, 2}, inc.Vars)

	mul := values["price"].(clause.Expr)
	assert.Equal(t, "? * ?", mul.SQL)
}

func TestColumnsRejectsBadInput(t *testing.T) {
	cases := map[string][]Assignment[field]{
		"unknown field":   {Set[field]("nope", 1)},
		"duplicate":       {Set[field]("name", "a"), Set[field]("name", "b")},
		"division by 0":   {Divide[field]("price", 0)},
		"missing operand": {Decrement[field]("price", nil)},
		"bad op":          {{Field: "price", Op: "pow", Value: 2}},
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Columns("Course", data, column)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestParseAssignments(t *testing.T) {
	data, err := ParseAssignments[field]([]byte(`{"price":{"increment":5},"name":"Geometry","notes":null,"totalLessons":{"set":12},"score":{"divide":2.5}}`))
	require.NoError(t, err)
	require.Len(t, data, 5)

	// keys come back sorted
	assert.Equal(t, Set[field]("name", "Geometry"), data[0])
	assert.Equal(t, Unset[field]("notes"), data[1])
	assert.Equal(t, Increment[field]("price", int64(5)), data[2])
	assert.Equal(t, Divide[field]("score", 2.5), data[3])
	assert.Equal(t, Set[field]("totalLessons", int64(12)), data[4])

	_, err = ParseAssignments[field]([]byte(`[1,2]`))
	assert.Error(t, err)
}
