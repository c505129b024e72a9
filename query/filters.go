package query

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type QueryMode string

const (
	ModeDefault     QueryMode = "default"
	ModeInsensitive QueryMode = "insensitive"
)

// FieldFilter narrows a single operand, usually a column.
type FieldFilter interface {
	Expression(ref clause.Expression) clause.Expression
}

// StringFilter matches text columns. All set members must hold.
type StringFilter struct {
	Equals     *string       `json:"equals,omitempty"`
	In         []string      `json:"in,omitempty"`
	NotIn      []string      `json:"notIn,omitempty"`
	Lt         *string       `json:"lt,omitempty"`
	Lte        *string       `json:"lte,omitempty"`
	Gt         *string       `json:"gt,omitempty"`
	Gte        *string       `json:"gte,omitempty"`
	Contains   *string       `json:"contains,omitempty"`
	StartsWith *string       `json:"startsWith,omitempty"`
	EndsWith   *string       `json:"endsWith,omitempty"`
	Mode       QueryMode     `json:"mode,omitempty"`
	Not        *StringFilter `json:"not,omitempty"`
	IsNull     *bool         `json:"isNull,omitempty"`
}

func (f *StringFilter) Expression(ref clause.Expression) clause.Expression {
	if f == nil {
		return nil
	}
	insensitive := f.Mode == ModeInsensitive
	var exprs []clause.Expression
	if f.Equals != nil {
		if insensitive {
			exprs = append(exprs, like(ref, escapeLike(*f.Equals), true))
		} else {
			exprs = append(exprs, compare{ref: ref, op: "=", value: *f.Equals})
		}
	}
	exprs = append(exprs, membership(ref, f.In, f.NotIn)...)
	exprs = append(exprs, ranges(ref, f.Lt, f.Lte, f.Gt, f.Gte)...)
	if f.Contains != nil {
		exprs = append(exprs, like(ref, "%"+escapeLike(*f.Contains)+"%", insensitive))
	}
	if f.StartsWith != nil {
		exprs = append(exprs, like(ref, escapeLike(*f.StartsWith)+"%", insensitive))
	}
	if f.EndsWith != nil {
		exprs = append(exprs, like(ref, "%"+escapeLike(*f.EndsWith), insensitive))
	}
	if f.Not != nil {
		exprs = append(exprs, Not(f.Not.Expression(ref)))
	}
	if f.IsNull != nil {
		exprs = append(exprs, nullCheck{ref: ref, isNull: *f.IsNull})
	}
	return And(exprs...)
}

// ScalarFilter matches ordered columns: numbers and timestamps.
type ScalarFilter[T any] struct {
	Equals *T               `json:"equals,omitempty"`
	In     []T              `json:"in,omitempty"`
	NotIn  []T              `json:"notIn,omitempty"`
	Lt     *T               `json:"lt,omitempty"`
	Lte    *T               `json:"lte,omitempty"`
	Gt     *T               `json:"gt,omitempty"`
	Gte    *T               `json:"gte,omitempty"`
	Not    *ScalarFilter[T] `json:"not,omitempty"`
	IsNull *bool            `json:"isNull,omitempty"`
}

type (
	IntFilter      = ScalarFilter[int]
	FloatFilter    = ScalarFilter[float64]
	DateTimeFilter = ScalarFilter[time.Time]
)

func (f *ScalarFilter[T]) Expression(ref clause.Expression) clause.Expression {
	if f == nil {
		return nil
	}
	var exprs []clause.Expression
	if f.Equals != nil {
		exprs = append(exprs, compare{ref: ref, op: "=", value: *f.Equals})
	}
	exprs = append(exprs, membership(ref, f.In, f.NotIn)...)
	exprs = append(exprs, ranges(ref, f.Lt, f.Lte, f.Gt, f.Gte)...)
	if f.Not != nil {
		exprs = append(exprs, Not(f.Not.Expression(ref)))
	}
	if f.IsNull != nil {
		exprs = append(exprs, nullCheck{ref: ref, isNull: *f.IsNull})
	}
	return And(exprs...)
}

// EqualsFilter matches columns that only support equality: ids, enums, flags.
type EqualsFilter[T any] struct {
	Equals *T               `json:"equals,omitempty"`
	In     []T              `json:"in,omitempty"`
	NotIn  []T              `json:"notIn,omitempty"`
	Not    *EqualsFilter[T] `json:"not,omitempty"`
	IsNull *bool            `json:"isNull,omitempty"`
}

type (
	UUIDFilter = EqualsFilter[uuid.UUID]
	BoolFilter = EqualsFilter[bool]
)

func (f *EqualsFilter[T]) Expression(ref clause.Expression) clause.Expression {
	if f == nil {
		return nil
	}
	var exprs []clause.Expression
	if f.Equals != nil {
		exprs = append(exprs, compare{ref: ref, op: "=", value: *f.Equals})
	}
	exprs = append(exprs, membership(ref, f.In, f.NotIn)...)
	if f.Not != nil {
		exprs = append(exprs, Not(f.Not.Expression(ref)))
	}
	if f.IsNull != nil {
		exprs = append(exprs, nullCheck{ref: ref, isNull: *f.IsNull})
	}
	return And(exprs...)
}

// membership treats a nil slice as unset, an empty In as "nothing" and an
// empty NotIn as "everything".
func membership[T any](ref clause.Expression, in, notIn []T) []clause.Expression {
	var exprs []clause.Expression
	if in != nil {
		if len(in) == 0 {
			exprs = append(exprs, False)
		} else {
			exprs = append(exprs, inList{ref: ref, values: toInterfaces(in)})
		}
	}
	if len(notIn) > 0 {
		exprs = append(exprs, inList{ref: ref, values: toInterfaces(notIn), negate: true})
	}
	return exprs
}

func ranges[T any](ref clause.Expression, lt, lte, gt, gte *T) []clause.Expression {
	var exprs []clause.Expression
	if lt != nil {
		exprs = append(exprs, compare{ref: ref, op: "<", value: *lt})
	}
	if lte != nil {
		exprs = append(exprs, compare{ref: ref, op: "<=", value: *lte})
	}
	if gt != nil {
		exprs = append(exprs, compare{ref: ref, op: ">", value: *gt})
	}
	if gte != nil {
		exprs = append(exprs, compare{ref: ref, op: ">=", value: *gte})
	}
	return exprs
}

func like(ref clause.Expression, pattern string, insensitive bool) clause.Expression {
	if insensitive {
		return compare{ref: ref, op: "ILIKE", value: pattern}
	}
	return compare{ref: ref, op: "LIKE", value: pattern}
}

func toInterfaces[T any](values []T) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// Ptr returns a pointer to v; handy for building filters inline.
func Ptr[T any](v T) *T { return &v }
