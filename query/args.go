package query

import "encoding/json"

// FindUniqueArgs selects one row by a unique key.
type FindUniqueArgs[U UniqueCondition, F ~string] struct {
	Where   U         `json:"where"`
	Select  []F       `json:"select,omitempty"`
	Include []Include `json:"include,omitempty"`
}

// FindManyArgs covers findMany and findFirst.
type FindManyArgs[W Condition, U UniqueCondition, F ~string] struct {
	Where    *W           `json:"where,omitempty"`
	OrderBy  []OrderBy[F] `json:"orderBy,omitempty"`
	Cursor   *U           `json:"cursor,omitempty"`
	Skip     int          `json:"skip,omitempty"`
	Take     *int         `json:"take,omitempty"`
	Distinct []F          `json:"distinct,omitempty"`
	Select   []F          `json:"select,omitempty"`
	Include  []Include    `json:"include,omitempty"`
}

type CountArgs[W Condition, U UniqueCondition, F ~string] struct {
	Where   *W           `json:"where,omitempty"`
	OrderBy []OrderBy[F] `json:"orderBy,omitempty"`
	Cursor  *U           `json:"cursor,omitempty"`
	Skip    int          `json:"skip,omitempty"`
	Take    *int         `json:"take,omitempty"`
}

// Include preloads a relation. Where may be set directly with the related
// model's WhereInput; RawWhere is the JSON form and is decoded by the client.
type Include struct {
	Relation string            `json:"relation"`
	Where    Condition         `json:"-"`
	RawWhere json.RawMessage   `json:"where,omitempty"`
	OrderBy  []OrderBy[string] `json:"orderBy,omitempty"`
	Take     *int              `json:"take,omitempty"`
	Include  []Include         `json:"include,omitempty"`
}

// CountAll is the pseudo field counting rows in _count.
const CountAll = "_all"

// AggregateSelect lists the aggregates to compute.
type AggregateSelect[F ~string] struct {
	Count []F `json:"_count,omitempty"`
	Avg   []F `json:"_avg,omitempty"`
	Sum   []F `json:"_sum,omitempty"`
	Min   []F `json:"_min,omitempty"`
	Max   []F `json:"_max,omitempty"`
}

func (s AggregateSelect[F]) Empty() bool {
	return len(s.Count)+len(s.Avg)+len(s.Sum)+len(s.Min)+len(s.Max) == 0
}

type AggregateArgs[W Condition, U UniqueCondition, F ~string] struct {
	Where   *W           `json:"where,omitempty"`
	OrderBy []OrderBy[F] `json:"orderBy,omitempty"`
	Cursor  *U           `json:"cursor,omitempty"`
	Skip    int          `json:"skip,omitempty"`
	Take    *int         `json:"take,omitempty"`
	AggregateSelect[F]
}

type AggregateFunc string

const (
	FuncCount AggregateFunc = "count"
	FuncAvg   AggregateFunc = "avg"
	FuncSum   AggregateFunc = "sum"
	FuncMin   AggregateFunc = "min"
	FuncMax   AggregateFunc = "max"
)

func (f AggregateFunc) IsValid() bool {
	switch f {
	case FuncCount, FuncAvg, FuncSum, FuncMin, FuncMax:
		return true
	}
	return false
}

// Having filters groups by an aggregate of a field.
type Having[F ~string] struct {
	Func   AggregateFunc `json:"func"`
	Field  F             `json:"field"`
	Filter FloatFilter   `json:"filter"`
}

type GroupByArgs[W Condition, F ~string] struct {
	By      []F          `json:"by"`
	Where   *W           `json:"where,omitempty"`
	Having  []Having[F]  `json:"having,omitempty"`
	OrderBy []OrderBy[F] `json:"orderBy,omitempty"`
	Skip    int          `json:"skip,omitempty"`
	Take    *int         `json:"take,omitempty"`
	AggregateSelect[F]
}

// AggregateResult mirrors the _count/_avg/_sum/_min/_max result shape.
type AggregateResult[F ~string] struct {
	Count map[F]int64       `json:"_count,omitempty"`
	Avg   map[F]*float64    `json:"_avg,omitempty"`
	Sum   map[F]*float64    `json:"_sum,omitempty"`
	Min   map[F]interface{} `json:"_min,omitempty"`
	Max   map[F]interface{} `json:"_max,omitempty"`
}

type GroupByRow[F ~string] struct {
	Keys map[F]interface{} `json:"keys"`
	AggregateResult[F]
}
