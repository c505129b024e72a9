package query

import (
	"gorm.io/gorm/clause"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

type NullsOrder string

const (
	NullsFirst NullsOrder = "first"
	NullsLast  NullsOrder = "last"
)

// OrderBy sorts by one scalar field. An empty direction means ascending.
type OrderBy[F ~string] struct {
	Field     F          `json:"field"`
	Direction SortOrder  `json:"direction,omitempty"`
	Nulls     NullsOrder `json:"nulls,omitempty"`
}

func (o OrderBy[F]) Descending() bool { return o.Direction == Desc }

// SortKey is an OrderBy resolved to a column.
type SortKey struct {
	Column string
	Desc   bool
	Nulls  NullsOrder
}

// Reverse flips the direction; used to read backwards for negative takes.
func (k SortKey) Reverse() SortKey {
	k.Desc = !k.Desc
	switch k.Nulls {
	case NullsFirst:
		k.Nulls = NullsLast
	case NullsLast:
		k.Nulls = NullsFirst
	}
	return k
}

type orderList struct {
	alias string
	keys  []SortKey
}

func (o orderList) Build(b clause.Builder) {
	for i, k := range o.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteQuoted(clause.Column{Table: o.alias, Name: k.Column})
		if k.Desc {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
		switch k.Nulls {
		case NullsFirst:
			b.WriteString(" NULLS FIRST")
		case NullsLast:
			b.WriteString(" NULLS LAST")
		}
	}
}

// OrderClause renders keys as a single ORDER BY clause.
func OrderClause(alias string, keys []SortKey) clause.OrderBy {
	return clause.OrderBy{Expression: orderList{alias: alias, keys: keys}}
}

// nullsLast reports whether NULL values of k come after every non-NULL
// value, which is the postgres default for ascending keys.
func (k SortKey) nullsLast() bool {
	if k.Nulls == "" {
		return !k.Desc
	}
	return k.Nulls == NullsLast
}

// After builds the keyset condition selecting rows at or after the cursor
// values in the given ordering. values[i] belongs to keys[i]. The last key
// must be a unique non-NULL tiebreaker such as the primary key.
func After(alias string, keys []SortKey, values []interface{}) clause.Expression {
	if len(keys) == 0 {
		return nil
	}
	terms := make([]clause.Expression, 0, len(keys)+1)
	for i := range keys {
		parts := make([]clause.Expression, 0, i+1)
		for j := 0; j < i; j++ {
			parts = append(parts, Equals(alias, keys[j].Column, values[j]))
		}
		op := ">"
		if keys[i].Desc {
			op = "<"
		}
		ref := Col(alias, keys[i].Column)
		switch {
		case values[i] == nil && keys[i].nullsLast():
			// Nothing sorts after NULL; only equal rows follow.
			continue
		case values[i] == nil:
			parts = append(parts, nullCheck{ref: ref})
		case keys[i].nullsLast() && i < len(keys)-1:
			parts = append(parts, Or(compare{ref: ref, op: op, value: values[i]}, nullCheck{ref: ref, isNull: true}))
		default:
			parts = append(parts, compare{ref: ref, op: op, value: values[i]})
		}
		terms = append(terms, And(parts...))
	}
	same := make([]clause.Expression, len(keys))
	for i, k := range keys {
		same[i] = Equals(alias, k.Column, values[i])
	}
	terms = append(terms, And(same...))
	return Or(terms...)
}
