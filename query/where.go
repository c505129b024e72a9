package query

import (
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// Condition is implemented by every model's WhereInput. The alias names the
// table (or subquery alias) the columns belong to. A nil result matches all rows.
type Condition interface {
	Expression(alias string) clause.Expression
}

// UniqueCondition selects at most one row by a unique key. PrimaryKey
// reports the id when it is the only selector set.
type UniqueCondition interface {
	UniqueExpression(alias string) (clause.Expression, error)
	PrimaryKey() (uuid.UUID, bool)
}

// RelationCondition filters on related rows.
type RelationCondition interface {
	Expression(alias string, rel Relation) clause.Expression
}

// Relation describes how a related table joins back to its parent:
// related.Column = parent.References.
type Relation struct {
	Name       string
	Table      string
	Column     string
	References string
}

func (r Relation) subquery(parent string, cond func(alias string) clause.Expression, negate bool) clause.Expression {
	alias := childAlias(parent, r.Name)
	var inner clause.Expression
	if cond != nil {
		inner = cond(alias)
	}
	return exists{
		table: r.Table,
		alias: alias,
		on: columnsEqual{
			left:  clause.Column{Table: alias, Name: r.Column},
			right: clause.Column{Table: parent, Name: r.References},
		},
		cond:   inner,
		negate: negate,
	}
}

// ListRelationFilter filters a parent by its to-many children.
type ListRelationFilter[W Condition] struct {
	Some  *W `json:"some,omitempty"`
	Every *W `json:"every,omitempty"`
	None  *W `json:"none,omitempty"`
}

func (f *ListRelationFilter[W]) Expression(alias string, rel Relation) clause.Expression {
	if f == nil {
		return nil
	}
	var exprs []clause.Expression
	if f.Some != nil {
		w := *f.Some
		exprs = append(exprs, rel.subquery(alias, w.Expression, false))
	}
	if f.Every != nil {
		w := *f.Every
		if probe := w.Expression(alias); probe != nil {
			exprs = append(exprs, rel.subquery(alias, func(a string) clause.Expression {
				return Not(w.Expression(a))
			}, true))
		}
	}
	if f.None != nil {
		w := *f.None
		exprs = append(exprs, rel.subquery(alias, w.Expression, true))
	}
	return And(exprs...)
}

// RelationFilter filters a parent by a to-one relation.
type RelationFilter[W Condition] struct {
	Is    *W `json:"is,omitempty"`
	IsNot *W `json:"isNot,omitempty"`
}

func (f *RelationFilter[W]) Expression(alias string, rel Relation) clause.Expression {
	if f == nil {
		return nil
	}
	var exprs []clause.Expression
	if f.Is != nil {
		w := *f.Is
		exprs = append(exprs, rel.subquery(alias, w.Expression, false))
	}
	if f.IsNot != nil {
		w := *f.IsNot
		exprs = append(exprs, rel.subquery(alias, w.Expression, true))
	}
	return And(exprs...)
}

// Where accumulates the conditions of one WhereInput.
type Where struct {
	alias string
	exprs []clause.Expression
}

func NewWhere(alias string) *Where {
	return &Where{alias: alias}
}

// Field applies f to the named column of the current alias.
func (w *Where) Field(column string, f FieldFilter) *Where {
	w.exprs = append(w.exprs, f.Expression(Col(w.alias, column)))
	return w
}

func (w *Where) Relation(rel Relation, f RelationCondition) *Where {
	w.exprs = append(w.exprs, f.Expression(w.alias, rel))
	return w
}

func (w *Where) Add(e clause.Expression) *Where {
	w.exprs = append(w.exprs, e)
	return w
}

func (w *Where) Expression() clause.Expression {
	return And(w.exprs...)
}

// Logical folds AND, OR and NOT lists into w. NOT lists negate each member.
// An OR list that is present but empty matches nothing.
func Logical[W Condition](w *Where, and, or, not []W) *Where {
	for _, c := range and {
		w.Add(c.Expression(w.alias))
	}
	if or != nil {
		terms := make([]clause.Expression, len(or))
		for i, c := range or {
			terms[i] = c.Expression(w.alias)
		}
		w.Add(Or(terms...))
	}
	for _, c := range not {
		w.Add(Not(c.Expression(w.alias)))
	}
	return w
}

// Unique combines the unique selectors that were set. At least one is required.
func Unique(model string, keys ...clause.Expression) (clause.Expression, error) {
	kept := compact(keys)
	if len(kept) == 0 {
		return nil, &ValidationError{Model: model, Reason: "at least one unique field must be set"}
	}
	return And(kept...), nil
}
