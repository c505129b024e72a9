package query

import (
	"fmt"
	"hash/fnv"
	"strings"

	"gorm.io/gorm/clause"
)

// maxAliasLength stays under the Postgres identifier limit of 63 bytes.
const maxAliasLength = 60

type columnRef struct {
	col clause.Column
}

func (c columnRef) Build(b clause.Builder) { b.WriteQuoted(c.col) }

// Col references a column of the table or alias currently in scope.
func Col(alias, name string) clause.Expression {
	return columnRef{col: clause.Column{Table: alias, Name: name}}
}

type compare struct {
	ref   clause.Expression
	op    string
	value interface{}
}

func (c compare) Build(b clause.Builder) {
	c.ref.Build(b)
	b.WriteString(" " + c.op + " ")
	b.AddVar(b, c.value)
}

type inList struct {
	ref    clause.Expression
	values []interface{}
	negate bool
}

func (e inList) Build(b clause.Builder) {
	e.ref.Build(b)
	if e.negate {
		b.WriteString(" NOT IN (")
	} else {
		b.WriteString(" IN (")
	}
	for i, v := range e.values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.AddVar(b, v)
	}
	b.WriteByte(')')
}

type nullCheck struct {
	ref    clause.Expression
	isNull bool
}

func (e nullCheck) Build(b clause.Builder) {
	e.ref.Build(b)
	if e.isNull {
		b.WriteString(" IS NULL")
	} else {
		b.WriteString(" IS NOT NULL")
	}
}

type joined struct {
	sep   string
	exprs []clause.Expression
}

func (j joined) Build(b clause.Builder) {
	b.WriteByte('(')
	for i, e := range j.exprs {
		if i > 0 {
			b.WriteString(j.sep)
		}
		e.Build(b)
	}
	b.WriteByte(')')
}

type negation struct {
	expr clause.Expression
}

func (n negation) Build(b clause.Builder) {
	b.WriteString("NOT (")
	n.expr.Build(b)
	b.WriteByte(')')
}

type literal string

func (l literal) Build(b clause.Builder) { b.WriteString(string(l)) }

// False never matches. A nil expression stands for "always true".
var False clause.Expression = literal("1 = 0")

type exists struct {
	table  string
	alias  string
	on     clause.Expression
	cond   clause.Expression
	negate bool
}

func (e exists) Build(b clause.Builder) {
	if e.negate {
		b.WriteString("NOT ")
	}
	b.WriteString("EXISTS (SELECT 1 FROM ")
	b.WriteQuoted(clause.Table{Name: e.table})
	b.WriteString(" AS ")
	b.WriteQuoted(e.alias)
	b.WriteString(" WHERE ")
	e.on.Build(b)
	if e.cond != nil {
		b.WriteString(" AND ")
		e.cond.Build(b)
	}
	b.WriteByte(')')
}

type columnsEqual struct {
	left, right clause.Column
}

func (c columnsEqual) Build(b clause.Builder) {
	b.WriteQuoted(c.left)
	b.WriteString(" = ")
	b.WriteQuoted(c.right)
}

// And joins the non-nil expressions. It returns nil when nothing is left.
func And(exprs ...clause.Expression) clause.Expression {
	kept := compact(exprs)
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return joined{sep: " AND ", exprs: kept}
}

// Or joins expressions with OR. A nil member matches everything, so the
// whole disjunction does too; an empty list matches nothing.
func Or(exprs ...clause.Expression) clause.Expression {
	if len(exprs) == 0 {
		return False
	}
	for _, e := range exprs {
		if e == nil {
			return nil
		}
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return joined{sep: " OR ", exprs: exprs}
}

// Not negates e; negating "always true" yields False.
func Not(e clause.Expression) clause.Expression {
	if e == nil {
		return False
	}
	if e == False {
		return nil
	}
	return negation{expr: e}
}

// Equals is a plain equality against a column, NULL-aware.
func Equals(alias, column string, value interface{}) clause.Expression {
	if value == nil {
		return nullCheck{ref: Col(alias, column), isNull: true}
	}
	return compare{ref: Col(alias, column), op: "=", value: value}
}

func compact(exprs []clause.Expression) []clause.Expression {
	kept := make([]clause.Expression, 0, len(exprs))
	for _, e := range exprs {
		if e != nil {
			kept = append(kept, e)
		}
	}
	return kept
}

func childAlias(parent, relation string) string {
	alias := parent + "__" + relation
	if len(alias) <= maxAliasLength {
		return alias
	}
	h := fnv.New32a()
	h.Write([]byte(alias))
	return fmt.Sprintf("r_%08x", h.Sum32())
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
