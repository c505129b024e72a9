package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/anjiri1684/tutor_orm/query"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Count returns the number of rows matching where, within the window
// described by cursor, skip and take.
func (d *Delegate[M, W, U, F]) Count(ctx context.Context, args query.CountArgs[W, U, F]) (int64, error) {
	var n int64
	err := d.run("count", func() error {
		windowed := args.Cursor != nil || args.Skip > 0 || args.Take != nil
		w, err := d.page(ctx, d.scoped(ctx), args.Where, args.OrderBy, args.Cursor, args.Skip, args.Take, true)
		if err != nil || w.empty {
			return err
		}
		if !windowed {
			return d.filter(d.scoped(ctx), args.Where).Count(&n).Error
		}
		inner := w.tx.Select(d.meta.primary.DBName)
		return d.client.db.WithContext(ctx).Table("(?) AS counted", inner).Count(&n).Error
	})
	return n, err
}

type aggItem struct {
	fn     query.AggregateFunc
	field  string
	column string
	alias  string
}

type selectItem struct {
	fn     string
	column string
	alias  string
}

// selectList renders "FN(col) AS alias" items; an empty column is *.
type selectList struct {
	table string
	items []selectItem
}

func (s selectList) Build(b clause.Builder) {
	for i, it := range s.items {
		if i > 0 {
			b.WriteString(", ")
		}
		if it.fn != "" {
			b.WriteString(it.fn)
			b.WriteByte('(')
		}
		if it.column == "" {
			b.WriteByte('*')
		} else {
			b.WriteQuoted(clause.Column{Table: s.table, Name: it.column})
		}
		if it.fn != "" {
			b.WriteByte(')')
		}
		b.WriteString(" AS ")
		b.WriteQuoted(it.alias)
	}
}

// aggregateRef is an aggregate call usable in HAVING.
type aggregateRef struct {
	fn     string
	table  string
	column string
}

func (a aggregateRef) Build(b clause.Builder) {
	b.WriteString(a.fn)
	b.WriteByte('(')
	if a.column == "" {
		b.WriteByte('*')
	} else {
		b.WriteQuoted(clause.Column{Table: a.table, Name: a.column})
	}
	b.WriteByte(')')
}

var sqlFuncs = map[query.AggregateFunc]string{
	query.FuncCount: "COUNT",
	query.FuncAvg:   "AVG",
	query.FuncSum:   "SUM",
	query.FuncMin:   "MIN",
	query.FuncMax:   "MAX",
}

func (d *Delegate[M, W, U, F]) aggItems(sel query.AggregateSelect[F]) ([]aggItem, error) {
	groups := []struct {
		fn     query.AggregateFunc
		fields []F
	}{
		{query.FuncCount, sel.Count},
		{query.FuncAvg, sel.Avg},
		{query.FuncSum, sel.Sum},
		{query.FuncMin, sel.Min},
		{query.FuncMax, sel.Max},
	}
	var items []aggItem
	for _, g := range groups {
		for _, f := range g.fields {
			it, err := d.aggItem(g.fn, string(f))
			if err != nil {
				return nil, err
			}
			it.alias = fmt.Sprintf("_%s_%s", g.fn, f)
			items = append(items, it)
		}
	}
	return items, nil
}

func (d *Delegate[M, W, U, F]) aggItem(fn query.AggregateFunc, field string) (aggItem, error) {
	if !fn.IsValid() {
		return aggItem{}, &query.ValidationError{Model: d.meta.name, Field: field, Reason: fmt.Sprintf("unknown aggregate %q", fn)}
	}
	if field == query.CountAll {
		if fn != query.FuncCount {
			return aggItem{}, &query.ValidationError{Model: d.meta.name, Field: field, Reason: "_all is only valid in _count"}
		}
		return aggItem{fn: fn, field: field}, nil
	}
	col, ok := d.meta.column(field)
	if !ok {
		return aggItem{}, &query.ValidationError{Model: d.meta.name, Field: field, Reason: "unknown field"}
	}
	if (fn == query.FuncAvg || fn == query.FuncSum) && !d.meta.numeric(col) {
		return aggItem{}, &query.ValidationError{Model: d.meta.name, Field: field, Reason: fmt.Sprintf("%s requires a numeric field", fn)}
	}
	return aggItem{fn: fn, field: field, column: col}, nil
}

func (it aggItem) scanTarget() interface{} {
	switch it.fn {
	case query.FuncCount:
		return new(int64)
	case query.FuncAvg, query.FuncSum:
		return new(sql.NullFloat64)
	}
	return new(interface{})
}

func collect[F ~string](res *query.AggregateResult[F], it aggItem, target interface{}) {
	key := F(it.field)
	switch it.fn {
	case query.FuncCount:
		if res.Count == nil {
			res.Count = map[F]int64{}
		}
		res.Count[key] = *target.(*int64)
	case query.FuncAvg, query.FuncSum:
		var v *float64
		if nf := target.(*sql.NullFloat64); nf.Valid {
			f := nf.Float64
			v = &f
		}
		m := &res.Avg
		if it.fn == query.FuncSum {
			m = &res.Sum
		}
		if *m == nil {
			*m = map[F]*float64{}
		}
		(*m)[key] = v
	case query.FuncMin, query.FuncMax:
		m := &res.Min
		if it.fn == query.FuncMax {
			m = &res.Max
		}
		if *m == nil {
			*m = map[F]interface{}{}
		}
		(*m)[key] = *target.(*interface{})
	}
}

// Aggregate computes the selected aggregates over the matching rows. When a
// cursor, skip or take is given the aggregates cover only that window.
func (d *Delegate[M, W, U, F]) Aggregate(ctx context.Context, args query.AggregateArgs[W, U, F]) (query.AggregateResult[F], error) {
	var res query.AggregateResult[F]
	err := d.run("aggregate", func() error {
		items, err := d.aggItems(args.AggregateSelect)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return &query.ValidationError{Model: d.meta.name, Reason: "select at least one aggregate"}
		}
		windowed := args.Cursor != nil || args.Skip > 0 || args.Take != nil
		var src *gorm.DB
		table := d.meta.table
		if windowed {
			w, err := d.page(ctx, d.scoped(ctx), args.Where, args.OrderBy, args.Cursor, args.Skip, args.Take, true)
			if err != nil {
				return err
			}
			if w.empty {
				w.tx = w.tx.Where(query.False)
			}
			src = d.client.db.WithContext(ctx).Table("(?) AS aggregated", w.tx)
			table = "aggregated"
		} else {
			if _, err := d.sortKeys(args.OrderBy); err != nil {
				return err
			}
			src = d.filter(d.scoped(ctx), args.Where)
		}
		list := selectList{table: table}
		for _, it := range items {
			list.items = append(list.items, selectItem{fn: sqlFuncs[it.fn], column: it.column, alias: it.alias})
		}
		rows, err := src.Clauses(clause.Select{Expression: list}).Rows()
		if err != nil {
			return err
		}
		defer rows.Close()
		if !rows.Next() {
			return rows.Err()
		}
		targets := make([]interface{}, len(items))
		for i, it := range items {
			targets[i] = it.scanTarget()
		}
		if err := rows.Scan(targets...); err != nil {
			return err
		}
		for i, it := range items {
			collect(&res, it, targets[i])
		}
		return rows.Err()
	})
	return res, err
}

// GroupBy groups matching rows by the given fields. OrderBy may only name
// grouped fields, and skip or take require an orderBy.
func (d *Delegate[M, W, U, F]) GroupBy(ctx context.Context, args query.GroupByArgs[W, F]) ([]query.GroupByRow[F], error) {
	out := []query.GroupByRow[F]{}
	err := d.run("groupBy", func() error {
		if len(args.By) == 0 {
			return &query.ValidationError{Model: d.meta.name, Field: "by", Reason: "at least one field is required"}
		}
		by, err := d.fields(args.By)
		if err != nil {
			return err
		}
		grouped := make(map[F]bool, len(args.By))
		for _, f := range args.By {
			grouped[f] = true
		}
		for _, o := range args.OrderBy {
			if !grouped[o.Field] {
				return &query.ValidationError{Model: d.meta.name, Field: string(o.Field), Reason: "orderBy field must be listed in by"}
			}
		}
		if (args.Skip > 0 || args.Take != nil) && len(args.OrderBy) == 0 {
			return &query.ValidationError{Model: d.meta.name, Field: "orderBy", Reason: "skip and take require orderBy"}
		}
		if args.Skip < 0 || (args.Take != nil && *args.Take < 0) {
			return &query.ValidationError{Model: d.meta.name, Field: "take", Reason: "skip and take must not be negative"}
		}
		keys, err := d.sortKeys(args.OrderBy)
		if err != nil {
			return err
		}
		items, err := d.aggItems(args.AggregateSelect)
		if err != nil {
			return err
		}
		having := make([]clause.Expression, 0, len(args.Having))
		for _, h := range args.Having {
			it, err := d.aggItem(h.Func, string(h.Field))
			if err != nil {
				return err
			}
			ref := aggregateRef{fn: sqlFuncs[it.fn], table: d.meta.table, column: it.column}
			if e := h.Filter.Expression(ref); e != nil {
				having = append(having, e)
			}
		}

		list := selectList{table: d.meta.table}
		groupCols := make([]clause.Column, len(by))
		for i, col := range by {
			list.items = append(list.items, selectItem{column: col, alias: "by_" + col})
			groupCols[i] = clause.Column{Table: d.meta.table, Name: col}
		}
		for _, it := range items {
			list.items = append(list.items, selectItem{fn: sqlFuncs[it.fn], column: it.column, alias: it.alias})
		}
		tx := d.filter(d.scoped(ctx), args.Where).
			Clauses(clause.Select{Expression: list}, clause.GroupBy{Columns: groupCols, Having: having})
		if len(keys) > 0 {
			tx = tx.Clauses(query.OrderClause(d.meta.table, keys))
		}
		if args.Skip > 0 {
			tx = tx.Offset(args.Skip)
		}
		if args.Take != nil {
			tx = tx.Limit(*args.Take)
		}
		rows, err := tx.Rows()
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			targets := make([]interface{}, 0, len(by)+len(items))
			for range by {
				targets = append(targets, new(interface{}))
			}
			for _, it := range items {
				targets = append(targets, it.scanTarget())
			}
			if err := rows.Scan(targets...); err != nil {
				return err
			}
			row := query.GroupByRow[F]{Keys: make(map[F]interface{}, len(by))}
			for i, f := range args.By {
				row.Keys[f] = *targets[i].(*interface{})
			}
			for i, it := range items {
				collect(&row.AggregateResult, it, targets[len(by)+i])
			}
			out = append(out, row)
		}
		return rows.Err()
	})
	return out, err
}
