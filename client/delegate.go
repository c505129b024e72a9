package client

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/anjiri1684/tutor_orm/query"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Delegate runs the queries of one model. M is the model struct, W its
// WhereInput, U its WhereUniqueInput and F its scalar field enum.
type Delegate[M any, W query.Condition, U query.UniqueCondition, F ~string] struct {
	client *Client
	meta   *modelMeta
}

func newDelegate[M any, W query.Condition, U query.UniqueCondition, F ~string](c *Client) *Delegate[M, W, U, F] {
	return &Delegate[M, W, U, F]{client: c, meta: mustMeta(new(M))}
}

// Name is the model name, e.g. "Student".
func (d *Delegate[M, W, U, F]) Name() string { return d.meta.name }

// Table is the model's table name.
func (d *Delegate[M, W, U, F]) Table() string { return d.meta.table }

// Column resolves a field to its column.
func (d *Delegate[M, W, U, F]) Column(f F) (string, bool) { return d.meta.column(string(f)) }

func (d *Delegate[M, W, U, F]) run(op string, fn func() error) error {
	start := time.Now()
	err := translate(d.meta.name, op, fn())
	d.client.opts.observer.ObserveQuery(d.meta.name, op, time.Since(start), err)
	return err
}

// on starts a statement against model, confined to the client's org.
func (d *Delegate[M, W, U, F]) on(ctx context.Context, model interface{}) *gorm.DB {
	tx := d.client.db.WithContext(ctx).Model(model)
	if d.client.orgID != nil && d.meta.org != nil {
		tx = tx.Where(query.Equals(d.meta.table, orgColumn, *d.client.orgID))
	}
	return tx
}

func (d *Delegate[M, W, U, F]) scoped(ctx context.Context) *gorm.DB {
	return d.on(ctx, new(M))
}

func (d *Delegate[M, W, U, F]) filter(tx *gorm.DB, where *W) *gorm.DB {
	if where == nil {
		return tx
	}
	if e := (*where).Expression(d.meta.table); e != nil {
		tx = tx.Where(e)
	}
	return tx
}

func (d *Delegate[M, W, U, F]) sortKeys(orders []query.OrderBy[F]) ([]query.SortKey, error) {
	return d.meta.sortKeys(untyped(orders))
}

func (d *Delegate[M, W, U, F]) fields(names []F) ([]string, error) {
	return d.meta.columnsOf(d.meta.name, toStrings(names))
}

// FindUnique returns the row matching the unique selector, or nil.
func (d *Delegate[M, W, U, F]) FindUnique(ctx context.Context, args query.FindUniqueArgs[U, F]) (*M, error) {
	var out *M
	err := d.run("findUnique", func() (err error) {
		out, err = d.findUnique(ctx, args)
		return err
	})
	return out, err
}

// FindUniqueOrThrow is FindUnique failing with P2025 when nothing matches.
func (d *Delegate[M, W, U, F]) FindUniqueOrThrow(ctx context.Context, args query.FindUniqueArgs[U, F]) (*M, error) {
	m, err := d.FindUnique(ctx, args)
	if err == nil && m == nil {
		err = notFound(d.meta.name)
	}
	return m, err
}

func (d *Delegate[M, W, U, F]) findUnique(ctx context.Context, args query.FindUniqueArgs[U, F]) (*M, error) {
	expr, err := args.Where.UniqueExpression(d.meta.table)
	if err != nil {
		return nil, err
	}
	id, byID := args.Where.PrimaryKey()
	// Rows read inside a transaction may never commit.
	cacheable := byID && len(args.Select) == 0 && len(args.Include) == 0 && d.client.pending == nil
	if cacheable {
		if m, ok := d.cached(ctx, id); ok {
			return m, nil
		}
	}
	tx, err := d.projection(ctx, d.scoped(ctx).Where(expr), args.Select, nil, args.Include)
	if err != nil {
		return nil, err
	}
	var m M
	if err := tx.Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	rows := []M{m}
	d.trim(ctx, rows, args.Include)
	if cacheable {
		d.remember(ctx, id, &rows[0])
	}
	return &rows[0], nil
}

// FindFirst returns the first row of FindMany, or nil.
func (d *Delegate[M, W, U, F]) FindFirst(ctx context.Context, args query.FindManyArgs[W, U, F]) (*M, error) {
	one := 1
	if args.Take != nil && *args.Take < 0 {
		one = -1
	}
	args.Take = &one
	var out *M
	err := d.run("findFirst", func() error {
		rows, err := d.findMany(ctx, args)
		if err != nil || len(rows) == 0 {
			return err
		}
		out = &rows[0]
		return nil
	})
	return out, err
}

func (d *Delegate[M, W, U, F]) FindFirstOrThrow(ctx context.Context, args query.FindManyArgs[W, U, F]) (*M, error) {
	m, err := d.FindFirst(ctx, args)
	if err == nil && m == nil {
		err = notFound(d.meta.name)
	}
	return m, err
}

// FindMany lists rows. A cursor starts the page at (and including) the
// cursor row; a negative take reads backwards from it. Distinct is applied
// before skip and take.
func (d *Delegate[M, W, U, F]) FindMany(ctx context.Context, args query.FindManyArgs[W, U, F]) ([]M, error) {
	var out []M
	err := d.run("findMany", func() (err error) {
		out, err = d.findMany(ctx, args)
		return err
	})
	return out, err
}

// window describes the filtered, ordered page of a read.
type window struct {
	tx        *gorm.DB
	keys      []query.SortKey
	backwards bool
	empty     bool
}

// page applies where, cursor and ordering. Skip and take are applied only
// when limit is set.
func (d *Delegate[M, W, U, F]) page(ctx context.Context, tx *gorm.DB, where *W, orderBy []query.OrderBy[F], cursor *U, skip int, take *int, limit bool) (window, error) {
	if skip < 0 {
		return window{}, &query.ValidationError{Model: d.meta.name, Field: "skip", Reason: "must not be negative"}
	}
	keys, err := d.sortKeys(orderBy)
	if err != nil {
		return window{}, err
	}
	w := window{backwards: take != nil && *take < 0}
	if cursor != nil || w.backwards {
		keys = d.totalOrder(keys)
	}
	w.keys = keys
	tx = d.filter(tx, where)
	if cursor != nil {
		cond, found, err := d.cursor(ctx, *cursor, keys, w.backwards)
		if err != nil {
			return window{}, err
		}
		if !found {
			w.empty = true
			w.tx = tx
			return w, nil
		}
		tx = tx.Where(cond)
	}
	order := keys
	if w.backwards {
		order = reversed(keys)
	}
	if len(order) > 0 {
		tx = tx.Clauses(query.OrderClause(d.meta.table, order))
	}
	if limit {
		if skip > 0 {
			tx = tx.Offset(skip)
		}
		if take != nil {
			tx = tx.Limit(abs(*take))
		}
	}
	w.tx = tx
	return w, nil
}

func (d *Delegate[M, W, U, F]) findMany(ctx context.Context, args query.FindManyArgs[W, U, F]) ([]M, error) {
	distinct, err := d.fields(args.Distinct)
	if err != nil {
		return nil, err
	}
	if args.Take != nil && *args.Take == 0 {
		return []M{}, nil
	}
	w, err := d.page(ctx, d.scoped(ctx), args.Where, args.OrderBy, args.Cursor, args.Skip, args.Take, len(distinct) == 0)
	if err != nil {
		return nil, err
	}
	if w.empty {
		return []M{}, nil
	}
	tx, err := d.projection(ctx, w.tx, args.Select, distinct, args.Include)
	if err != nil {
		return nil, err
	}
	out := []M{}
	if err := tx.Find(&out).Error; err != nil {
		return nil, err
	}
	if w.backwards {
		reverse(out)
	}
	if len(distinct) > 0 {
		out = paginate(d.distinct(ctx, out, distinct), args.Skip, args.Take)
	}
	d.trim(ctx, out, args.Include)
	return out, nil
}

// totalOrder appends the primary key so keyset pagination is stable.
func (d *Delegate[M, W, U, F]) totalOrder(keys []query.SortKey) []query.SortKey {
	pk := d.meta.primary.DBName
	for _, k := range keys {
		if k.Column == pk {
			return keys
		}
	}
	return append(append([]query.SortKey{}, keys...), query.SortKey{Column: pk})
}

func (d *Delegate[M, W, U, F]) cursor(ctx context.Context, u U, keys []query.SortKey, backwards bool) (clause.Expression, bool, error) {
	expr, err := u.UniqueExpression(d.meta.table)
	if err != nil {
		return nil, false, err
	}
	cols := make([]string, len(keys))
	for i, k := range keys {
		cols[i] = k.Column
	}
	var row M
	err = d.scoped(ctx).Where(expr).Select(cols).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	rv := reflect.ValueOf(&row).Elem()
	values := make([]interface{}, len(keys))
	for i, k := range keys {
		values[i] = d.meta.value(ctx, rv, k.Column)
	}
	order := keys
	if backwards {
		order = reversed(keys)
	}
	return query.After(d.meta.table, order, values), true, nil
}

// projection narrows the selected columns and registers includes. Columns
// needed to join included relations are always selected.
func (d *Delegate[M, W, U, F]) projection(ctx context.Context, tx *gorm.DB, sel []F, extra []string, includes []query.Include) (*gorm.DB, error) {
	cols, err := d.fields(sel)
	if err != nil {
		return nil, err
	}
	if len(cols) > 0 {
		cols = append(cols, extra...)
		cols = append(cols, d.meta.primary.DBName)
		for _, inc := range includes {
			if rel, ok := d.meta.relations[inc.Relation]; ok {
				cols = append(cols, parentColumns(rel)...)
			}
		}
		tx = tx.Select(unique(cols))
	}
	return d.preload(ctx, tx, d.meta, includes, "")
}

func (d *Delegate[M, W, U, F]) distinct(ctx context.Context, rows []M, cols []string) []M {
	seen := make(map[string]struct{}, len(rows))
	out := rows[:0]
	for i := range rows {
		rv := reflect.ValueOf(&rows[i]).Elem()
		key := make([]interface{}, len(cols))
		for j, col := range cols {
			key[j] = d.meta.value(ctx, rv, col)
		}
		k := fingerprint(key)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, rows[i])
	}
	return out
}
