package client

import (
	"context"
	"reflect"

	"github.com/anjiri1684/tutor_orm/query"
	"gorm.io/gorm"
)

// preload registers includes (and their nested includes) under prefix.
func (d *Delegate[M, W, U, F]) preload(ctx context.Context, tx *gorm.DB, parent *modelMeta, includes []query.Include, prefix string) (*gorm.DB, error) {
	for _, inc := range includes {
		rel, ok := parent.relations[inc.Relation]
		if !ok {
			return nil, &query.ValidationError{Model: parent.name, Field: inc.Relation, Reason: "unknown relation"}
		}
		child := related(rel)
		cond, err := includeCondition(parent, child, inc)
		if err != nil {
			return nil, err
		}
		keys, err := child.sortKeys(inc.OrderBy)
		if err != nil {
			return nil, err
		}
		if inc.Take != nil && *inc.Take < 0 {
			return nil, &query.ValidationError{Model: parent.name, Field: inc.Relation, Reason: "include take must not be negative"}
		}
		path := rel.Name
		if prefix != "" {
			path = prefix + "." + rel.Name
		}
		org := d.client.orgID
		tx = tx.Preload(path, func(db *gorm.DB) *gorm.DB {
			if org != nil && child.org != nil {
				db = db.Where(query.Equals(child.table, orgColumn, *org))
			}
			if cond != nil {
				if e := cond.Expression(child.table); e != nil {
					db = db.Where(e)
				}
			}
			if len(keys) > 0 {
				db = db.Clauses(query.OrderClause(child.table, keys))
			}
			return db
		})
		if tx, err = d.preload(ctx, tx, child, inc.Include, path); err != nil {
			return nil, err
		}
	}
	return tx, nil
}

func includeCondition(parent, child *modelMeta, inc query.Include) (query.Condition, error) {
	if inc.Where != nil {
		return inc.Where, nil
	}
	if len(inc.RawWhere) == 0 || string(inc.RawWhere) == "null" {
		return nil, nil
	}
	decode, ok := conditions[child.table]
	if !ok {
		return nil, &query.ValidationError{Model: parent.name, Field: inc.Relation, Reason: "relation cannot be filtered"}
	}
	cond, err := decode(inc.RawWhere)
	if err != nil {
		return nil, &query.ValidationError{Model: parent.name, Field: inc.Relation, Reason: "invalid include filter: " + err.Error()}
	}
	return cond, nil
}

// trim cuts included to-many relations down to their take, per parent row.
func (d *Delegate[M, W, U, F]) trim(ctx context.Context, rows []M, includes []query.Include) {
	if len(includes) == 0 {
		return
	}
	for i := range rows {
		trimValue(ctx, reflect.ValueOf(&rows[i]).Elem(), d.meta, includes)
	}
}

func trimValue(ctx context.Context, rv reflect.Value, m *modelMeta, includes []query.Include) {
	for _, inc := range includes {
		rel, ok := m.relations[inc.Relation]
		if !ok {
			continue
		}
		child := related(rel)
		fv := rel.Field.ReflectValueOf(ctx, rv)
		switch fv.Kind() {
		case reflect.Slice:
			if inc.Take != nil && fv.Len() > *inc.Take {
				fv.Set(fv.Slice(0, *inc.Take))
			}
			if len(inc.Include) > 0 {
				for j := 0; j < fv.Len(); j++ {
					trimValue(ctx, reflect.Indirect(fv.Index(j)), child, inc.Include)
				}
			}
		case reflect.Ptr:
			if !fv.IsNil() && len(inc.Include) > 0 {
				trimValue(ctx, fv.Elem(), child, inc.Include)
			}
		}
	}
}
