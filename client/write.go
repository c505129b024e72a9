package client

import (
	"context"
	"errors"
	"reflect"

	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

const createBatchSize = 500

// Create inserts data together with any nested relations set on it and
// returns it with generated columns filled in.
func (d *Delegate[M, W, U, F]) Create(ctx context.Context, data *M) (*M, error) {
	err := d.run("create", func() error {
		if data == nil {
			return &query.ValidationError{Model: d.meta.name, Reason: "data is required"}
		}
		if err := d.client.stamp(ctx, reflect.ValueOf(data).Elem(), d.meta, 0); err != nil {
			return err
		}
		return d.client.db.WithContext(ctx).Create(data).Error
	})
	if err != nil {
		return nil, err
	}
	id := d.meta.id(ctx, reflect.ValueOf(data).Elem())
	d.client.emit(ctx, Event{Model: d.meta.name, Action: ActionCreate, IDs: []uuid.UUID{id}, Count: 1})
	return data, nil
}

// CreateMany inserts rows in batches without nested relations. With
// skipDuplicates, rows violating a unique constraint are skipped.
func (d *Delegate[M, W, U, F]) CreateMany(ctx context.Context, data []M, skipDuplicates bool) (int64, error) {
	if len(data) == 0 {
		return 0, nil
	}
	var count int64
	err := d.run("createMany", func() error {
		for i := range data {
			if err := d.client.stamp(ctx, reflect.ValueOf(&data[i]).Elem(), d.meta, -1); err != nil {
				return err
			}
		}
		tx := d.client.db.WithContext(ctx).Omit(clause.Associations)
		if skipDuplicates {
			tx = tx.Clauses(clause.OnConflict{DoNothing: true})
		}
		res := tx.CreateInBatches(&data, createBatchSize)
		count = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	ids := make([]uuid.UUID, 0, len(data))
	for i := range data {
		if id := d.meta.id(ctx, reflect.ValueOf(&data[i]).Elem()); id != uuid.Nil {
			ids = append(ids, id)
		}
	}
	d.client.emit(ctx, Event{Model: d.meta.name, Action: ActionCreateMany, IDs: ids, Count: count})
	return count, nil
}

// Update applies data to the row matching where and returns the updated
// row. It fails with P2025 when nothing matches.
func (d *Delegate[M, W, U, F]) Update(ctx context.Context, where U, data []query.Assignment[F]) (*M, error) {
	var out M
	err := d.run("update", func() error {
		return d.update(ctx, where, data, &out)
	})
	if err != nil {
		return nil, err
	}
	id := d.meta.id(ctx, reflect.ValueOf(&out).Elem())
	d.client.emit(ctx, Event{Model: d.meta.name, Action: ActionUpdate, IDs: []uuid.UUID{id}, Count: 1})
	return &out, nil
}

func (d *Delegate[M, W, U, F]) update(ctx context.Context, where U, data []query.Assignment[F], out *M) error {
	expr, err := where.UniqueExpression(d.meta.table)
	if err != nil {
		return err
	}
	values, err := query.Columns(d.meta.name, data, d.Column)
	if err != nil {
		return err
	}
	if err := d.guard(values); err != nil {
		return err
	}
	if len(values) == 0 {
		return d.scoped(ctx).Where(expr).Take(out).Error
	}
	res := d.on(ctx, out).Where(expr).Clauses(clause.Returning{}).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// guard rejects moving a row out of the client's organization.
func (d *Delegate[M, W, U, F]) guard(values map[string]interface{}) error {
	if d.client.orgID == nil || d.meta.org == nil {
		return nil
	}
	if v, ok := values[orgColumn]; ok {
		if id, ok := plain(v).(uuid.UUID); !ok || id != *d.client.orgID {
			return &query.ValidationError{Model: d.meta.name, Field: "orgId", Reason: "cannot move a record to another organization"}
		}
	}
	return nil
}

// UpdateMany applies data to every row matching where.
func (d *Delegate[M, W, U, F]) UpdateMany(ctx context.Context, where *W, data []query.Assignment[F]) (int64, error) {
	var count int64
	err := d.run("updateMany", func() error {
		values, err := query.Columns(d.meta.name, data, d.Column)
		if err != nil {
			return err
		}
		if err := d.guard(values); err != nil {
			return err
		}
		if len(values) == 0 {
			return nil
		}
		res := d.filter(d.bulk(ctx), where).Updates(values)
		count = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	if count > 0 {
		d.client.emit(ctx, Event{Model: d.meta.name, Action: ActionUpdateMany, Count: count})
	}
	return count, nil
}

// bulk is scoped for statements allowed to touch every row.
func (d *Delegate[M, W, U, F]) bulk(ctx context.Context) *gorm.DB {
	tx := d.client.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Model(new(M))
	if d.client.orgID != nil && d.meta.org != nil {
		tx = tx.Where(query.Equals(d.meta.table, orgColumn, *d.client.orgID))
	}
	return tx
}

// Upsert updates the row matching where, or creates it when absent. The
// existing row is locked for the duration of the update.
func (d *Delegate[M, W, U, F]) Upsert(ctx context.Context, where U, create *M, update []query.Assignment[F]) (*M, error) {
	var out *M
	err := d.client.Transaction(ctx, func(tx *Client) error {
		td := &Delegate[M, W, U, F]{client: tx, meta: d.meta}
		expr, err := where.UniqueExpression(d.meta.table)
		if err != nil {
			return err
		}
		var existing M
		err = td.scoped(ctx).Where(expr).Clauses(clause.Locking{Strength: "UPDATE"}).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			out, err = td.Create(ctx, create)
		case err != nil:
			return translate(d.meta.name, "upsert", err)
		default:
			out, err = td.Update(ctx, where, update)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the row matching where and returns it.
func (d *Delegate[M, W, U, F]) Delete(ctx context.Context, where U) (*M, error) {
	var out M
	err := d.run("delete", func() error {
		expr, err := where.UniqueExpression(d.meta.table)
		if err != nil {
			return err
		}
		res := d.on(ctx, &out).Where(expr).Clauses(clause.Returning{}).Delete(&out)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	id := d.meta.id(ctx, reflect.ValueOf(&out).Elem())
	d.client.emit(ctx, Event{Model: d.meta.name, Action: ActionDelete, IDs: []uuid.UUID{id}, Count: 1})
	return &out, nil
}

// DeleteMany removes every row matching where. A nil where removes all rows
// visible to the client.
func (d *Delegate[M, W, U, F]) DeleteMany(ctx context.Context, where *W) (int64, error) {
	var count int64
	err := d.run("deleteMany", func() error {
		res := d.filter(d.bulk(ctx), where).Delete(new(M))
		count = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	if count > 0 {
		d.client.emit(ctx, Event{Model: d.meta.name, Action: ActionDeleteMany, Count: count})
	}
	return count, nil
}

// SoftDelete flags the row as deleted instead of removing it.
func (d *Delegate[M, W, U, F]) SoftDelete(ctx context.Context, where U) (*M, error) {
	return d.Update(ctx, where, []query.Assignment[F]{query.Set(F("isDeleted"), true)})
}

const maxStampDepth = 4

// stamp sets the organization on a row about to be created, and on nested
// rows down to maxStampDepth. A negative depth skips relations.
func (c *Client) stamp(ctx context.Context, rv reflect.Value, m *modelMeta, depth int) error {
	if m.org != nil {
		if c.orgID != nil {
			if err := m.org.Set(ctx, rv, *c.orgID); err != nil {
				return err
			}
		} else if id, _ := m.orgOf(ctx, rv); id == uuid.Nil {
			return &query.ValidationError{Model: m.name, Field: "orgId", Reason: "is required"}
		}
	}
	if depth < 0 || depth >= maxStampDepth {
		return nil
	}
	for _, rel := range m.schema.Relationships.Relations {
		if rel.Type == schema.BelongsTo {
			continue
		}
		child := related(rel)
		fv := rel.Field.ReflectValueOf(ctx, rv)
		switch fv.Kind() {
		case reflect.Slice:
			for i := 0; i < fv.Len(); i++ {
				if err := c.stamp(ctx, reflect.Indirect(fv.Index(i)), child, depth+1); err != nil {
					return err
				}
			}
		case reflect.Ptr:
			if !fv.IsNil() {
				if err := c.stamp(ctx, fv.Elem(), child, depth+1); err != nil {
					return err
				}
			}
		case reflect.Struct:
			if !fv.IsZero() {
				if err := c.stamp(ctx, fv, child, depth+1); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
