package client

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"gorm.io/gorm/schema"
)

const orgColumn = "org_id"

// modelMeta is the parsed gorm schema of a model plus the json name
// lookups the delegates resolve field and relation names with.
type modelMeta struct {
	name      string
	table     string
	schema    *schema.Schema
	columns   map[string]string
	fields    map[string]*schema.Field
	relations map[string]*schema.Relationship
	primary   *schema.Field
	org       *schema.Field
}

var (
	metas   sync.Map
	schemas = &sync.Map{}
)

func modelType(model interface{}) reflect.Type {
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func loadMeta(model interface{}, namer schema.Namer) (*modelMeta, error) {
	t := modelType(model)
	if m, ok := metas.Load(t); ok {
		return m.(*modelMeta), nil
	}
	s, err := schema.Parse(model, schemas, namer)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", t, err)
	}
	m := describe(s)
	if m.primary == nil {
		return nil, fmt.Errorf("model %s has no primary key", s.Name)
	}
	actual, _ := metas.LoadOrStore(t, m)
	return actual.(*modelMeta), nil
}

func mustMeta(model interface{}) *modelMeta {
	m, ok := metas.Load(modelType(model))
	if !ok {
		panic(fmt.Sprintf("client: model %T was not registered", model))
	}
	return m.(*modelMeta)
}

// related returns the metadata of a relation's target model.
func related(rel *schema.Relationship) *modelMeta {
	if m, ok := metas.Load(rel.FieldSchema.ModelType); ok {
		return m.(*modelMeta)
	}
	m, _ := metas.LoadOrStore(rel.FieldSchema.ModelType, describe(rel.FieldSchema))
	return m.(*modelMeta)
}

func describe(s *schema.Schema) *modelMeta {
	m := &modelMeta{
		name:      s.Name,
		table:     s.Table,
		schema:    s,
		columns:   make(map[string]string, len(s.Fields)),
		fields:    make(map[string]*schema.Field, len(s.Fields)),
		relations: make(map[string]*schema.Relationship, len(s.Relationships.Relations)),
		primary:   s.PrioritizedPrimaryField,
	}
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		m.columns[jsonName(f)] = f.DBName
		m.fields[f.DBName] = f
	}
	for _, rel := range s.Relationships.Relations {
		m.relations[jsonName(rel.Field)] = rel
	}
	m.org = m.fields[orgColumn]
	return m
}

func jsonName(f *schema.Field) string {
	name := strings.Split(f.Tag.Get("json"), ",")[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func (m *modelMeta) column(name string) (string, bool) {
	col, ok := m.columns[name]
	return col, ok
}

func (m *modelMeta) columnsOf(model string, names []string) ([]string, error) {
	cols := make([]string, 0, len(names))
	for _, n := range names {
		col, ok := m.columns[n]
		if !ok {
			return nil, &query.ValidationError{Model: model, Field: n, Reason: "unknown field"}
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func (m *modelMeta) sortKeys(orders []query.OrderBy[string]) ([]query.SortKey, error) {
	keys := make([]query.SortKey, 0, len(orders))
	for _, o := range orders {
		col, ok := m.columns[o.Field]
		if !ok {
			return nil, &query.ValidationError{Model: m.name, Field: o.Field, Reason: "unknown orderBy field"}
		}
		if o.Direction != "" && o.Direction != query.Asc && o.Direction != query.Desc {
			return nil, &query.ValidationError{Model: m.name, Field: o.Field, Reason: fmt.Sprintf("invalid direction %q", o.Direction)}
		}
		keys = append(keys, query.SortKey{Column: col, Desc: o.Descending(), Nulls: o.Nulls})
	}
	return keys, nil
}

// numeric reports whether the column can be averaged or summed.
func (m *modelMeta) numeric(col string) bool {
	f, ok := m.fields[col]
	if !ok {
		return false
	}
	t := f.FieldType
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func (m *modelMeta) value(ctx context.Context, rv reflect.Value, col string) interface{} {
	f, ok := m.fields[col]
	if !ok {
		return nil
	}
	v, _ := f.ValueOf(ctx, rv)
	return plain(v)
}

func (m *modelMeta) id(ctx context.Context, rv reflect.Value) uuid.UUID {
	v, _ := m.primary.ValueOf(ctx, rv)
	id, _ := v.(uuid.UUID)
	return id
}

func (m *modelMeta) orgOf(ctx context.Context, rv reflect.Value) (uuid.UUID, bool) {
	if m.org == nil {
		return uuid.Nil, false
	}
	v, _ := m.org.ValueOf(ctx, rv)
	id, ok := v.(uuid.UUID)
	return id, ok
}

// plain dereferences pointers so nil pointers compare as nil.
func plain(v interface{}) interface{} {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

// parentColumns are the columns of the owning model a relation joins on.
func parentColumns(rel *schema.Relationship) []string {
	cols := make([]string, 0, len(rel.References))
	for _, ref := range rel.References {
		if ref.OwnPrimaryKey {
			cols = append(cols, ref.PrimaryKey.DBName)
		} else if ref.ForeignKey != nil {
			cols = append(cols, ref.ForeignKey.DBName)
		}
	}
	return cols
}
