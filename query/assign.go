package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpdateOp string

const (
	OpSet       UpdateOp = "set"
	OpUnset     UpdateOp = "unset"
	OpIncrement UpdateOp = "increment"
	OpDecrement UpdateOp = "decrement"
	OpMultiply  UpdateOp = "multiply"
	OpDivide    UpdateOp = "divide"
)

// Assignment is one entry of an update's data.
type Assignment[F ~string] struct {
	Field F
	Op    UpdateOp
	Value interface{}
}

func Set[F ~string](field F, value interface{}) Assignment[F] {
	return Assignment[F]{Field: field, Op: OpSet, Value: value}
}

func Unset[F ~string](field F) Assignment[F] {
	return Assignment[F]{Field: field, Op: OpUnset}
}

func Increment[F ~string](field F, by interface{}) Assignment[F] {
	return Assignment[F]{Field: field, Op: OpIncrement, Value: by}
}

func Decrement[F ~string](field F, by interface{}) Assignment[F] {
	return Assignment[F]{Field: field, Op: OpDecrement, Value: by}
}

func Multiply[F ~string](field F, by interface{}) Assignment[F] {
	return Assignment[F]{Field: field, Op: OpMultiply, Value: by}
}

func Divide[F ~string](field F, by interface{}) Assignment[F] {
	return Assignment[F]{Field: field, Op: OpDivide, Value: by}
}

var arithmetic = map[UpdateOp]string{
	OpIncrement: "+",
	OpDecrement: "-",
	OpMultiply:  "*",
	OpDivide:    "/",
}

// Columns converts assignments into a gorm update map keyed by column.
// column resolves a field name and reports whether it exists.
func Columns[F ~string](model string, data []Assignment[F], column func(F) (string, bool)) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(data))
	for _, a := range data {
		col, ok := column(a.Field)
		if !ok {
			return nil, &ValidationError{Model: model, Field: string(a.Field), Reason: "unknown field"}
		}
		if _, dup := values[col]; dup {
			return nil, &ValidationError{Model: model, Field: string(a.Field), Reason: "assigned more than once"}
		}
		switch a.Op {
		case OpSet, "":
			values[col] = a.Value
		case OpUnset:
			values[col] = nil
		case OpIncrement, OpDecrement, OpMultiply, OpDivide:
			if a.Value == nil {
				return nil, &ValidationError{Model: model, Field: string(a.Field), Reason: string(a.Op) + " needs a value"}
			}
			if a.Op == OpDivide && isZero(a.Value) {
				return nil, &ValidationError{Model: model, Field: string(a.Field), Reason: "division by zero"}
			}
			values[col] = gorm.Expr("? "+arithmetic[a.Op]+" ?", clause.Column{Name: col}, a.Value)
		default:
			return nil, &ValidationError{Model: model, Field: string(a.Field), Reason: fmt.Sprintf("unsupported operation %q", a.Op)}
		}
	}
	return values, nil
}

func isZero(v interface{}) bool {
	switch n := v.(type) {
	case int:
		return n == 0
	case int64:
		return n == 0
	case float64:
		return n == 0
	case json.Number:
		f, err := n.Float64()
		return err == nil && f == 0
	}
	return false
}

// ParseAssignments reads update data of the form
// {"name": "x", "price": {"increment": 5}, "notes": null}.
// Objects carrying exactly one operation key are treated as operations.
func ParseAssignments[F ~string](raw []byte) ([]Assignment[F], error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &ValidationError{Reason: "data must be an object: " + err.Error()}
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Assignment[F], 0, len(fields))
	for _, name := range names {
		value := fields[name]
		if op, v, ok := operation(value); ok {
			out = append(out, Assignment[F]{Field: F(name), Op: op, Value: v})
			continue
		}
		v, err := decodeValue(value)
		if err != nil {
			return nil, &ValidationError{Field: name, Reason: err.Error()}
		}
		if v == nil {
			out = append(out, Unset(F(name)))
		} else {
			out = append(out, Set(F(name), v))
		}
	}
	return out, nil
}

func operation(raw json.RawMessage) (UpdateOp, interface{}, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil || len(obj) != 1 {
		return "", nil, false
	}
	for key, value := range obj {
		op := UpdateOp(key)
		if op != OpSet && op != OpUnset && arithmetic[op] == "" {
			return "", nil, false
		}
		v, err := decodeValue(value)
		if err != nil {
			return "", nil, false
		}
		if op == OpUnset {
			return OpUnset, nil, true
		}
		return op, v, true
	}
	return "", nil, false
}

func decodeValue(raw json.RawMessage) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return v, nil
}
