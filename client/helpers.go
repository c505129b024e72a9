package client

import (
	"fmt"
	"strings"

	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

func untyped[F ~string](orders []query.OrderBy[F]) []query.OrderBy[string] {
	out := make([]query.OrderBy[string], len(orders))
	for i, o := range orders {
		out[i] = query.OrderBy[string]{Field: string(o.Field), Direction: o.Direction, Nulls: o.Nulls}
	}
	return out
}

func toStrings[F ~string](in []F) []string {
	out := make([]string, len(in))
	for i, f := range in {
		out[i] = string(f)
	}
	return out
}

func reversed(keys []query.SortKey) []query.SortKey {
	out := make([]query.SortKey, len(keys))
	for i, k := range keys {
		out[i] = k.Reverse()
	}
	return out
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// paginate applies skip and take in memory. A negative take counts from
// the end, skipping from the end first.
func paginate[T any](rows []T, skip int, take *int) []T {
	if take != nil && *take < 0 {
		end := len(rows) - skip
		if end < 0 {
			end = 0
		}
		start := end + *take
		if start < 0 {
			start = 0
		}
		return rows[start:end]
	}
	if skip >= len(rows) {
		return rows[:0]
	}
	rows = rows[skip:]
	if take != nil && *take < len(rows) {
		rows = rows[:*take]
	}
	return rows
}

func unique(cols []string) []string {
	seen := make(map[string]struct{}, len(cols))
	out := cols[:0]
	for _, c := range cols {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func fingerprint(values []interface{}) string {
	var b strings.Builder
	for _, v := range values {
		fmt.Fprintf(&b, "%T=%v|", v, v)
	}
	return b.String()
}

func byID(alias string, id *uuid.UUID) clause.Expression {
	if id == nil {
		return nil
	}
	return query.Equals(alias, "id", *id)
}

// primaryKey reports id when it is the only unique selector set.
func primaryKey(id *uuid.UUID, only bool) (uuid.UUID, bool) {
	if id == nil || !only {
		return uuid.Nil, false
	}
	return *id, true
}
