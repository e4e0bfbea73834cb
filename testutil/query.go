package testutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

var errOrderByRequired = errors.New("orderBy must be defined when other query parameters are defined")

// fakeQuery is the subset of REST query parameters the FakeDB understands.
type fakeQuery struct {
	orderBy      string
	hasOrderBy   bool
	startAt      any
	endAt        any
	equalTo      any
	hasStart     bool
	hasEnd       bool
	hasEqual     bool
	limitToFirst int
	limitToLast  int
}

func parseQuery(values url.Values) (fakeQuery, error) {
	var q fakeQuery

	if raw := values.Get("orderBy"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &q.orderBy); err != nil {
			return q, errors.New("orderBy must be a valid JSON encoded path")
		}
		q.hasOrderBy = true
	}

	for _, p := range []struct {
		name string
		dst  *any
		set  *bool
	}{
		{"startAt", &q.startAt, &q.hasStart},
		{"endAt", &q.endAt, &q.hasEnd},
		{"equalTo", &q.equalTo, &q.hasEqual},
	} {
		raw, ok := values[p.name]
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(raw[0]), p.dst); err != nil {
			return q, fmt.Errorf("constraint index field must be a JSON primitive: %s", p.name)
		}
		*p.set = true
	}

	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"limitToFirst", &q.limitToFirst},
		{"limitToLast", &q.limitToLast},
	} {
		raw := values.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return q, fmt.Errorf("%s must be a positive integer", p.name)
		}
		*p.dst = n
	}

	if q.limitToFirst > 0 && q.limitToLast > 0 {
		return q, errors.New("limitToFirst and limitToLast cannot both be defined")
	}
	filtered := q.hasStart || q.hasEnd || q.hasEqual || q.limitToFirst > 0 || q.limitToLast > 0
	if filtered && !q.hasOrderBy {
		return q, errOrderByRequired
	}
	return q, nil
}

type entry struct {
	key   string
	value any
	sort  any
}

// apply orders and filters the children of node. Nodes that are not objects
// are returned unchanged.
func (q fakeQuery) apply(node any) any {
	if !q.hasOrderBy {
		return node
	}
	m, ok := node.(map[string]any)
	if !ok {
		return node
	}

	entries := make([]entry, 0, len(m))
	for k, v := range m {
		e := entry{key: k, value: v}
		switch q.orderBy {
		case "$key":
			e.sort = k
		case "$value":
			e.sort = v
		default:
			e.sort = getPath(v, splitPath(q.orderBy))
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if c := compareValues(entries[i].sort, entries[j].sort); c != 0 {
			return c < 0
		}
		return entries[i].key < entries[j].key
	})

	kept := entries[:0]
	for _, e := range entries {
		if q.hasEqual && compareValues(e.sort, q.equalTo) != 0 {
			continue
		}
		if q.hasStart && compareValues(e.sort, q.startAt) < 0 {
			continue
		}
		if q.hasEnd && compareValues(e.sort, q.endAt) > 0 {
			continue
		}
		kept = append(kept, e)
	}

	if q.limitToFirst > 0 && len(kept) > q.limitToFirst {
		kept = kept[:q.limitToFirst]
	}
	if q.limitToLast > 0 && len(kept) > q.limitToLast {
		kept = kept[len(kept)-q.limitToLast:]
	}

	out := make(map[string]any, len(kept))
	for _, e := range kept {
		out[e.key] = e.value
	}
	return out
}

// rank orders value kinds: null, false, true, numbers, strings, objects.
func rank(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case bool:
		if n {
			return 2
		}
		return 1
	case float64:
		return 3
	case string:
		return 4
	default:
		return 5
	}
}

func compareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra - rb
	}
	switch av := a.(type) {
	case float64:
		bv := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case string:
		return strings.Compare(av, b.(string))
	}
	return 0
}
