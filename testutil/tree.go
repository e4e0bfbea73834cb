package testutil

import (
	"strconv"
	"strings"
)

func splitPath(path string) []string {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

func getPath(node any, segs []string) any {
	for _, s := range segs {
		switch n := node.(type) {
		case map[string]any:
			node = n[s]
		case []any:
			i, err := strconv.Atoi(s)
			if err != nil || i < 0 || i >= len(n) {
				return nil
			}
			node = n[i]
		default:
			return nil
		}
	}
	return node
}

// setPath stores value under segs and returns the new node. A nil value
// deletes, and parents left empty are removed.
func setPath(node any, segs []string, value any) any {
	if len(segs) == 0 {
		return value
	}
	m := asObject(node)
	child := setPath(m[segs[0]], segs[1:], value)
	if child == nil {
		delete(m, segs[0])
	} else {
		m[segs[0]] = child
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

func asObject(node any) map[string]any {
	switch n := node.(type) {
	case map[string]any:
		return n
	case []any:
		m := make(map[string]any, len(n))
		for i, v := range n {
			if v != nil {
				m[strconv.Itoa(i)] = v
			}
		}
		return m
	default:
		return map[string]any{}
	}
}

// prune drops null members and empty objects, which the database never stores.
func prune(v any) any {
	switch n := v.(type) {
	case map[string]any:
		for k, child := range n {
			if p := prune(child); p == nil {
				delete(n, k)
			} else {
				n[k] = p
			}
		}
		if len(n) == 0 {
			return nil
		}
		return n
	case []any:
		if len(n) == 0 {
			return nil
		}
		for i, child := range n {
			n[i] = prune(child)
		}
		return n
	default:
		return v
	}
}
