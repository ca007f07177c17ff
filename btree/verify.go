package btree

import (
	"fmt"
	"strings"
)

// InvariantError describes the first structural rule Verify found broken.
type InvariantError struct {
	Path   []int // child indexes from the root down to the offending node
	Reason string
}

func (e *InvariantError) Error() string {
	if len(e.Path) == 0 {
		return "btree: root: " + e.Reason
	}
	path := make([]string, len(e.Path))
	for i, p := range e.Path {
		path[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf("btree: node %s: %s", strings.Join(path, "/"), e.Reason)
}

/*
Verify walks the whole tree and checks the B-tree invariants:
  - keys inside a node are strictly increasing
  - every key lies strictly between the separators that lead to its node
  - non-root nodes hold between d-1 and 2d-2 keys, the root at most 2d-2 (2d-1 means a split was missed)
  - internal nodes have exactly one child more than keys
  - all leaves sit at the same depth
  - the cached key count matches the number of keys stored

It returns nil for a well-formed tree and an *InvariantError otherwise.
*/
func (t *Tree[K]) Verify() error {
	v := &verifier[K]{order: &t.order, leafDepth: -1}
	if err := v.walk(t.root, nil, nil, nil); err != nil {
		return err
	}
	if v.count != t.size {
		return &InvariantError{Reason: fmt.Sprintf("tree reports %d keys, found %d", t.size, v.count)}
	}
	return nil
}

type verifier[K any] struct {
	order     *order[K]
	leafDepth int
	count     int
}

// walk checks n, whose keys must lie strictly within (lo, hi); nil bounds are open.
func (v *verifier[K]) walk(n *node[K], path []int, lo, hi *K) error {
	fail := func(format string, args ...any) error {
		return &InvariantError{Path: append([]int(nil), path...), Reason: fmt.Sprintf(format, args...)}
	}
	o := v.order

	if len(n.keys) >= o.maxKeys() {
		return fail("holds %d keys, should have split at %d", len(n.keys), o.maxKeys())
	}
	if len(path) > 0 && len(n.keys) < o.minKeys() {
		return fail("holds %d keys, minimum is %d", len(n.keys), o.minKeys())
	}
	for i := range n.keys {
		if i > 0 && o.compare(n.keys[i-1], n.keys[i]) >= 0 {
			return fail("key %d (%v) is not greater than key %d (%v)", i, n.keys[i], i-1, n.keys[i-1])
		}
		if lo != nil && o.compare(n.keys[i], *lo) <= 0 {
			return fail("key %v is not greater than separator %v", n.keys[i], *lo)
		}
		if hi != nil && o.compare(n.keys[i], *hi) >= 0 {
			return fail("key %v is not less than separator %v", n.keys[i], *hi)
		}
	}
	v.count += len(n.keys)

	if n.isLeaf() {
		if v.leafDepth == -1 {
			v.leafDepth = len(path)
		} else if v.leafDepth != len(path) {
			return fail("leaf at depth %d, expected %d", len(path), v.leafDepth)
		}
		return nil
	}

	if len(n.children) != len(n.keys)+1 {
		return fail("has %d keys but %d children", len(n.keys), len(n.children))
	}
	for i, child := range n.children {
		if child == nil {
			return fail("child %d is nil", i)
		}
		childLo, childHi := lo, hi
		if i > 0 {
			childLo = &n.keys[i-1]
		}
		if i < len(n.keys) {
			childHi = &n.keys[i]
		}
		if err := v.walk(child, append(path, i), childLo, childHi); err != nil {
			return err
		}
	}
	return nil
}
