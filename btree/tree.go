package btree

import (
	"cmp"
	"errors"
	"fmt"
)

var (
	// ErrInvalidDegree is returned when a tree is requested with a minimum degree below 2.
	ErrInvalidDegree = errors.New("btree: minimum degree must be at least 2")
	// ErrNilCompare is returned by NewFunc when no comparison function is given.
	ErrNilCompare = errors.New("btree: nil compare function")
)

/*
Tree is an ordered set of unique keys stored in a B-tree of minimum degree d.
Every node but the root holds between d-1 and 2d-1 keys.
A Tree only keeps a pointer to its root node; the zero value is not usable, create one with New or NewFunc.
It is not safe for concurrent use.
*/
type Tree[K any] struct {
	order order[K]
	root  *node[K]
	size  int
}

// New creates an empty tree for keys with a natural ordering.
func New[K cmp.Ordered](degree int) (*Tree[K], error) {
	return NewFunc[K](degree, cmp.Compare[K])
}

// MustNew is like New but panics on an invalid degree.
func MustNew[K cmp.Ordered](degree int) *Tree[K] {
	t, err := New[K](degree)
	if err != nil {
		panic(err)
	}
	return t
}

/*
NewFunc creates an empty tree ordered by compare, which must return a negative number when a < b,
zero when a == b and a positive number when a > b (bytes.Compare, strings.Compare and cmp.Compare all qualify).
*/
func NewFunc[K any](degree int, compare func(a, b K) int) (*Tree[K], error) {
	if degree < 2 {
		return nil, fmt.Errorf("degree %d: %w", degree, ErrInvalidDegree)
	}
	if compare == nil {
		return nil, ErrNilCompare
	}
	return &Tree[K]{
		order: order[K]{degree: degree, compare: compare},
		root:  &node[K]{},
	}, nil
}

// Search reports whether key is in the tree.
func (t *Tree[K]) Search(key K) bool {
	return t.root.contains(&t.order, key)
}

/*
Insert adds key to the tree. Inserting a key that is already present is a no-op.
When the root splits, a new root is created holding the median; the existing root becomes its left
child and the split-off node its right child. That is the only way the tree grows taller.
*/
func (t *Tree[K]) Insert(key K) {
	median, right, added := t.root.insert(&t.order, key)
	if added {
		t.size++
	}
	if right == nil {
		return
	}

	newRoot := &node[K]{
		keys:     make([]K, 0, t.order.maxKeys()),
		children: make([]*node[K], 0, t.order.maxKeys()+1),
	}
	newRoot.insertKeyAt(0, median)
	newRoot.insertChildAt(0, t.root)
	newRoot.insertChildAt(1, right)
	t.root = newRoot
}

/*
Remove deletes key and reports whether it was present.
If a merge leaves the root without keys, its only child becomes the new root.
*/
func (t *Tree[K]) Remove(key K) bool {
	deleted := t.root.remove(&t.order, key)
	if deleted {
		t.size--
	}

	if len(t.root.keys) == 0 && len(t.root.children) == 1 {
		t.root = t.root.children[0]
	}
	return deleted
}

// Degree returns the minimum degree the tree was created with.
func (t *Tree[K]) Degree() int {
	return t.order.degree
}

// Len returns the number of keys in the tree.
func (t *Tree[K]) Len() int {
	return t.size
}

// Height returns the number of levels, counting the root. An empty tree has height 1.
func (t *Tree[K]) Height() int {
	h := 1
	for n := t.root; !n.isLeaf(); n = n.children[0] {
		h++
	}
	return h
}

func (t *Tree[K]) String() string {
	v := &Visualizer[K]{Tree: t}
	return v.Visualize()
}
