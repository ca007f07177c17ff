package btree

// order carries what every node needs to know about the tree it belongs to.
// It is shared by all nodes of one tree and never changes after construction.
type order[K any] struct {
	degree  int // minimum degree d
	compare func(a, b K) int
}

// non-root nodes hold between minKeys and maxKeys items.
func (o *order[K]) minKeys() int { return o.degree - 1 }
func (o *order[K]) maxKeys() int { return 2*o.degree - 1 }

/*
node owns an ordered run of keys and, unless it is a leaf, exactly len(keys)+1 children.
Every key in children[i] is smaller than keys[i] and larger than keys[i-1].
A child is referenced by its parent only, so moving a pointer between slices moves ownership.
*/
type node[K any] struct {
	keys     []K
	children []*node[K]
}

func (n *node[K]) isLeaf() bool {
	return len(n.children) == 0
}

func (n *node[K]) isMinimal(o *order[K]) bool {
	return len(n.keys) == o.minKeys()
}

func (n *node[K]) isOverflowing(o *order[K]) bool {
	return len(n.keys) == o.maxKeys()
}

func (n *node[K]) isUnderflowing(o *order[K]) bool {
	return len(n.keys) == o.minKeys()-1
}

/*
If key is found in node n, return its index i.
Else, return the index j where the key would have resided if it was present in the node.
Basically, lower bound of the key in the node -- this coincides with position of the child pointer !!
So, we can continue the traversal down the tree if the returned boolean value is false.
*/
func (n *node[K]) search(o *order[K], key K) (int, bool) {
	low, high := 0, len(n.keys)
	var mid int
	for low < high {
		mid = (low + high) / 2
		cmp := o.compare(key, n.keys[mid])
		switch {
		case cmp > 0:
			low = mid + 1
		case cmp < 0:
			high = mid
		default:
			return mid, true
		}
	}
	return low, false
}

func (n *node[K]) contains(o *order[K], key K) bool {
	pos, found := n.search(o, key)
	if found {
		return true
	}
	if n.isLeaf() {
		return false
	}
	return n.children[pos].contains(o, key)
}

// helper method to insert a key at an arbitrary position of a B-tree node
func (n *node[K]) insertKeyAt(pos int, key K) {
	var zero K
	n.keys = append(n.keys, zero)
	copy(n.keys[pos+1:], n.keys[pos:])
	n.keys[pos] = key
}

// helper method to insert child pointer at an arbitrary position of a B-tree node
func (n *node[K]) insertChildAt(pos int, child *node[K]) {
	n.children = append(n.children, nil)
	copy(n.children[pos+1:], n.children[pos:])
	n.children[pos] = child
}

func (n *node[K]) removeKeyAt(pos int) K {
	key := n.keys[pos]
	copy(n.keys[pos:], n.keys[pos+1:])
	var zero K
	n.keys[len(n.keys)-1] = zero
	n.keys = n.keys[:len(n.keys)-1]
	return key
}

func (n *node[K]) removeChildAt(pos int) *node[K] {
	child := n.children[pos]
	copy(n.children[pos:], n.children[pos+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	return child
}

/*
split cuts an overflowing node at index d-1.
The key at that index is handed back as the median, everything after it moves to a new right
sibling, so both halves end up with exactly d-1 keys.
Linking the median and the sibling into the parent is the caller's job (see Tree.Insert for the root).
*/
func (n *node[K]) split(o *order[K]) (K, *node[K]) {
	mid := o.minKeys()
	midKey := n.keys[mid]

	right := &node[K]{keys: make([]K, 0, o.maxKeys())}
	right.keys = append(right.keys, n.keys[mid+1:]...)

	if !n.isLeaf() {
		right.children = make([]*node[K], 0, o.maxKeys()+1)
		right.children = append(right.children, n.children[mid+1:]...)
		clear(n.children[mid+1:])
		n.children = n.children[:mid+1]
	}

	clear(n.keys[mid:])
	n.keys = n.keys[:mid]

	return midKey, right
}

/*
insert walks down to the leaf that should hold key and splits overflowing nodes on the way back up.
If this node had to split, right is the new sibling and median must be placed in the parent.
added is false if the key already existed, in which case nothing changed.
*/
func (n *node[K]) insert(o *order[K], key K) (median K, right *node[K], added bool) {
	pos, found := n.search(o, key)
	if found {
		return median, nil, false
	}

	if n.isLeaf() {
		n.insertKeyAt(pos, key)
		added = true
	} else {
		var childMedian K
		var childRight *node[K]
		childMedian, childRight, added = n.children[pos].insert(o, key)
		if childRight != nil {
			n.insertKeyAt(pos, childMedian)
			n.insertChildAt(pos+1, childRight)
		}
	}

	if !n.isOverflowing(o) {
		return median, nil, added
	}
	median, right = n.split(o)
	return median, right, added
}

/*
swap exchanges key with the smallest key of the subtree rooted at n.
Used by remove to move an internal key down into a leaf before deleting it.
*/
func (n *node[K]) swap(key *K) {
	for !n.isLeaf() {
		n = n.children[0]
	}
	*key, n.keys[0] = n.keys[0], *key
}

/*
remove deletes key from the subtree rooted at n and reports whether it was there.
Children that drop below d-1 keys are fixed before returning, so only the root can be left short.
*/
func (n *node[K]) remove(o *order[K], key K) bool {
	pos, found := n.search(o, key)

	if n.isLeaf() {
		if !found {
			return false
		}
		n.removeKeyAt(pos)
		return true
	}

	// The key separates two subtrees, so trade places with its in-order successor
	// and delete it from the leaf it lands in.
	if found {
		pos++
		n.children[pos].swap(&n.keys[pos-1])
	}

	deleted := n.children[pos].remove(o, key)

	if n.children[pos].isUnderflowing(o) {
		n.rebalance(o, pos)
	}
	return deleted
}

// rebalance fixes the underflowing child at pos: borrow left, borrow right, merge left, merge right.
func (n *node[K]) rebalance(o *order[K], pos int) {
	switch {
	case pos > 0 && !n.children[pos-1].isMinimal(o):
		n.rotateRight(pos - 1)
	case pos+1 < len(n.children) && !n.children[pos+1].isMinimal(o):
		n.rotateLeft(pos)
	case pos > 0:
		n.merge(pos - 1)
	default:
		n.merge(pos)
	}
}

/*
rotateRight moves the separator keys[i] down to the front of children[i+1]
and the last key of children[i] up in its place.
For internal nodes the last child of children[i] follows.
*/
func (n *node[K]) rotateRight(i int) {
	left, child := n.children[i], n.children[i+1]

	child.insertKeyAt(0, n.keys[i])
	n.keys[i] = left.removeKeyAt(len(left.keys) - 1)

	if !left.isLeaf() {
		child.insertChildAt(0, left.removeChildAt(len(left.children)-1))
	}
}

/*
rotateLeft is the mirror of rotateRight: the separator keys[i] is appended to children[i]
and the first key of children[i+1] replaces it.
*/
func (n *node[K]) rotateLeft(i int) {
	child, right := n.children[i], n.children[i+1]

	child.keys = append(child.keys, n.keys[i])
	n.keys[i] = right.removeKeyAt(0)

	if !right.isLeaf() {
		child.children = append(child.children, right.removeChildAt(0))
	}
}

// merge folds keys[i] and children[i+1] into children[i] and drops the emptied slot.
func (n *node[K]) merge(i int) {
	left, right := n.children[i], n.children[i+1]

	left.keys = append(left.keys, n.removeKeyAt(i))
	left.keys = append(left.keys, right.keys...)
	left.children = append(left.children, right.children...)

	n.removeChildAt(i + 1)
}
