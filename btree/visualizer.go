package btree

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// Visualizer renders a tree one node per line, children indented below their parent.
type Visualizer[K any] struct {
	Tree *Tree[K]
}

// Visualize returns the tree drawn with one line per node, keys in brackets.
func (v *Visualizer[K]) Visualize() string {
	root := v.Tree.root
	out := treeprint.NewWithRoot(label(root))
	for _, child := range root.children {
		addNode(out, child)
	}
	return out.String()
}

func addNode[K any](parent treeprint.Tree, n *node[K]) {
	if n.isLeaf() {
		parent.AddNode(label(n))
		return
	}
	branch := parent.AddBranch(label(n))
	for _, child := range n.children {
		addNode(branch, child)
	}
}

// label formats the keys of a single node as "[k1 k2 ...]".
func label[K any](n *node[K]) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, k := range n.keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, k)
	}
	sb.WriteByte(']')
	return sb.String()
}
