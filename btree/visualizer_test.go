package btree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisualize(t *testing.T) {
	tree := buildTree(t, 2, 10, 20, 5)
	out := tree.String()

	assert.True(t, strings.HasPrefix(out, "[10]\n"), out)
	assert.Contains(t, out, "── [5]")
	assert.Contains(t, out, "── [20]")

	deep := buildTree(t, 2, 10, 20, 5, 6, 12, 30, 7, 17)
	lines := strings.Split(strings.TrimSpace(deep.String()), "\n")
	labels := []string{"[10]", "[6]", "[5]", "[7]", "[20]", "[12 17]", "[30]"}
	if assert.Len(t, lines, len(labels)) {
		for i, l := range labels {
			assert.True(t, strings.HasSuffix(lines[i], l), "line %d: %q", i, lines[i])
		}
	}
}

func TestVisualizeEmpty(t *testing.T) {
	v := &Visualizer[string]{Tree: MustNew[string](3)}
	assert.Equal(t, "[]", strings.TrimSpace(v.Visualize()))
}
