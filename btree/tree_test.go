package btree

import (
	"bytes"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, degree := range []int{-1, 0, 1} {
		tree, err := New[int](degree)
		assert.ErrorIs(t, err, ErrInvalidDegree)
		assert.Nil(t, tree)
	}

	tree, err := New[int](2)
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Degree())
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 1, tree.Height())
	assert.NoError(t, tree.Verify())

	_, err = NewFunc[[]byte](3, nil)
	assert.ErrorIs(t, err, ErrNilCompare)

	assert.Panics(t, func() { MustNew[string](1) })
	assert.NotPanics(t, func() { MustNew[string](4) })
}

func TestScenarioDegreeTwo(t *testing.T) {
	tree := MustNew[int](2)
	for _, k := range []int{10, 20, 5, 6, 12, 30, 7, 17} {
		tree.Insert(k)
	}

	assert.True(t, tree.Search(6))
	assert.False(t, tree.Search(100))

	assert.True(t, tree.Remove(6))
	assert.False(t, tree.Search(6))
	assert.False(t, tree.Remove(6))

	assert.Equal(t, 7, tree.Len())
	assert.NoError(t, tree.Verify())
}

func TestEmptyTree(t *testing.T) {
	tree := MustNew[int](2)
	assert.False(t, tree.Remove(5))
	assert.False(t, tree.Search(5))
	assert.Equal(t, "[]", dump(tree.root))
}

func TestInsertIdempotent(t *testing.T) {
	once := buildTree(t, 3, 4, 8, 15, 16, 23, 42)
	twice := buildTree(t, 3, 4, 8, 15, 16, 23, 42, 4, 8, 15, 16, 23, 42)

	assert.Equal(t, dump(once.root), dump(twice.root))
	assert.Equal(t, once.Len(), twice.Len())
}

func TestRemoveAbsentLeavesTreeUnchanged(t *testing.T) {
	tree := buildTree(t, 2, 1, 3, 5, 7, 9, 11, 13, 15)
	before := dump(tree.root)

	for _, k := range []int{0, 2, 8, 16} {
		assert.False(t, tree.Remove(k))
	}
	assert.Equal(t, before, dump(tree.root))
	assert.Equal(t, 8, tree.Len())
}

func TestRemoveUntilEmpty(t *testing.T) {
	tree := buildTree(t, 2, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	for k := 10; k >= 1; k-- {
		require.True(t, tree.Remove(k))
		require.NoError(t, tree.Verify(), "after removing %d", k)
	}
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 1, tree.Height())
	assert.Equal(t, "[]", dump(tree.root))

	// the emptied tree is still usable
	tree.Insert(42)
	assert.True(t, tree.Search(42))
}

func TestCustomCompare(t *testing.T) {
	tree, err := NewFunc[[]byte](2, bytes.Compare)
	require.NoError(t, err)

	for _, w := range []string{"pear", "apple", "fig", "kiwi", "banana", "cherry"} {
		tree.Insert([]byte(w))
	}
	assert.True(t, tree.Search([]byte("kiwi")))
	assert.False(t, tree.Search([]byte("grape")))
	assert.True(t, tree.Remove([]byte("apple")))
	assert.False(t, tree.Search([]byte("apple")))
	assert.NoError(t, tree.Verify())

	// reverse order is just another total order
	desc, err := NewFunc[int](2, func(a, b int) int { return b - a })
	require.NoError(t, err)
	for _, k := range []int{1, 2, 3} {
		desc.Insert(k)
	}
	assert.Equal(t, "{[3] 2 [1]}", dump(desc.root))
	assert.NoError(t, desc.Verify())
}

// heightBound is the worst case height of a B-tree with n keys: ceil(log_d((n+1)/2)) + 1.
func heightBound(n, d int) int {
	return int(math.Ceil(math.Log(float64(n+1)/2)/math.Log(float64(d)))) + 1
}

func TestRandomOperations(t *testing.T) {
	for _, degree := range []int{2, 3, 4, 7} {
		rng := rand.New(rand.NewPCG(uint64(degree), 42))
		tree := MustNew[int](degree)
		ref := make(map[int]bool)

		for i := 0; i < 4000; i++ {
			k := rng.IntN(500)
			if rng.IntN(3) == 0 {
				assert.Equal(t, ref[k], tree.Remove(k), "degree %d: remove %d", degree, k)
				delete(ref, k)
			} else {
				tree.Insert(k)
				ref[k] = true
			}

			if i%50 == 0 {
				require.NoError(t, tree.Verify(), "degree %d, step %d", degree, i)
			}
		}
		require.NoError(t, tree.Verify())
		assert.Equal(t, len(ref), tree.Len())

		for k := -1; k <= 500; k++ {
			assert.Equal(t, ref[k], tree.Search(k), "degree %d: search %d", degree, k)
		}
		if n := tree.Len(); n > 0 {
			assert.LessOrEqual(t, tree.Height(), heightBound(n, degree))
		}
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for _, degree := range []int{2, 3, 5} {
		keys := rng.Perm(1000)
		tree := MustNew[int](degree)
		for _, k := range keys {
			tree.Insert(k)
		}
		require.NoError(t, tree.Verify())
		require.Equal(t, 1000, tree.Len())
		assert.LessOrEqual(t, tree.Height(), heightBound(1000, degree))

		rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		for i, k := range keys {
			require.True(t, tree.Remove(k), "degree %d: remove %d", degree, k)
			if i%100 == 0 {
				require.NoError(t, tree.Verify())
			}
		}

		assert.Equal(t, 0, tree.Len())
		assert.Equal(t, 1, tree.Height())
		assert.Equal(t, "[]", dump(tree.root))
		for _, k := range keys[:50] {
			assert.False(t, tree.Search(k))
		}
	}
}

func TestDeterministicShape(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	ops := make([]int, 2000)
	for i := range ops {
		ops[i] = rng.IntN(300) - 150
	}

	run := func() string {
		tree := MustNew[int](3)
		for _, k := range ops {
			if k < 0 {
				tree.Remove(-k)
			} else {
				tree.Insert(k)
			}
		}
		return dump(tree.root)
	}
	assert.Equal(t, run(), run())
}

func BenchmarkInsert(b *testing.B) {
	keys := rand.New(rand.NewPCG(1, 1)).Perm(b.N)
	tree := MustNew[int](16)
	b.ResetTimer()
	for _, k := range keys {
		tree.Insert(k)
	}
}

func BenchmarkSearch(b *testing.B) {
	tree := MustNew[int](16)
	for i := 0; i < 100000; i++ {
		tree.Insert(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Search(i % 100000)
	}
}

func BenchmarkRemove(b *testing.B) {
	keys := rand.New(rand.NewPCG(2, 2)).Perm(b.N)
	tree := MustNew[int](16)
	for _, k := range keys {
		tree.Insert(k)
	}
	b.ResetTimer()
	for _, k := range keys {
		tree.Remove(k)
	}
}
