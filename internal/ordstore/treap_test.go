package ordstore

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func intCmp(a, b int) int { return a - b }

func TestInsertAscend(t *testing.T) {
	s := New[int, string](intCmp)
	keys := []int{5, 1, 9, 3, 7, 2, 8, 4, 6, 0}
	for _, k := range keys {
		s.Insert(k, "")
	}
	require.Equal(t, len(keys), s.Len())

	var got []int
	s.Ascend(func(n *Node[int, string]) bool {
		got = append(got, n.Key())
		return true
	})
	sort.Ints(keys)
	require.Equal(t, keys, got)
}

func TestFindPreviousNext(t *testing.T) {
	s := New[int, string](intCmp)
	for _, k := range []int{10, 20, 30, 40} {
		s.Insert(k, "")
	}

	require.Nil(t, s.FindPrevious(5, true))
	require.Nil(t, s.FindPrevious(5, false))

	n := s.FindPrevious(20, true)
	require.NotNil(t, n)
	require.Equal(t, 20, n.Key())

	n = s.FindPrevious(20, false)
	require.NotNil(t, n)
	require.Equal(t, 10, n.Key())

	n = s.FindPrevious(25, true)
	require.Equal(t, 20, n.Key())

	n = s.FindNext(20, true)
	require.Equal(t, 20, n.Key())

	n = s.FindNext(20, false)
	require.Equal(t, 30, n.Key())

	n = s.FindNext(45, false)
	require.Nil(t, n)

	n = s.FindNext(25, false)
	require.Equal(t, 30, n.Key())
}

func TestRemoveAt(t *testing.T) {
	s := New[int, string](intCmp)
	nodes := map[int]*Node[int, string]{}
	for _, k := range []int{5, 1, 9, 3, 7} {
		nodes[k] = s.Insert(k, "")
	}

	s.RemoveAt(nodes[9])
	require.Equal(t, 4, s.Len())

	var got []int
	s.Ascend(func(n *Node[int, string]) bool {
		got = append(got, n.Key())
		return true
	})
	require.Equal(t, []int{1, 3, 5, 7}, got)
}

func TestRekey(t *testing.T) {
	s := New[int, string](intCmp)
	n := s.Insert(10, "a")
	s.Insert(20, "b")
	s.Insert(30, "c")

	s.Rekey(n, 25)
	require.Equal(t, 25, n.Key())
	require.Equal(t, "a", n.Value())
	require.Equal(t, 3, s.Len())

	var got []int
	s.Ascend(func(n *Node[int, string]) bool {
		got = append(got, n.Key())
		return true
	})
	require.Equal(t, []int{20, 25, 30}, got)

	// n is still a valid address after the rekey: removing it must work.
	s.RemoveAt(n)
	require.Equal(t, 2, s.Len())
}

func TestStressAgainstSortedReference(t *testing.T) {
	s := New[int, int](intCmp)
	present := map[int]*Node[int, int]{}

	const n = 2000
	for i := 0; i < n; i++ {
		k := rand.IntN(10000)
		if node, ok := present[k]; ok {
			s.RemoveAt(node)
			delete(present, k)
			continue
		}
		present[k] = s.Insert(k, k)
	}

	var want []int
	for k := range present {
		want = append(want, k)
	}
	sort.Ints(want)

	var got []int
	s.Ascend(func(nd *Node[int, int]) bool {
		got = append(got, nd.Key())
		return true
	})
	require.Equal(t, want, got)
	require.Equal(t, len(want), s.Len())

	for _, k := range want {
		prevWant := -1
		for _, w := range want {
			if w < k {
				prevWant = w
			}
		}
		prev := s.FindPrevious(k, false)
		if prevWant == -1 {
			require.Nil(t, prev)
		} else {
			require.Equal(t, prevWant, prev.Key())
		}
	}
}
