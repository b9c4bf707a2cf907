package oracle

import "github.com/bits-and-blooms/bitset"

// Model is a brute-force map from offsets in [0, size) to a value, used as
// a ground truth to check rangedict.Dict against. Occupancy is tracked in
// a bitset rather than a sentinel value, so a legitimate zero value is
// distinguishable from "never marked".
type Model[V any] struct {
	values []V
	set    *bitset.BitSet
}

func New[V any](size int) *Model[V] {
	return &Model[V]{
		values: make([]V, size),
		set:    bitset.New(uint(size)),
	}
}

// Mark sets every offset in [begin, end) to value, last writer wins.
func (m *Model[V]) Mark(begin, end int, value V) {
	for i := begin; i < end; i++ {
		m.values[i] = value
		m.set.Set(uint(i))
	}
}

func (m *Model[V]) At(i int) (V, bool) {
	return m.values[i], m.set.Test(uint(i))
}

func (m *Model[V]) Len() int { return len(m.values) }

// end is exclusive, matching Dict.Bounds.
func (m *Model[V]) Bounds() (begin, end int, ok bool) {
	first, any := m.set.NextSet(0)
	if !any {
		return 0, 0, false
	}
	last := first
	for i, found := m.set.NextSet(first + 1); found; i, found = m.set.NextSet(i + 1) {
		last = i
	}
	return int(first), int(last) + 1, true
}

// Runs coalesces the model into maximal [begin, end) spans of constant
// value, skipping unmarked offsets; a correct Dict's Iterate output should
// match exactly.
func (m *Model[V]) Runs(eq func(a, b V) bool) []Run[V] {
	var runs []Run[V]
	inRun := false
	var cur Run[V]
	for i := 0; i < len(m.values); i++ {
		v, ok := m.At(i)
		if !ok {
			if inRun {
				runs = append(runs, cur)
				inRun = false
			}
			continue
		}
		switch {
		case !inRun:
			cur = Run[V]{Begin: i, End: i + 1, Value: v}
			inRun = true
		case eq(cur.Value, v):
			cur.End = i + 1
		default:
			runs = append(runs, cur)
			cur = Run[V]{Begin: i, End: i + 1, Value: v}
		}
	}
	if inRun {
		runs = append(runs, cur)
	}
	return runs
}

type Run[V any] struct {
	Begin, End int
	Value      V
}
