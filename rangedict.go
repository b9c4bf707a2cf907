package rangedict

import (
	"errors"
	"fmt"
	"strings"

	"github.com/akmistry/rangedict/internal/ordstore"
)

var ErrEmptyRange = errors.New("rangedict: begin must be less than end")

type Comparator[K any] func(a, b K) int

type Equator[V any] func(a, b V) bool

type Dict[K any, V any] struct {
	store *ordstore.Store[K, *entry[K, V]]
	cmp   Comparator[K]
	eq    Equator[V]

	boundsBegin, boundsEnd K
	hasBounds              bool

	capHint int
}

func New[K any, V any](cmp Comparator[K], eq Equator[V], capacity ...int) *Dict[K, V] {
	if cmp == nil {
		panic("rangedict: nil comparator")
	}
	if eq == nil {
		panic("rangedict: nil equator")
	}
	hint := 0
	if len(capacity) > 0 {
		hint = capacity[0]
	}
	return &Dict[K, V]{
		store:   ordstore.New[K, *entry[K, V]](ordstore.CmpFunc[K](cmp)),
		cmp:     cmp,
		eq:      eq,
		capHint: hint,
	}
}

func (d *Dict[K, V]) Len() int { return d.store.Len() }

func (d *Dict[K, V]) Capacity() int {
	if d.capHint > d.store.Len() {
		return d.capHint
	}
	return d.store.Len()
}

func (d *Dict[K, V]) Clear() {
	d.store.Clear()
	var zero K
	d.boundsBegin, d.boundsEnd = zero, zero
	d.hasBounds = false
}

func (d *Dict[K, V]) Bounds() (begin, end K, ok bool) {
	return d.boundsBegin, d.boundsEnd, d.hasBounds
}

func (d *Dict[K, V]) Iterate(fn func(Entry[K, V]) bool) {
	d.store.Ascend(func(n *ordstore.Node[K, *entry[K, V]]) bool {
		return fn(n.Value().view())
	})
}

func (d *Dict[K, V]) Mark(begin, end K, value V) error {
	if d.cmp(begin, end) >= 0 {
		return ErrEmptyRange
	}
	cand := &entry[K, V]{begin: begin, end: end, value: value}

	switch d.store.Len() {
	case 0:
		d.store.Insert(cand.begin, cand)
	case 1:
		d.markSingleton(cand)
	default:
		d.markGeneral(cand)
	}

	d.recomputeBounds()
	return nil
}

func (d *Dict[K, V]) markSingleton(cand *entry[K, V]) {
	var only *ordstore.Node[K, *entry[K, V]]
	d.store.Ascend(func(n *ordstore.Node[K, *entry[K, V]]) bool {
		only = n
		return false
	})

	cursor := only.Value()
	out := resolve[K, V](d.cmp, d.eq, cursor, cand, false)
	if out.cursorRekey {
		d.store.Rekey(only, cursor.begin)
	}

	if out.absorbed {
		if out.split != nil {
			d.store.Insert(cand.begin, cand)
			d.store.Insert(out.split.begin, out.split)
		}
		return
	}
	d.store.Insert(cand.begin, cand)
}

// markGeneral handles two or more stored entries: bounds fast paths first
// (candidate entirely beyond, entirely before, or covering everything),
// then a left merge against find_previous, then a forward propagation loop
// against find_next that keeps absorbing entries until one stops it, and
// finally a merge of the placed entry into an equal-valued predecessor that
// ends exactly where it begins.
//
// Until the candidate has been merged into the store, the loop resolves
// each next entry against the still-unplaced candidate with reversed=false,
// not true: once the candidate is absorbed into a cursor and propagation
// continues forward, that cursor is now the dominant, already-merged side
// and reversed=true is correct for it, but before that point the candidate
// is the thing being merged in, not the thing being merged against.
func (d *Dict[K, V]) markGeneral(cand *entry[K, V]) {
	if d.hasBounds {
		switch {
		case d.cmp(cand.begin, d.boundsEnd) > 0:
			d.store.Insert(cand.begin, cand)
			return
		case d.cmp(cand.end, d.boundsBegin) < 0:
			d.store.Insert(cand.begin, cand)
			return
		case d.cmp(cand.begin, d.boundsBegin) <= 0 && d.cmp(cand.end, d.boundsEnd) >= 0:
			d.store.Clear()
			d.store.Insert(cand.begin, cand)
			return
		}
	}

	var curNode *ordstore.Node[K, *entry[K, V]]
	cur := cand
	inserted := false

	if prevNode := d.store.FindPrevious(cand.begin, true); prevNode != nil {
		prevEntry := prevNode.Value()
		out := resolve[K, V](d.cmp, d.eq, prevEntry, cand, false)
		if out.cursorRekey {
			d.store.Rekey(prevNode, prevEntry.begin)
		}
		if out.absorbed {
			if out.split != nil {
				curNode = d.store.Insert(cand.begin, cand)
				d.store.Insert(out.split.begin, out.split)
			} else {
				curNode = prevNode
			}
			cur = curNode.Value()
			inserted = true
		}
	}

	for {
		nextNode := d.store.FindNext(cur.begin, false)
		if nextNode == nil {
			break
		}
		nextEntry := nextNode.Value()

		var out outcome[K, V]
		if inserted {
			out = resolve[K, V](d.cmp, d.eq, cur, nextEntry, true)
			if out.cursorRekey {
				d.store.Rekey(curNode, cur.begin)
			}
			if out.candidateRekey {
				d.store.Rekey(nextNode, nextEntry.begin)
			}
			if !out.absorbed {
				break
			}
			d.store.RemoveAt(nextNode)
		} else {
			out = resolve[K, V](d.cmp, d.eq, nextEntry, cur, false)
			if out.cursorRekey {
				d.store.Rekey(nextNode, nextEntry.begin)
			}
			if !out.absorbed {
				break
			}
			curNode, cur, inserted = nextNode, nextEntry, true
		}

		if out.stop {
			break
		}
	}

	if !inserted {
		curNode, cur = d.store.Insert(cand.begin, cand), cand
	}

	if prevNode := d.store.FindPrevious(cur.begin, false); prevNode != nil {
		prevEntry := prevNode.Value()
		if d.cmp(prevEntry.end, cur.begin) == 0 && d.eq(prevEntry.value, cur.value) {
			prevEntry.end = cur.end
			d.store.RemoveAt(curNode)
		}
	}
}

// recomputeBounds derives bounds from the store's leftmost and rightmost
// entries. Because stored entries are always non-overlapping and sorted by
// begin, the rightmost entry (greatest begin) also always holds the
// greatest end: every earlier entry's end is <= that entry's own begin,
// which is < its own end. This makes bounds a pure function of the store's
// two extremes rather than something that needs incremental, per-mutation
// bookkeeping.
func (d *Dict[K, V]) recomputeBounds() {
	least := d.store.Min()
	if least == nil {
		var zero K
		d.boundsBegin, d.boundsEnd = zero, zero
		d.hasBounds = false
		return
	}
	greatest := d.store.Max()
	d.boundsBegin = least.Value().begin
	d.boundsEnd = greatest.Value().end
	d.hasBounds = true
}

func (d *Dict[K, V]) Check() error {
	var prev *entry[K, V]
	count := 0
	var violation error
	d.store.Ascend(func(n *ordstore.Node[K, *entry[K, V]]) bool {
		e := n.Value()
		if d.cmp(e.begin, e.end) >= 0 {
			violation = fmt.Errorf("rangedict: [%v,%v) not well-formed", e.begin, e.end)
			return false
		}
		if prev != nil {
			switch {
			case d.cmp(prev.end, e.begin) > 0:
				violation = fmt.Errorf("rangedict: [%v,%v) overlaps [%v,%v)", prev.begin, prev.end, e.begin, e.end)
				return false
			case d.cmp(prev.end, e.begin) == 0 && d.eq(prev.value, e.value):
				violation = fmt.Errorf("rangedict: [%v,%v) and [%v,%v) touch with equal values, should be coalesced", prev.begin, prev.end, e.begin, e.end)
				return false
			}
		}
		prev = e
		count++
		return true
	})
	if violation != nil {
		return violation
	}

	begin, end, ok := d.Bounds()
	if count == 0 {
		if ok {
			return errors.New("rangedict: bounds set on empty store")
		}
		return nil
	}
	if !ok {
		return errors.New("rangedict: bounds unset on non-empty store")
	}

	least, greatest := d.store.Min(), d.store.Max()
	if d.cmp(begin, least.Value().begin) != 0 || d.cmp(end, greatest.Value().end) != 0 {
		return fmt.Errorf("rangedict: bounds (%v,%v) != actual (%v,%v)",
			begin, end, least.Value().begin, greatest.Value().end)
	}
	return nil
}

func (d *Dict[K, V]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	var prevEnd K
	d.store.Ascend(func(n *ordstore.Node[K, *entry[K, V]]) bool {
		e := n.Value()
		if !first {
			if d.cmp(prevEnd, e.begin) == 0 {
				sb.WriteByte('|')
			} else {
				sb.WriteString(") [")
			}
		}
		fmt.Fprintf(&sb, "%v..(%v)..%v", e.begin, e.value, e.end)
		prevEnd = e.end
		first = false
		return true
	})
	sb.WriteByte(')')
	return sb.String()
}
