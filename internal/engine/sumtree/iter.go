package sumtree

type frame[T Item[S], S Summary[S]] struct {
	n   *node[T, S]
	idx int
}

// Iterator walks the items of a Tree in order. It is lazy and finite, and
// tracks the summary of everything before the current item.
//
//	it := t.Iter()
//	for it.Next() {
//		use(it.Item(), it.Before())
//	}
type Iterator[T Item[S], S Summary[S]] struct {
	stack  []frame[T, S]
	item   T
	before S
	after  S
}

// Next advances to the next item. It returns false when exhausted.
func (it *Iterator[T, S]) Next() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.n.isLeaf() {
			if top.idx < len(top.n.items) {
				it.item = top.n.items[top.idx]
				top.idx++
				it.before = it.after
				it.after = it.after.Add(it.item.Summary())
				return true
			}
		} else if top.idx < len(top.n.children) {
			child := top.n.children[top.idx]
			top.idx++
			it.stack = append(it.stack, frame[T, S]{n: child})
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	return false
}

// Item returns the current item.
func (it *Iterator[T, S]) Item() T {
	return it.item
}

// Before returns the summary of all items preceding the current one.
func (it *Iterator[T, S]) Before() S {
	return it.before
}

// After returns the summary of all items up to and including the current one.
func (it *Iterator[T, S]) After() S {
	return it.after
}

// Seek returns an iterator whose next item is the first one for which
// stop(acc, summary) is true, where acc is the summary of all preceding
// items. stop must be monotone: once true for a prefix it stays true for
// every longer prefix. Subtrees are skipped whole using their cached
// summaries, so the cost is proportional to the tree height.
//
// If no item satisfies stop, the returned iterator is exhausted.
func (t Tree[T, S]) Seek(stop func(acc, next S) bool) *Iterator[T, S] {
	it := &Iterator[T, S]{}
	n := t.root
	var acc S
	for n != nil {
		if n.isLeaf() {
			i := 0
			for ; i < len(n.items); i++ {
				s := n.items[i].Summary()
				if stop(acc, s) {
					break
				}
				acc = acc.Add(s)
			}
			it.stack = append(it.stack, frame[T, S]{n: n, idx: i})
			break
		}

		var next *node[T, S]
		for i, c := range n.children {
			if stop(acc, c.summary) {
				it.stack = append(it.stack, frame[T, S]{n: n, idx: i + 1})
				next = c
				break
			}
			acc = acc.Add(c.summary)
		}
		if next == nil {
			it.stack = it.stack[:0]
			break
		}
		n = next
	}
	it.after = acc
	return it
}

// Find returns the first item selected by stop (see Seek) together with
// the summary of the items before it.
func (t Tree[T, S]) Find(stop func(acc, next S) bool) (T, S, bool) {
	it := t.Seek(stop)
	if !it.Next() {
		var zero T
		var acc S
		return zero, acc, false
	}
	return it.Item(), it.Before(), true
}
