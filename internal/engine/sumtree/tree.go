package sumtree

import (
	"fmt"
	"iter"
)

// Tree is a handle onto an immutable aggregation tree.
// The zero value is an empty tree ready to use.
type Tree[T Item[S], S Summary[S]] struct {
	root *node[T, S]
}

// New returns an empty tree.
func New[T Item[S], S Summary[S]]() Tree[T, S] {
	return Tree[T, S]{}
}

// FromItems builds a balanced tree from items in one bottom-up pass.
// The items slice is copied.
func FromItems[T Item[S], S Summary[S]](items []T) Tree[T, S] {
	if len(items) == 0 {
		return Tree[T, S]{}
	}

	nodes := make([]*node[T, S], 0, (len(items)+MaxItemsPerLeaf-1)/MaxItemsPerLeaf)
	for i := 0; i < len(items); i += MaxItemsPerLeaf {
		end := min(i+MaxItemsPerLeaf, len(items))
		leafItems := make([]T, end-i)
		copy(leafItems, items[i:end])
		nodes = append(nodes, newLeaf[T, S](leafItems))
	}

	for len(nodes) > 1 {
		parents := make([]*node[T, S], 0, (len(nodes)+MaxChildren-1)/MaxChildren)
		for i := 0; i < len(nodes); i += MaxChildren {
			end := min(i+MaxChildren, len(nodes))
			children := make([]*node[T, S], end-i)
			copy(children, nodes[i:end])
			parents = append(parents, newInternal(children))
		}
		nodes = parents
	}

	return Tree[T, S]{root: nodes[0]}
}

// Push appends item to the end of the sequence.
// Only the nodes on the right spine are copied; other handles sharing the
// previous root are unaffected.
func (t *Tree[T, S]) Push(item T) {
	if t.root == nil {
		t.root = newLeaf[T, S]([]T{item})
		return
	}
	replaced, overflow := t.root.pushRight(item)
	if overflow == nil {
		t.root = replaced
		return
	}
	t.root = newInternal([]*node[T, S]{replaced, overflow})
}

// Summary returns the combined summary of all items.
func (t Tree[T, S]) Summary() S {
	if t.root == nil {
		var zero S
		return zero
	}
	return t.root.summary
}

// IsEmpty reports whether the tree holds no items.
func (t Tree[T, S]) IsEmpty() bool {
	return t.root == nil
}

// Len returns the number of items. It walks the tree.
func (t Tree[T, S]) Len() int {
	if t.root == nil {
		return 0
	}
	return t.root.count()
}

// Height returns the number of levels in the tree, 0 when empty.
func (t Tree[T, S]) Height() int {
	if t.root == nil {
		return 0
	}
	return int(t.root.height) + 1
}

// Iter returns an iterator positioned before the first item.
func (t Tree[T, S]) Iter() *Iterator[T, S] {
	it := &Iterator[T, S]{}
	if t.root != nil {
		it.stack = append(it.stack, frame[T, S]{n: t.root})
	}
	return it
}

// All returns a sequence over every item in order. Each call to the
// returned function starts a fresh traversal.
func (t Tree[T, S]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if t.root == nil {
			return
		}
		walk(t.root, yield)
	}
}

func walk[T Item[S], S Summary[S]](n *node[T, S], yield func(T) bool) bool {
	if n.isLeaf() {
		for _, it := range n.items {
			if !yield(it) {
				return false
			}
		}
		return true
	}
	for _, c := range n.children {
		if !walk(c, yield) {
			return false
		}
	}
	return true
}

// Items returns a copy of the items in order.
func (t Tree[T, S]) Items() []T {
	out := make([]T, 0, t.Len())
	for it := range t.All() {
		out = append(out, it)
	}
	return out
}

// Validate re-derives every node summary and checks that all leaves share a
// depth and that fan-out limits hold. equal compares two summaries.
func (t Tree[T, S]) Validate(equal func(a, b S) bool) error {
	if t.root == nil {
		return nil
	}
	_, err := validate(t.root, equal)
	return err
}

func validate[T Item[S], S Summary[S]](n *node[T, S], equal func(a, b S) bool) (S, error) {
	var total S
	if n.isLeaf() {
		if len(n.items) == 0 || len(n.items) > MaxItemsPerLeaf {
			return total, fmt.Errorf("sumtree: leaf holds %d items", len(n.items))
		}
		for _, it := range n.items {
			total = total.Add(it.Summary())
		}
	} else {
		if len(n.children) == 0 || len(n.children) > MaxChildren {
			return total, fmt.Errorf("sumtree: node at height %d has %d children", n.height, len(n.children))
		}
		for _, c := range n.children {
			if c.height+1 != n.height {
				return total, fmt.Errorf("sumtree: child height %d under node height %d", c.height, n.height)
			}
			s, err := validate(c, equal)
			if err != nil {
				return total, err
			}
			total = total.Add(s)
		}
	}
	if !equal(total, n.summary) {
		return total, fmt.Errorf("sumtree: cached summary %v, derived %v", n.summary, total)
	}
	return total, nil
}
