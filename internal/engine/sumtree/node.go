package sumtree

// node is a leaf (height 0, items) or an internal node (children).
// All leaves sit at the same depth.
type node[T Item[S], S Summary[S]] struct {
	height   uint8
	summary  S
	items    []T
	children []*node[T, S]
}

func newLeaf[T Item[S], S Summary[S]](items []T) *node[T, S] {
	var total S
	for _, it := range items {
		total = total.Add(it.Summary())
	}
	return &node[T, S]{summary: total, items: items}
}

func newInternal[T Item[S], S Summary[S]](children []*node[T, S]) *node[T, S] {
	var total S
	for _, c := range children {
		total = total.Add(c.summary)
	}
	return &node[T, S]{
		height:   children[0].height + 1,
		summary:  total,
		children: children,
	}
}

func (n *node[T, S]) isLeaf() bool {
	return n.height == 0
}

// count returns the number of items in the subtree.
func (n *node[T, S]) count() int {
	if n.isLeaf() {
		return len(n.items)
	}
	total := 0
	for _, c := range n.children {
		total += c.count()
	}
	return total
}

// pushRight appends item to the rightmost leaf of n. It returns the
// replacement for n and, when n overflowed, a new right sibling of the
// same height. n itself is never modified.
func (n *node[T, S]) pushRight(item T) (*node[T, S], *node[T, S]) {
	if n.isLeaf() {
		if len(n.items) < MaxItemsPerLeaf {
			items := make([]T, len(n.items)+1)
			copy(items, n.items)
			items[len(n.items)] = item
			return newLeaf[T, S](items), nil
		}
		return n, newLeaf[T, S]([]T{item})
	}

	last := len(n.children) - 1
	replaced, overflow := n.children[last].pushRight(item)

	children := make([]*node[T, S], len(n.children), len(n.children)+1)
	copy(children, n.children)
	children[last] = replaced

	if overflow == nil {
		return newInternal(children), nil
	}
	if len(children) < MaxChildren {
		return newInternal(append(children, overflow)), nil
	}
	return newInternal(children), newInternal([]*node[T, S]{overflow})
}
