package sumtree

// Summary is an associative aggregate over a sequence of items.
// The zero value of S must be the identity of Add.
type Summary[S any] interface {
	Add(other S) S
}

// Item is an element stored in a Tree.
type Item[S any] interface {
	Summary() S
}

// Fan-out limits. Leaves hold at most MaxItemsPerLeaf items and internal
// nodes at most MaxChildren children.
const (
	MaxItemsPerLeaf = 8
	MaxChildren     = 8
)
