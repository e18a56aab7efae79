// Package sumtree provides a persistent, balanced aggregation tree.
//
// Every node caches the combined Summary of the items below it, so the
// aggregate of the whole sequence is available in O(1) and any monotone
// query over the summaries (byte offset, line number) can be answered by
// descending a single root-to-leaf path.
//
// Nodes are immutable once built. Tree values are handles onto a shared
// root: copying a Tree is O(1), and Push copies only the right spine, so a
// previously copied handle keeps observing exactly the items it had.
//
//	t := sumtree.FromItems[Chunk, TextSummary](chunks)
//	t.Push(more)
//	total := t.Summary()
//	for c := range t.All() {
//		...
//	}
package sumtree
