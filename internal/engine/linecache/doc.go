// Package linecache caches line-start byte offsets for a text source.
//
// A Cache keeps one exact window of line offsets around the region the
// editor is working in. Misses close to the window grow it and resolve the
// new lines in bulk; misses far away are answered directly from the source
// without disturbing the window. When the number of cached lines exceeds
// the configured maximum the cache is cleared and refills lazily.
//
// A Policy decides what to prefetch. The default ScrollPredictor watches
// the viewport and biases the prefetched range toward the scroll direction.
//
// Caches are not safe for concurrent use. Owners that share a cache copy
// it with Clone before mutating.
package linecache
