// Package encoder provides core.Encoder implementations and decorators. The
// encoder turns text into a dense vector; classification quality depends
// entirely on it, so the package keeps the building blocks small: provider
// clients live in subpackages and this package adds cross-cutting decorators
// such as LRU caching.
package encoder
