// Package lyric defines the canonical in-memory representation shared by
// every lyric codec.
//
// Each parser produces a Document and each generator consumes one; the
// Document is the sole coupling point between formats. A Document is built
// once, read by at most one generator, and never mutated afterwards, so a
// single conversion owns its model and needs no synchronization.
package lyric
