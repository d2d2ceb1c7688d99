// Package ttml parses and generates the TTML karaoke lyric dialect used by
// Apple Music feeds: per-word <span> timing, ttm:agent duet voices, and
// ttm:role="x-bg" background vocals.
//
// Real-world TTML lyric feeds are not always well-formed XML, so parsing
// first repairs bare ampersands that are not part of a valid entity.
package ttml
