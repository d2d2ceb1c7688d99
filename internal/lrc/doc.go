// Package lrc parses and generates the enhanced LRC lyric dialect: `[mm:ss.xxx]`
// line tags, inline `<mm:ss.xxx>` word tags, `v1:`/`v2:` duet voice prefixes,
// and `[bg:...]` background-vocal brackets.
package lrc
