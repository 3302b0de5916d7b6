// Package probe runs ffprobe against a materialized source file and returns
// the few properties the engine needs: duration (for progress ratios),
// primary video codec and scan type, and audio codecs.
package probe
