// Package naming derives output file names: the suggested MP4 name for a
// source file and a collision-free path inside the output directory.
package naming
