package pipeline

// RunStats tracks counters and byte totals for one transcode.
type RunStats struct {
	InputBytes  int64
	OutputBytes int64
	Attempts    int
	Fallbacks   int
}

// SizePercent returns output size as a percentage of input size, or 0 when
// the input size is unknown.
func (s RunStats) SizePercent() int64 {
	if s.InputBytes <= 0 {
		return 0
	}
	return s.OutputBytes * 100 / s.InputBytes
}
