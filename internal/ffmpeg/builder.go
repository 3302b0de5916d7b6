package ffmpeg

// BuildArgs constructs the complete ffmpeg argument slice for op. Every
// invocation shares the same preamble: no banner, no stdin, overwrite,
// the configured log level, and key=value progress on stdout. Operation
// tokens that appear in paths are replaced by the mapped file path; all
// other tokens pass through unchanged.
func BuildArgs(binary, logLevel string, paths map[string]string, opArgs []string) []string {
	args := make([]string, 0, len(opArgs)+12)

	// --- Preamble ---
	args = append(args, binary, "-hide_banner", "-nostdin", "-y")
	if logLevel == "" {
		logLevel = "error"
	}
	args = append(args, "-loglevel", logLevel)

	// Progress goes to stdout; -nostats keeps stderr free for errors.
	args = append(args, "-progress", "pipe:1", "-nostats")

	// --- Operation ---
	for _, tok := range opArgs {
		if p, ok := paths[tok]; ok {
			args = append(args, p)
			continue
		}
		args = append(args, tok)
	}
	return args
}
