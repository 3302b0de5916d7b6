package ffmpeg

import (
	"fmt"
	"regexp"
	"strings"
)

// Pre-compiled regexes for classifying ffmpeg stderr output. Checked in
// order by Classify; the first match wins.
var classifiers = []struct {
	re       *regexp.Regexp
	reason   string
	resource bool
}{
	{
		re: regexp.MustCompile(
			`(?i)Cannot allocate memory|Out of memory|` +
				`Killed|signal: killed|` +
				`No space left on device`),
		reason:   "resources exhausted",
		resource: true,
	},
	{
		re: regexp.MustCompile(
			`(?i)codec not currently supported in container|` +
				`Could not find tag for codec|` +
				`Could not write header|` +
				`Tag .* incompatible with output codec`),
		reason: "codec not supported in container",
	},
	{
		re: regexp.MustCompile(
			`(?i)Unknown encoder|Encoder not found|` +
				`Error while opening encoder|` +
				`Error initializing output stream`),
		reason: "encoder unavailable",
	},
	{
		re: regexp.MustCompile(
			`(?i)Invalid data found when processing input|` +
				`could not find codec parameters|` +
				`moov atom not found|` +
				`Output file #0 does not contain any stream|` +
				`Output file does not contain any stream`),
		reason: "unreadable source stream",
	},
	{
		re: regexp.MustCompile(
			`(?i)Non-monotonous DTS|non monotonically increasing dts|` +
				`pts has no value|Timestamps are unset`),
		reason: "timestamp discontinuity",
	},
}

// Classify maps ffmpeg stderr to a short reason and whether it indicates
// resource exhaustion. Unknown failures return "ffmpeg failed".
func Classify(stderr string) (reason string, resource bool) {
	for _, c := range classifiers {
		if c.re.MatchString(stderr) {
			return c.reason, c.resource
		}
	}
	return "ffmpeg failed", false
}

// ExecError is a failed ffmpeg invocation. It implements engine.Reasoner.
type ExecError struct {
	Stderr string
	Err    error

	reason   string
	resource bool
}

func newExecError(stderr string, err error) *ExecError {
	e := &ExecError{Stderr: stderr, Err: err}
	e.reason, e.resource = Classify(stderr + "\n" + fmt.Sprint(err))
	return e
}

func (e *ExecError) Error() string {
	if tail := lastLine(e.Stderr); tail != "" {
		return fmt.Sprintf("%v: %s", e.Err, tail)
	}
	return e.Err.Error()
}

func (e *ExecError) Unwrap() error           { return e.Err }
func (e *ExecError) Reason() string          { return e.reason }
func (e *ExecError) ResourceExhausted() bool { return e.resource }

// lastLine returns the last non-empty line of s.
func lastLine(s string) string {
	s = strings.TrimRight(s, "\r\n\t ")
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}
