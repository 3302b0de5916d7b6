package ffmpeg

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// parseProgress reads ffmpeg's -progress key=value stream from r until EOF.
// Each progress=continue block reports its out_time as a ratio of
// totalMicros; nothing is reported when totalMicros is unknown. The final
// progress=end block is not reported: the caller emits 1 once the process
// has exited cleanly. Returns true when the stream ended with progress=end.
func parseProgress(r io.Reader, totalMicros int64, report func(float64)) bool {
	sc := bufio.NewScanner(r)
	var outMicros int64 = -1
	ended := false

	for sc.Scan() {
		key, val, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok {
			continue
		}
		switch key {
		case "out_time_us", "out_time_ms":
			// out_time_ms is also microseconds in ffmpeg's output.
			if n, err := strconv.ParseInt(val, 10, 64); err == nil {
				outMicros = n
			}
		case "progress":
			if val == "end" {
				ended = true
				continue
			}
			if totalMicros > 0 && outMicros >= 0 {
				report(float64(outMicros) / float64(totalMicros))
			}
		}
	}
	return ended
}
