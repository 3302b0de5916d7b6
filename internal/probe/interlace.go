package probe

import "strings"

// IsInterlaced returns true if the primary video stream's field_order
// indicates interlaced content (tt, bb, tb, bt).
func (p *ProbeResult) IsInterlaced() bool {
	if p.PrimaryVideo == nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(p.PrimaryVideo.FieldOrder)) {
	case "tt", "bb", "tb", "bt":
		return true
	}
	return false
}

// mp4VideoCodecs are video codecs the MP4 muxer accepts without re-encoding.
var mp4VideoCodecs = map[string]bool{
	"h264":  true,
	"hevc":  true,
	"mpeg4": true,
	"av1":   true,
}

// IsRemuxable reports whether the primary video stream can be copied into
// MP4 as-is. It is a hint for logging; the remux plan is attempted either
// way and the engine has the final word.
func (p *ProbeResult) IsRemuxable() bool {
	if p.PrimaryVideo == nil {
		return false
	}
	return mp4VideoCodecs[strings.ToLower(strings.TrimSpace(p.PrimaryVideo.Codec))]
}
