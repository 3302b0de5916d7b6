package planner

import (
	"strconv"

	"github.com/backmassage/mtsmux/internal/config"
	"github.com/backmassage/mtsmux/internal/engine"
)

// Plan names.
const (
	NameFastRemux             = "fast-remux"
	NameCompatibilityReencode = "compat-reencode"
)

// BuildPlans returns the plans for cfg.Profile in the order they are tried.
//
//	iphone, desktop: fast-remux, then compat-reencode
//	compat:          compat-reencode only
func BuildPlans(cfg *config.Config) []Plan {
	if cfg.Profile == config.ProfileCompat {
		return []Plan{CompatibilityReencode(cfg)}
	}
	return []Plan{FastRemux(cfg), CompatibilityReencode(cfg)}
}

// FastRemux copies the source video stream untouched, re-encodes audio to
// AAC (camcorder AC-3 is silent on iOS) and moves the index to the file head.
// It is near-instant and lossless when the source codec fits MP4.
func FastRemux(cfg *config.Config) Plan {
	args := make([]string, 0, 24)
	args = append(args, "-i", engine.InputName)
	args = appendStreamMaps(args)
	args = append(args, "-c:v", "copy")
	args = appendAudioCodec(args, cfg)
	args = appendContainer(args)

	return Plan{
		Name:           NameFastRemux,
		Action:         ActionRemux,
		Description:    "copy video, AAC audio, fast-start MP4",
		Args:           args,
		MinOutputBytes: cfg.MinOutputBytes,
	}
}

// CompatibilityReencode deinterlaces and re-encodes video to H.264 inside
// the compatibility ceiling, re-encodes audio to AAC, and writes a
// fast-start MP4. Slower, but plays on any iOS device.
func CompatibilityReencode(cfg *config.Config) Plan {
	args := make([]string, 0, 40)
	args = append(args, "-i", engine.InputName)
	args = appendStreamMaps(args)
	args = append(args, "-vf", DeinterlaceFilter)
	args = append(args,
		"-c:v", VideoEncoder,
		"-profile:v", VideoProfile,
		"-level:v", VideoLevel,
		"-preset", VideoPreset,
		"-crf", strconv.Itoa(cfg.CRF),
		"-pix_fmt", VideoPixFmt,
	)
	args = appendAudioCodec(args, cfg)
	args = appendContainer(args)

	return Plan{
		Name:           NameCompatibilityReencode,
		Action:         ActionEncode,
		Description:    "deinterlace, H.264 " + VideoProfile + "@" + VideoLevel + " CRF " + strconv.Itoa(cfg.CRF) + ", AAC audio, fast-start MP4",
		Args:           args,
		MinOutputBytes: cfg.MinOutputBytes,
	}
}

// appendStreamMaps keeps the first video stream and any audio. Data and
// subtitle streams in AVCHD files have no MP4 mapping and would abort the mux.
func appendStreamMaps(args []string) []string {
	return append(args, "-map", "0:v:0", "-map", "0:a?")
}

func appendAudioCodec(args []string, cfg *config.Config) []string {
	return append(args, "-c:a", AudioEncoder, "-b:a", cfg.AudioBitrate)
}

// appendContainer adds metadata, fast-start and muxer flags and the output
// entry. The muxer is explicit because scratch names carry no extension.
func appendContainer(args []string) []string {
	return append(args,
		"-map_metadata", "0",
		"-movflags", FastStartFlags,
		"-f", OutputMuxer,
		engine.OutputName,
	)
}
