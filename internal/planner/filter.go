package planner

// DeinterlaceFilter is the yadif chain used by the re-encode plan. Camcorder
// streams often carry interlaced fields without flagging field_order, so
// every frame is deinterlaced (deint=all) rather than only flagged ones.
const DeinterlaceFilter = "yadif=mode=send_frame:parity=auto:deint=all"

// Compatibility ceiling for the re-encode plan: H.264 High@4.1, 8-bit 4:2:0.
const (
	VideoEncoder   = "libx264"
	VideoProfile   = "high"
	VideoLevel     = "4.1"
	VideoPreset    = "ultrafast"
	VideoPixFmt    = "yuv420p"
	AudioEncoder   = "aac"
	OutputMuxer    = "mp4"
	FastStartFlags = "+faststart"
)
