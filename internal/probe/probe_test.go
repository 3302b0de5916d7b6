package probe

import (
	"testing"
)

// Typical AVCHD camcorder clip: interlaced H.264 1080i with AC-3 audio and
// a PGS subtitle track (ignored).
const sampleAVCHD = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "profile": "High",
      "pix_fmt": "yuv420p",
      "width": 1920,
      "height": 1080,
      "field_order": "tt",
      "disposition": { "default": 0, "attached_pic": 0 }
    },
    {
      "index": 1,
      "codec_name": "ac3",
      "codec_type": "audio",
      "channels": 2,
      "sample_rate": "48000",
      "disposition": { "default": 0 }
    },
    {
      "index": 2,
      "codec_name": "hdmv_pgs_subtitle",
      "codec_type": "subtitle",
      "disposition": { "default": 0 }
    }
  ],
  "format": {
    "filename": "/tmp/mtsmux/input",
    "nb_streams": 3,
    "format_name": "mpegts",
    "duration": "192.512000",
    "size": "120586240",
    "bit_rate": "5011200"
  }
}`

// Old SD camcorder: MPEG-2 video cannot be copied into MP4 for iOS.
const sampleMPEG2 = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mpeg2video",
      "codec_type": "video",
      "profile": "Main",
      "pix_fmt": "yuv420p",
      "width": 720,
      "height": 576,
      "field_order": "bb",
      "disposition": { "default": 0, "attached_pic": 0 }
    }
  ],
  "format": { "format_name": "mpegts", "duration": "10.000" }
}`

func TestParseJSON_AVCHD(t *testing.T) {
	pr, err := ParseJSON([]byte(sampleAVCHD))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if pr.Format.FormatName != "mpegts" {
		t.Errorf("format: got %q", pr.Format.FormatName)
	}
	if pr.Format.Duration != 192.512 {
		t.Errorf("duration: got %f, want 192.512", pr.Format.Duration)
	}
	if pr.Format.Size != 120586240 {
		t.Errorf("size: got %d", pr.Format.Size)
	}
	if pr.PrimaryVideo == nil || pr.PrimaryVideo.Codec != "h264" {
		t.Fatalf("primary video: %+v", pr.PrimaryVideo)
	}
	if len(pr.AudioStreams) != 1 || pr.AudioStreams[0].Codec != "ac3" || pr.AudioStreams[0].SampleRate != 48000 {
		t.Errorf("audio: %+v", pr.AudioStreams)
	}
	if !pr.IsInterlaced() {
		t.Error("tt field order should be interlaced")
	}
	if !pr.IsRemuxable() {
		t.Error("h264 should be remuxable")
	}
	if got := pr.Resolution(); got != "1920x1080" {
		t.Errorf("Resolution() = %q", got)
	}
	if got := pr.DurationMicros(); got != 192512000 {
		t.Errorf("DurationMicros() = %d", got)
	}
}

func TestParseJSON_MPEG2NotRemuxable(t *testing.T) {
	pr, err := ParseJSON([]byte(sampleMPEG2))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if pr.IsRemuxable() {
		t.Error("mpeg2video should not be remuxable")
	}
	if len(pr.AudioStreams) != 0 {
		t.Errorf("audio streams: %d", len(pr.AudioStreams))
	}
}

func TestIsInterlaced(t *testing.T) {
	tests := []struct {
		order string
		want  bool
	}{
		{"tt", true},
		{"BB", true},
		{" tb ", true},
		{"bt", true},
		{"progressive", false},
		{"", false},
		{"unknown", false},
	}
	for _, tt := range tests {
		pr := &ProbeResult{PrimaryVideo: &VideoStream{FieldOrder: tt.order}}
		if got := pr.IsInterlaced(); got != tt.want {
			t.Errorf("IsInterlaced(%q) = %v, want %v", tt.order, got, tt.want)
		}
	}
	if (&ProbeResult{}).IsInterlaced() {
		t.Error("no video should not be interlaced")
	}
}

func TestAttachedPicSkipped(t *testing.T) {
	data := `{"streams":[
		{"index":0,"codec_name":"mjpeg","codec_type":"video","disposition":{"attached_pic":1}},
		{"index":1,"codec_name":"h264","codec_type":"video","disposition":{"attached_pic":0}}
	],"format":{}}`
	pr, err := ParseJSON([]byte(data))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if pr.PrimaryVideo == nil || pr.PrimaryVideo.Index != 1 {
		t.Errorf("primary video: %+v", pr.PrimaryVideo)
	}
}

func TestDurationMicros_Unknown(t *testing.T) {
	var nilResult *ProbeResult
	if nilResult.DurationMicros() != 0 {
		t.Error("nil result should report zero duration")
	}
	if (&ProbeResult{}).DurationMicros() != 0 {
		t.Error("missing duration should report zero")
	}
}

func TestResolution_Unknown(t *testing.T) {
	if got := (&ProbeResult{}).Resolution(); got != "unknown" {
		t.Errorf("Resolution() = %q", got)
	}
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	if _, err := ParseJSON([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
