package naming

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSuggestedName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"avchd clip", "00012.MTS", "00012.mp4"},
		{"m2ts", "/media/card/PRIVATE/AVCHD/BDMV/STREAM/00003.m2ts", "00003.mp4"},
		{"spaces kept", "Beach day.mts", "Beach day.mp4"},
		{"already mp4", "clip.mp4", "clip.mp4"},
		{"multiple dots", "trip.2024.06.mts", "trip.2024.06.mp4"},
		{"no extension", "clip", "clip.mp4"},
		{"dot file", ".mts", "video.mp4"},
		{"empty", "", "video.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestedName(tt.in); got != tt.want {
				t.Errorf("SuggestedName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGetOutputPath(t *testing.T) {
	if got := GetOutputPath("", "a.mp4"); got != "a.mp4" {
		t.Errorf("empty dir: got %q", got)
	}
	if got := GetOutputPath("/out", "../a.mp4"); got != filepath.Join("/out", "a.mp4") {
		t.Errorf("traversal: got %q", got)
	}
}

func TestCollisionResolver_InRun(t *testing.T) {
	cr := NewCollisionResolver()
	cr.exists = func(string) bool { return false }

	want := []string{
		"/out/clip.mp4",
		"/out/clip - dup1.mp4",
		"/out/clip - dup2.mp4",
	}
	for i, w := range want {
		if got := cr.Resolve("/out/clip.mp4"); got != w {
			t.Errorf("call %d: got %q, want %q", i, got, w)
		}
	}
}

func TestCollisionResolver_OnDisk(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"clip.mp4", "clip - dup1.mp4"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cr := NewCollisionResolver()
	got := cr.Resolve(filepath.Join(dir, "clip.mp4"))
	if want := filepath.Join(dir, "clip - dup2.mp4"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	free := filepath.Join(dir, "other.mp4")
	if got := cr.Resolve(free); got != free {
		t.Errorf("free path changed: %q", got)
	}
}
