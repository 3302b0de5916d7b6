package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// tsPackets returns n MPEG-TS packets: 188 bytes each, sync byte 0x47.
func tsPackets(n int) []byte {
	b := make([]byte, 188*n)
	for i := 0; i < n; i++ {
		b[i*188] = 0x47
	}
	return b
}

// mp4Header is the start of an ISO BMFF file with an ftyp box.
var mp4Header = []byte{
	0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
	'm', 'p', '4', '2', 0x00, 0x00, 0x00, 0x00,
	'm', 'p', '4', '2', 'i', 's', 'o', 'm',
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad(t *testing.T) {
	p := writeFile(t, "00001.MTS", tsPackets(4))
	f, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Name != "00001.MTS" || f.Size != 188*4 || len(f.Data) != 188*4 {
		t.Errorf("unexpected file: name=%q size=%d len=%d", f.Name, f.Size, len(f.Data))
	}

	f.Release()
	if !f.Released() || f.Size != 188*4 {
		t.Error("Release should drop data but keep size")
	}
}

func TestLoad_Rejects(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(dir); !errors.Is(err, ErrIsDirectory) {
		t.Errorf("directory: got %v", err)
	}
	if _, err := Load(writeFile(t, "empty.mts", nil)); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty: got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.mts")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing: got %v", err)
	}
}

func TestAdvise(t *testing.T) {
	tests := []struct {
		name      string
		file      *File
		wantNotes int
		contains  string
	}{
		{"transport stream", FromBytes("00001.mts", tsPackets(4)), 0, ""},
		{"mp4 upper ext", FromBytes("clip.MP4", mp4Header), 0, ""},
		{"wrong extension", FromBytes("clip.avi", tsPackets(4)), 1, ".avi"},
		{"no extension", FromBytes("clip", tsPackets(4)), 1, "(none)"},
		{"text content", FromBytes("notes.mts", []byte("just some notes\n")), 1, "text/plain"},
		{"released data skips sniff", &File{Name: "clip.mov"}, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := Advise(tt.file)
			if len(notes) != tt.wantNotes {
				t.Fatalf("notes = %v, want %d", notes, tt.wantNotes)
			}
			if tt.contains != "" && !strings.Contains(notes[0], tt.contains) {
				t.Errorf("note %q does not mention %q", notes[0], tt.contains)
			}
		})
	}
}
