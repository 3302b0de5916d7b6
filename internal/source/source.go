// Package source loads the selected camcorder file into memory and
// produces advisory notes about it.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrIsDirectory is returned by Load for a directory path.
	ErrIsDirectory = errors.New("source is a directory")
	// ErrEmpty is returned by Load for a zero-length file.
	ErrEmpty = errors.New("source file is empty")
)

// AcceptedExtensions are the extensions the plans are known to handle
// (lowercase, with leading dot). Others are still attempted.
var AcceptedExtensions = map[string]bool{
	".mts":  true,
	".m2ts": true,
	".mp4":  true,
	".mov":  true,
}

// File is one selected source, held fully in memory until Release.
type File struct {
	Path string
	Name string
	Size int64
	Data []byte
}

// Load reads path fully into memory. Directories and empty files are
// rejected; content is otherwise not validated.
func Load(path string) (*File, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if fi.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return &File{
		Path: path,
		Name: filepath.Base(path),
		Size: int64(len(data)),
		Data: data,
	}, nil
}

// FromBytes wraps an in-memory buffer as a File.
func FromBytes(name string, data []byte) *File {
	return &File{Name: name, Size: int64(len(data)), Data: data}
}

// Release drops the content buffer. Name and Size stay valid.
func (f *File) Release() {
	f.Data = nil
}

// Released reports whether Release has been called.
func (f *File) Released() bool {
	return f.Data == nil
}

// Advise returns human-readable notes about an unexpected extension or a
// sniffed content type that is not video. It never fails; an empty slice
// means nothing looked unusual.
func Advise(f *File) []string {
	var notes []string

	ext := strings.ToLower(filepath.Ext(f.Name))
	if !AcceptedExtensions[ext] {
		if ext == "" {
			ext = "(none)"
		}
		notes = append(notes, fmt.Sprintf("unexpected extension %s; expected .mts, .m2ts, .mp4 or .mov", ext))
	}

	if f.Data != nil {
		mt := mimetype.Detect(f.Data)
		if !mt.Is(unknownMIME) && !isVideo(mt) {
			notes = append(notes, fmt.Sprintf("content looks like %s, not video", mt.String()))
		}
	}
	return notes
}

// unknownMIME is what Detect returns when nothing matched.
const unknownMIME = "application/octet-stream"

// isVideo reports whether mt or one of its parents is a video type.
// MPEG transport streams sniff as video/mp2t.
func isVideo(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "video/") {
			return true
		}
	}
	return false
}
