package sink

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/mtsmux/internal/pipeline"
)

// mp4Bytes is the start of an ISO BMFF file with an ftyp box.
var mp4Bytes = []byte{
	0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
	'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00,
	'i', 's', 'o', 'm', 'm', 'p', '4', '1',
}

func result(name string) *pipeline.Result {
	return &pipeline.Result{Data: mp4Bytes, MIME: pipeline.MIMEType, FileName: name, Plan: "fast-remux"}
}

func TestSave_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := Save(result("00001.mp4"), dir, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "00001.mp4"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mp4Bytes, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestSave_ResolvesCollision(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(existing, []byte("keep"), 0o644))

	path, err := Save(result("clip.mp4"), dir, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "clip - dup1.mp4"), path)

	kept, _ := os.ReadFile(existing)
	assert.Equal(t, []byte("keep"), kept)
}

func TestSave_Overwrite(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))

	path, err := Save(result("clip.mp4"), dir, true)
	require.NoError(t, err)
	assert.Equal(t, existing, path)
	got, _ := os.ReadFile(existing)
	assert.Equal(t, mp4Bytes, got)
}

func TestSave_NoResult(t *testing.T) {
	_, err := Save(nil, t.TempDir(), false)
	assert.ErrorIs(t, err, ErrNoResult)
	_, err = Save(&pipeline.Result{FileName: "x.mp4"}, t.TempDir(), false)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestVerifyMIME(t *testing.T) {
	mt, ok := VerifyMIME(mp4Bytes)
	assert.True(t, ok)
	assert.Equal(t, "video/mp4", mt)

	mt, ok = VerifyMIME([]byte("plain text, not a video"))
	assert.False(t, ok)
	assert.Contains(t, mt, "text/plain")
}

func TestPreview_UsesPlatformOpener(t *testing.T) {
	orig := startCommand
	defer func() { startCommand = orig }()

	var gotName string
	var gotArgs []string
	startCommand = func(_ context.Context, name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}

	require.NoError(t, Preview(context.Background(), "/tmp/clip.mp4"))
	wantName, _ := opener()
	assert.Equal(t, wantName, gotName)
	assert.Equal(t, "/tmp/clip.mp4", gotArgs[len(gotArgs)-1])

	startCommand = func(context.Context, string, ...string) error { return errors.New("no opener") }
	err := Preview(context.Background(), "/tmp/clip.mp4")
	assert.ErrorContains(t, err, "clip.mp4")
}
