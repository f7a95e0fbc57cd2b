package convert

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubTranscoder writes a shell script that ignores its arguments and emits
// body on stdout, standing in for ffmpeg.
func stubTranscoder(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub not available on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	script := "#!/bin/sh\nprintf '%s' '" + body + "'\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestConvertDeterministic(t *testing.T) {
	c := New()
	c.FFmpegPath = stubTranscoder(t, "alaw-samples")

	first, err := c.Convert(context.Background(), "input.wav")
	require.NoError(t, err)
	second, err := c.Convert(context.Background(), "input.wav")
	require.NoError(t, err)

	require.Equal(t, []byte("alaw-samples"), first)
	require.Equal(t, first, second)
}

func TestConvertTruncatesToMaxSize(t *testing.T) {
	c := New()
	c.FFmpegPath = stubTranscoder(t, strings.Repeat("x", 64))
	c.MaxSize = 16

	data, err := c.Convert(context.Background(), "input.wav")
	require.NoError(t, err)
	require.Len(t, data, 16)
}

func TestConvertMissingTool(t *testing.T) {
	c := New()
	c.FFmpegPath = filepath.Join(t.TempDir(), "no-such-ffmpeg")

	_, err := c.Convert(context.Background(), "input.wav")
	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
}

func TestConvertToolFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub not available on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	script := "#!/bin/sh\necho 'unsupported codec' >&2\nexit 1\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))

	c := New()
	c.FFmpegPath = path

	_, err := c.Convert(context.Background(), "broken.mp3")
	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	require.Contains(t, convErr.Stderr, "unsupported codec")
}

func TestConvertEmptyOutput(t *testing.T) {
	c := New()
	c.FFmpegPath = stubTranscoder(t, "")

	_, err := c.Convert(context.Background(), "input.wav")
	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
}
