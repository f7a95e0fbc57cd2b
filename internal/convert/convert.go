// Package convert transcodes arbitrary audio files into the camera's accepted
// custom-sound format by shelling out to ffmpeg.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// Target parameters are the camera's documented format: G.711 A-law, 8 kHz,
// mono, at most 128 KiB per slot.
const (
	SampleRate   = 8000
	MaxAudioSize = 128 * 1024
)

// ConversionError covers a missing ffmpeg binary as well as unreadable or
// unsupported input.
type ConversionError struct {
	Input string
	Err   error
	// Stderr holds ffmpeg's diagnostics when the process itself failed.
	Stderr string
}

func (e *ConversionError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("convert %s: %v: %s", e.Input, e.Err, e.Stderr)
	}
	return fmt.Sprintf("convert %s: %v", e.Input, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Converter produces camera-compatible audio payloads. The zero value is not
// usable; call New.
type Converter struct {
	// FFmpegPath is the transcoder binary, resolved through PATH.
	FFmpegPath string
	// MaxSize caps the output length in bytes.
	MaxSize int
}

func New() *Converter {
	return &Converter{
		FFmpegPath: "ffmpeg",
		MaxSize:    MaxAudioSize,
	}
}

// Convert transcodes inputPath to G.711 A-law and returns the raw bytes.
// Deterministic for a fixed input and ffmpeg version. The duration is limited
// up front so the output stays under the camera's size cap; anything beyond
// it (container padding and the like) is truncated.
func (c *Converter) Convert(ctx context.Context, inputPath string) ([]byte, error) {
	// A-law is one byte per sample, so seconds = bytes / sample rate.
	maxDuration := float64(c.MaxSize) / float64(SampleRate)

	cmd := exec.CommandContext(ctx, c.FFmpegPath,
		"-i", inputPath,
		"-t", strconv.FormatFloat(maxDuration, 'f', -1, 64),
		"-acodec", "pcm_alaw",
		"-ar", strconv.Itoa(SampleRate),
		"-ac", "1",
		"-f", "alaw",
		"-", // raw samples to stdout
	)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &ConversionError{Input: inputPath, Err: err, Stderr: stderr.String()}
	}
	if out.Len() == 0 {
		return nil, &ConversionError{Input: inputPath, Err: fmt.Errorf("transcoder produced no output"), Stderr: stderr.String()}
	}

	data := out.Bytes()
	if len(data) > c.MaxSize {
		data = data[:c.MaxSize]
	}
	return data, nil
}
