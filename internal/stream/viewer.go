// Package stream renders a live RTSP feed on the terminal: it connects to the
// camera, sets up every media and reports packet throughput until the caller
// cancels. There is no reconnection logic; a dropped connection ends the
// session.
package stream

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/bluenviron/gortsplib/v5"
	"github.com/bluenviron/gortsplib/v5/pkg/base"
	"github.com/bluenviron/gortsplib/v5/pkg/description"
	"github.com/bluenviron/gortsplib/v5/pkg/format"
	"github.com/pion/rtp"

	"vigi-cli/pkg/models"
)

// StreamError covers connection, describe and setup failures. Handle
// construction itself can never produce one.
type StreamError struct {
	URL string
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream %s: %v", e.URL, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// statsInterval is how often the viewer prints a throughput line.
const statsInterval = 2 * time.Second

// View opens the handle's RTSP stream and consumes it until ctx is canceled
// or the connection fails. title labels the log output, taking the place of a
// window title.
func View(ctx context.Context, handle models.StreamHandle, title string) error {
	u, err := base.ParseURL(handle.URL())
	if err != nil {
		return &StreamError{URL: handle.Redacted(), Err: err}
	}

	c := gortsplib.Client{
		Scheme: u.Scheme,
		Host:   u.Host,
	}

	if err := c.Start(); err != nil {
		return &StreamError{URL: handle.Redacted(), Err: err}
	}
	defer c.Close()

	desc, _, err := c.Describe(u)
	if err != nil {
		return &StreamError{URL: handle.Redacted(), Err: err}
	}

	if err := c.SetupAll(desc.BaseURL, desc.Medias); err != nil {
		return &StreamError{URL: handle.Redacted(), Err: err}
	}

	var packets atomic.Uint64
	c.OnPacketRTPAny(func(_ *description.Media, _ format.Format, _ *rtp.Packet) {
		packets.Add(1)
	})

	if _, err := c.Play(nil); err != nil {
		return &StreamError{URL: handle.Redacted(), Err: err}
	}

	log.Printf("[%s] playing %s (%d medias)", title, handle.Redacted(), len(desc.Medias))

	fatal := make(chan error, 1)
	go func() { fatal <- c.Wait() }()

	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	var last uint64
	for {
		select {
		case <-ctx.Done():
			log.Printf("[%s] stopped", title)
			return nil
		case err := <-fatal:
			return &StreamError{URL: handle.Redacted(), Err: err}
		case <-ticker.C:
			total := packets.Load()
			log.Printf("[%s] %d RTP packets (%.0f pkt/s)", title, total,
				float64(total-last)/statsInterval.Seconds())
			last = total
		}
	}
}
