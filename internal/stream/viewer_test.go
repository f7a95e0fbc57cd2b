package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vigi-cli/pkg/models"
)

func TestViewRejectsBadURL(t *testing.T) {
	handle := models.StreamHandle{
		Host:     "not a host",
		Port:     554,
		Username: "admin",
		Password: "pw",
		Path:     "stream1",
	}

	err := View(context.Background(), handle, "test")
	var streamErr *StreamError
	require.ErrorAs(t, err, &streamErr)
}

func TestViewConnectionRefused(t *testing.T) {
	// nothing listens on this port
	handle := models.StreamHandle{
		Host:     "127.0.0.1",
		Port:     1,
		Username: "admin",
		Password: "pw",
		Path:     "stream1",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := View(ctx, handle, "test")
	var streamErr *StreamError
	require.ErrorAs(t, err, &streamErr)
}

func TestStreamErrorRedactsPassword(t *testing.T) {
	handle := models.StreamHandle{
		Host:     "127.0.0.1",
		Port:     1,
		Username: "admin",
		Password: "supersecret",
		Path:     "stream1",
	}

	err := View(context.Background(), handle, "test")
	require.Error(t, err)
	require.NotContains(t, err.Error(), "supersecret")
}
