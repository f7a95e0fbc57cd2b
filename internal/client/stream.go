package client

import "vigi-cli/pkg/models"

// RTSP defaults for VIGI cameras. stream1 is the high-resolution main stream,
// stream2 the substream.
const (
	DefaultRTSPPort   = 554
	DefaultStreamPath = "stream1"
)

// CreateCameraStream builds an RTSP handle from the session's credentials.
// Pure construction: no connection is opened and no error can occur here;
// connectivity problems surface when a viewer consumes the handle.
func (c *VigiClient) CreateCameraStream(port int, streamPath string) models.StreamHandle {
	if port == 0 {
		port = DefaultRTSPPort
	}
	if streamPath == "" {
		streamPath = DefaultStreamPath
	}
	return models.StreamHandle{
		Host:     c.Config.Host,
		Port:     port,
		Username: c.Config.Username,
		Password: c.Config.Password,
		Path:     streamPath,
	}
}
