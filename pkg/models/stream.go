package models

import "fmt"

// StreamHandle describes an RTSP connection to the camera. Building one never
// touches the network; it is only consumed when a viewer opens it.
type StreamHandle struct {
	Host     string
	Port     int
	Username string
	Password string
	Path     string
}

// URL returns the RTSP URL with embedded credentials, the form the camera's
// media endpoint expects.
func (h StreamHandle) URL() string {
	return fmt.Sprintf("rtsp://%s:%s@%s:%d/%s", h.Username, h.Password, h.Host, h.Port, h.Path)
}

// Redacted returns the URL with the password masked, for logs and tables.
func (h StreamHandle) Redacted() string {
	return fmt.Sprintf("rtsp://%s:***@%s:%d/%s", h.Username, h.Host, h.Port, h.Path)
}
