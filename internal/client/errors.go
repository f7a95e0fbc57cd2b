package client

import "fmt"

// AuthError covers failed logins, unreachable hosts during login, and any
// call attempted without a usable session.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication: %s: %v", e.Reason, e.Err)
	}
	return "authentication: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

// InvalidParameterError is returned before any HTTP request when a caller
// supplies an out-of-range volume, an unknown sound ID or slot, or a missing
// argument.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Reason)
}

// DeviceError means the camera accepted the connection but rejected the
// request. Code is the camera's error_code; Status is the HTTP status when
// the rejection happened at the transport level.
type DeviceError struct {
	Code   int
	Status int
}

func (e *DeviceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("camera rejected request: HTTP %d", e.Status)
	}
	return fmt.Sprintf("camera rejected request: error_code %d", e.Code)
}

// UploadError is the per-file failure of a custom audio upload. One failed
// file never aborts the rest of a batch.
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Path, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// CapacityError marks files in a sync batch that exceed the camera's slot
// count.
type CapacityError struct {
	Slots int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("no free slot: camera holds at most %d custom audios", e.Slots)
}
