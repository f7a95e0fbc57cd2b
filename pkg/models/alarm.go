package models

// Alarm actions accepted by the camera's manual_msg_alarm endpoint.
const (
	AlarmActionStart = "start"
	AlarmActionStop  = "stop"
)

// Speaker volume bounds enforced before any request is sent.
const (
	MinVolume = 1
	MaxVolume = 100
)

// Built-in alarm sounds occupy IDs 0-9 on the C440 (0 = siren, 1 = ring tone,
// the rest vary by firmware). Custom uploads live in the 101-103 slots.
const (
	MinBuiltinSoundID = 0
	MaxBuiltinSoundID = 9
)

// IsValidVolume reports whether v is inside the accepted speaker range.
func IsValidVolume(v int) bool {
	return v >= MinVolume && v <= MaxVolume
}

// IsKnownSoundID reports whether id refers to a built-in sound or a custom
// audio slot.
func IsKnownSoundID(id int) bool {
	if id >= MinBuiltinSoundID && id <= MaxBuiltinSoundID {
		return true
	}
	return IsCustomAudioSlot(id)
}
