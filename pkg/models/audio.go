package models

import (
	"encoding/json"
	"strconv"
)

// CustomAudioSlots lists the fixed storage positions the camera exposes for
// user-uploaded alarm sounds. These IDs are a firmware constraint, not a
// design choice.
var CustomAudioSlots = []int{101, 102, 103}

// IsCustomAudioSlot reports whether id is one of the camera's custom slots.
func IsCustomAudioSlot(id int) bool {
	for _, s := range CustomAudioSlots {
		if id == s {
			return true
		}
	}
	return false
}

// SlotID is a custom audio slot identifier. The camera returns it sometimes
// as a JSON number and sometimes as a string depending on firmware, so it
// accepts both on decode.
type SlotID int

func (s *SlotID) UnmarshalJSON(data []byte) error {
	if len(data) > 1 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		n, err := strconv.Atoi(str)
		if err != nil {
			return err
		}
		*s = SlotID(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = SlotID(n)
	return nil
}

// CustomAudio is one entry of the camera's custom sound table.
type CustomAudio struct {
	ID   SlotID `json:"id"`
	Name string `json:"name"`
}

// SyncResult reports the outcome of one file in a batch upload. Err is nil on
// success.
type SyncResult struct {
	Path string
	Slot int
	Err  error
}
