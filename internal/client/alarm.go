package client

import (
	"fmt"
	"strconv"

	"vigi-cli/pkg/models"
)

// initAlarmSettings puts the camera into a known state before the first
// manual trigger: automatic sound/light alarms off, speaker unmuted. Runs at
// most once per client.
func (c *VigiClient) initAlarmSettings() error {
	if c.alarmReady {
		return nil
	}

	payload := map[string]interface{}{
		"msg_alarm": map[string]interface{}{
			"chn1_msg_alarm_info": map[string]string{
				"sound_alarm_enabled": "off",
				"light_alarm_enabled": "off",
				"alarm_type":          "1",
			},
		},
		"audio_config": map[string]interface{}{
			"speaker": map[string]string{
				"mute":          "off",
				"system_volume": "10",
			},
		},
		"method": "set",
	}
	if _, err := c.do(payload); err != nil {
		return fmt.Errorf("initialize alarm settings: %w", err)
	}
	c.alarmReady = true
	return nil
}

// SetVolume sets the speaker volume. The API wants the value as a string.
func (c *VigiClient) SetVolume(volume int) error {
	if !models.IsValidVolume(volume) {
		return &InvalidParameterError{
			Param:  "volume",
			Reason: fmt.Sprintf("%d outside range %d-%d", volume, models.MinVolume, models.MaxVolume),
		}
	}

	payload := map[string]interface{}{
		"audio_config": map[string]interface{}{
			"speaker": map[string]string{
				"system_volume": strconv.Itoa(volume),
			},
		},
		"method": "set",
	}
	_, err := c.do(payload)
	return err
}

// SetAlarmSoundType selects which sound the alarm plays.
func (c *VigiClient) SetAlarmSoundType(soundID int) error {
	if !models.IsKnownSoundID(soundID) {
		return &InvalidParameterError{
			Param:  "sound_id",
			Reason: fmt.Sprintf("%d is neither a built-in sound nor a custom slot", soundID),
		}
	}

	payload := map[string]interface{}{
		"msg_alarm": map[string]interface{}{
			"chn1_msg_alarm_info": map[string]string{
				"alarm_type": strconv.Itoa(soundID),
			},
		},
		"method": "set",
	}
	_, err := c.do(payload)
	return err
}

// TriggerManualAlarm starts or stops the sound-and-light alarm. Starting
// requires a sound ID and a volume, which are applied first; stopping ignores
// both. Parameter errors fail before any request is sent.
func (c *VigiClient) TriggerManualAlarm(action string, soundID, volume int) error {
	switch action {
	case models.AlarmActionStart:
		if !models.IsValidVolume(volume) {
			return &InvalidParameterError{
				Param:  "volume",
				Reason: fmt.Sprintf("%d outside range %d-%d", volume, models.MinVolume, models.MaxVolume),
			}
		}
		if !models.IsKnownSoundID(soundID) {
			return &InvalidParameterError{
				Param:  "sound_id",
				Reason: fmt.Sprintf("%d is neither a built-in sound nor a custom slot", soundID),
			}
		}
		if err := c.initAlarmSettings(); err != nil {
			return err
		}
		if err := c.SetVolume(volume); err != nil {
			return err
		}
		if err := c.SetAlarmSoundType(soundID); err != nil {
			return err
		}
	case models.AlarmActionStop:
		// nothing to configure
	default:
		return &InvalidParameterError{
			Param:  "action",
			Reason: fmt.Sprintf("%q, want %q or %q", action, models.AlarmActionStart, models.AlarmActionStop),
		}
	}

	payload := map[string]interface{}{
		"msg_alarm": map[string]interface{}{
			"manual_msg_alarm": map[string]string{
				"action": action,
			},
		},
		"method": "do",
	}
	_, err := c.do(payload)
	return err
}

// TestAudioAlarm plays a sound once on the speaker without triggering the
// light alarm. The command returns as soon as the camera accepts it; playback
// happens on the device.
func (c *VigiClient) TestAudioAlarm(soundID int) error {
	if !models.IsKnownSoundID(soundID) {
		return &InvalidParameterError{
			Param:  "sound_id",
			Reason: fmt.Sprintf("%d is neither a built-in sound nor a custom slot", soundID),
		}
	}

	payload := map[string]interface{}{
		"usr_def_audio_alarm": map[string]interface{}{
			"test_audio": map[string]int{
				"id": soundID,
			},
		},
		"method": "do",
	}
	_, err := c.do(payload)
	return err
}
