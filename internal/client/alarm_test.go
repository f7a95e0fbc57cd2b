package client

import (
	"testing"

	"github.com/stretchr/testify/require"

	"vigi-cli/pkg/models"
)

func TestTriggerStartRejectsBadVolume(t *testing.T) {
	cam, srv := newFakeCamera(t)
	api := loggedInClient(t, cam, srv)

	var paramErr *InvalidParameterError
	for _, v := range []int{0, -5, 101, 1000} {
		err := api.TriggerManualAlarm(models.AlarmActionStart, 1, v)
		require.ErrorAs(t, err, &paramErr, "volume %d", v)
	}
	// validation happens before any request
	require.Empty(t, cam.dsPayloads)
}

func TestTriggerStartRejectsUnknownSound(t *testing.T) {
	cam, srv := newFakeCamera(t)
	api := loggedInClient(t, cam, srv)

	var paramErr *InvalidParameterError
	require.ErrorAs(t, api.TriggerManualAlarm(models.AlarmActionStart, 42, 30), &paramErr)
	require.ErrorAs(t, api.TriggerManualAlarm(models.AlarmActionStart, 104, 30), &paramErr)
	require.Empty(t, cam.dsPayloads)
}

func TestTriggerStartAcceptsBoundaryVolumes(t *testing.T) {
	cam, srv := newFakeCamera(t)
	api := loggedInClient(t, cam, srv)

	require.NoError(t, api.TriggerManualAlarm(models.AlarmActionStart, 1, models.MinVolume))
	require.NoError(t, api.TriggerManualAlarm(models.AlarmActionStart, 101, models.MaxVolume))
	require.NotEmpty(t, cam.dsPayloads)
}

func TestTriggerStartSequence(t *testing.T) {
	cam, srv := newFakeCamera(t)
	api := loggedInClient(t, cam, srv)

	require.NoError(t, api.TriggerManualAlarm(models.AlarmActionStart, 2, 30))

	// init settings, set volume, set sound type, trigger
	require.Len(t, cam.dsPayloads, 4)

	last := cam.dsPayloads[3]
	manual := last["msg_alarm"].(map[string]interface{})["manual_msg_alarm"].(map[string]interface{})
	require.Equal(t, "start", manual["action"])

	volume := cam.dsPayloads[1]["audio_config"].(map[string]interface{})["speaker"].(map[string]interface{})
	require.Equal(t, "30", volume["system_volume"])

	sound := cam.dsPayloads[2]["msg_alarm"].(map[string]interface{})["chn1_msg_alarm_info"].(map[string]interface{})
	require.Equal(t, "2", sound["alarm_type"])

	// second start must not re-run the one-time init
	require.NoError(t, api.TriggerManualAlarm(models.AlarmActionStart, 2, 30))
	require.Len(t, cam.dsPayloads, 7)
}

func TestTriggerStopNeedsNoParameters(t *testing.T) {
	cam, srv := newFakeCamera(t)
	api := loggedInClient(t, cam, srv)

	require.NoError(t, api.TriggerManualAlarm(models.AlarmActionStop, 0, 0))
	require.Len(t, cam.dsPayloads, 1)

	manual := cam.dsPayloads[0]["msg_alarm"].(map[string]interface{})["manual_msg_alarm"].(map[string]interface{})
	require.Equal(t, "stop", manual["action"])
}

func TestTriggerRejectsUnknownAction(t *testing.T) {
	cam, srv := newFakeCamera(t)
	api := loggedInClient(t, cam, srv)

	var paramErr *InvalidParameterError
	require.ErrorAs(t, api.TriggerManualAlarm("pause", 1, 30), &paramErr)
	require.Empty(t, cam.dsPayloads)
}

func TestSetVolumeValidatesRange(t *testing.T) {
	cam, srv := newFakeCamera(t)
	api := loggedInClient(t, cam, srv)

	var paramErr *InvalidParameterError
	require.ErrorAs(t, api.SetVolume(0), &paramErr)
	require.ErrorAs(t, api.SetVolume(101), &paramErr)
	require.NoError(t, api.SetVolume(50))
}

func TestTestAudioAlarm(t *testing.T) {
	cam, srv := newFakeCamera(t)
	api := loggedInClient(t, cam, srv)

	require.NoError(t, api.TestAudioAlarm(101))
	test := cam.dsPayloads[0]["usr_def_audio_alarm"].(map[string]interface{})["test_audio"].(map[string]interface{})
	require.Equal(t, float64(101), test["id"])

	var paramErr *InvalidParameterError
	require.ErrorAs(t, api.TestAudioAlarm(55), &paramErr)
}
