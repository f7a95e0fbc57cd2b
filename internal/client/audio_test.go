package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"vigi-cli/pkg/models"
)

// writeAudioFiles drops n small fake g711 files into a temp dir.
func writeAudioFiles(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("g711-payload"), 0o644))
		paths = append(paths, p)
	}
	return paths
}

func TestGetCustomAudioList(t *testing.T) {
	cam, srv := newFakeCamera(t)
	// dynamic file_N keys, URL-encoded names, and a firmware that returns
	// string IDs
	cam.audioTable = []map[string]interface{}{
		{"file_2": map[string]interface{}{"id": "102", "name": "door%20bell"}},
		{"file_1": map[string]interface{}{"id": 101, "name": "custom%20audio%201"}},
	}
	api := loggedInClient(t, cam, srv)

	audios, err := api.GetCustomAudioList()
	require.NoError(t, err)
	require.Len(t, audios, 2)
	require.Equal(t, models.SlotID(101), audios[0].ID)
	require.Equal(t, "custom audio 1", audios[0].Name)
	require.Equal(t, models.SlotID(102), audios[1].ID)
	require.Equal(t, "door bell", audios[1].Name)
}

func TestGetCustomAudioListEmpty(t *testing.T) {
	cam, srv := newFakeCamera(t)
	api := loggedInClient(t, cam, srv)

	audios, err := api.GetCustomAudioList()
	require.NoError(t, err)
	require.Empty(t, audios)
}

func TestUploadCustomAudio(t *testing.T) {
	cam, srv := newFakeCamera(t)
	api := loggedInClient(t, cam, srv)

	paths := writeAudioFiles(t, "chime.g711")
	require.NoError(t, api.UploadCustomAudio(paths[0], 101, ""))

	require.Equal(t, []string{"chime.g711"}, cam.uploadedNames)

	// assign phase binds slot and name; name defaults to the basename
	// without extension
	assign := cam.dsPayloads[0]["system"].(map[string]interface{})["upload_usr_def_audio"].(map[string]interface{})
	require.Equal(t, float64(101), assign["id"])
	require.Equal(t, "chime", assign["name"])
}

func TestUploadRejectsUnknownSlot(t *testing.T) {
	cam, srv := newFakeCamera(t)
	api := loggedInClient(t, cam, srv)

	var paramErr *InvalidParameterError
	require.ErrorAs(t, api.UploadCustomAudio("whatever.g711", 100, ""), &paramErr)
	require.ErrorAs(t, api.UploadCustomAudio("whatever.g711", 104, ""), &paramErr)
	require.Empty(t, cam.dsPayloads)
}

func TestUploadMissingFile(t *testing.T) {
	cam, srv := newFakeCamera(t)
	api := loggedInClient(t, cam, srv)

	err := api.UploadCustomAudio(filepath.Join(t.TempDir(), "absent.g711"), 101, "")
	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
}

func TestSyncCustomAudios(t *testing.T) {
	cam, srv := newFakeCamera(t)
	// second file fails at the staging endpoint
	cam.failUploadNames["b.g711"] = true
	api := loggedInClient(t, cam, srv)

	paths := writeAudioFiles(t, "a.g711", "b.g711", "c.g711", "d.g711")
	results := api.SyncCustomAudios(paths)
	require.Len(t, results, 4)

	require.NoError(t, results[0].Err)
	require.Equal(t, 101, results[0].Slot)

	var upErr *UploadError
	require.ErrorAs(t, results[1].Err, &upErr)
	require.Equal(t, 102, results[1].Slot)

	// the failure in the middle must not block the third upload
	require.NoError(t, results[2].Err)
	require.Equal(t, 103, results[2].Slot)

	var capErr *CapacityError
	require.ErrorAs(t, results[3].Err, &capErr)

	require.Equal(t, []string{"a.g711", "c.g711"}, cam.uploadedNames)
}

func TestRenameCustomAudio(t *testing.T) {
	cam, srv := newFakeCamera(t)
	api := loggedInClient(t, cam, srv)

	require.NoError(t, api.RenameCustomAudio(102, "warning tone"))

	// id and name travel as single-element arrays
	modify := cam.dsPayloads[0]["usr_def_audio_alarm"].(map[string]interface{})["modify_audio"].(map[string]interface{})
	require.Equal(t, []interface{}{float64(102)}, modify["id"])
	require.Equal(t, []interface{}{"warning tone"}, modify["name"])
}

func TestRenameValidation(t *testing.T) {
	cam, srv := newFakeCamera(t)
	api := loggedInClient(t, cam, srv)

	var paramErr *InvalidParameterError
	require.ErrorAs(t, api.RenameCustomAudio(99, "x"), &paramErr)
	require.ErrorAs(t, api.RenameCustomAudio(101, ""), &paramErr)
	require.Empty(t, cam.dsPayloads)
}

func TestDeleteCustomAudio(t *testing.T) {
	cam, srv := newFakeCamera(t)
	api := loggedInClient(t, cam, srv)

	require.NoError(t, api.DeleteCustomAudio(101, 103))

	del := cam.dsPayloads[0]["usr_def_audio_alarm"].(map[string]interface{})["delete_audio"].(map[string]interface{})
	require.Equal(t, []interface{}{float64(101), float64(103)}, del["id"])
}

func TestDeleteValidation(t *testing.T) {
	cam, srv := newFakeCamera(t)
	api := loggedInClient(t, cam, srv)

	var paramErr *InvalidParameterError
	require.ErrorAs(t, api.DeleteCustomAudio(), &paramErr)
	require.ErrorAs(t, api.DeleteCustomAudio(101, 200), &paramErr)
	require.Empty(t, cam.dsPayloads)
}
