package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"vigi-cli/pkg/models"
)

// customAudioListResponse mirrors the camera's custom sound table. Each array
// entry is a single-key object ("file_1", "file_2", ...) whose key carries no
// information; only the value matters.
type customAudioListResponse struct {
	ErrorCode        int `json:"error_code"`
	UsrDefAudioAlarm struct {
		UsrDefAudio []map[string]models.CustomAudio `json:"usr_def_audio"`
	} `json:"usr_def_audio_alarm"`
}

// GetCustomAudioList fetches the current custom sound table. Names arrive
// URL-encoded and are decoded here; entries are returned sorted by slot ID.
// Nothing is cached, every call hits the camera.
func (c *VigiClient) GetCustomAudioList() ([]models.CustomAudio, error) {
	body, err := c.do(map[string]interface{}{
		"usr_def_audio_alarm": map[string]interface{}{
			"table": []string{"usr_def_audio"},
		},
		"method": "get",
	})
	if err != nil {
		return nil, err
	}

	var resp customAudioListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse custom audio list: %w", err)
	}

	var audios []models.CustomAudio
	for _, wrapper := range resp.UsrDefAudioAlarm.UsrDefAudio {
		for _, a := range wrapper {
			if decoded, err := url.QueryUnescape(a.Name); err == nil {
				a.Name = decoded
			}
			audios = append(audios, a)
		}
	}
	sort.Slice(audios, func(i, j int) bool { return audios[i].ID < audios[j].ID })
	return audios, nil
}

// UploadCustomAudio pushes a G.711 file into a slot, overwriting whatever the
// slot held. The content must already be in the camera's format; no
// transcoding happens here. Two phases: a multipart upload to a staging
// endpoint, then an assign call binding the staged file to the slot and name.
func (c *VigiClient) UploadCustomAudio(path string, slot int, name string) error {
	if !models.IsCustomAudioSlot(slot) {
		return &InvalidParameterError{
			Param:  "slot_id",
			Reason: fmt.Sprintf("%d, want one of %v", slot, models.CustomAudioSlots),
		}
	}
	if c.stok == "" {
		return &AuthError{Reason: "not logged in, run Authenticate first"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &UploadError{Path: path, Err: err}
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	var staged envelope
	resp, err := c.HTTP.R().
		SetFileReader("filename", filepath.Base(path), bytes.NewReader(data)).
		SetResult(&staged).
		Post(fmt.Sprintf("/stok=%s/admin/system/upload_usr_def_audio", c.stok))
	if err != nil {
		return &UploadError{Path: path, Err: err}
	}
	if resp.IsError() || staged.ErrorCode != 0 {
		status := 0
		if resp.IsError() {
			status = resp.StatusCode()
		}
		rejErr := c.rejectionError(status, staged.ErrorCode)
		// a dead session is not a per-file problem
		var authErr *AuthError
		if errors.As(rejErr, &authErr) {
			return rejErr
		}
		return &UploadError{Path: path, Err: rejErr}
	}

	_, err = c.do(map[string]interface{}{
		"system": map[string]interface{}{
			"upload_usr_def_audio": map[string]interface{}{
				"id":   slot,
				"name": name,
			},
		},
		"method": "do",
	})
	if err != nil {
		return &UploadError{Path: path, Err: err}
	}
	return nil
}

// SyncCustomAudios uploads files into the camera's slots in fixed order: the
// first file goes to 101, the second to 102, the third to 103. Occupied slots
// are overwritten. Files beyond the slot count get a CapacityError; a failed
// upload is reported for its file and never stops the rest of the batch.
func (c *VigiClient) SyncCustomAudios(paths []string) []models.SyncResult {
	results := make([]models.SyncResult, 0, len(paths))

	for i, path := range paths {
		if i >= len(models.CustomAudioSlots) {
			results = append(results, models.SyncResult{
				Path: path,
				Err:  &CapacityError{Slots: len(models.CustomAudioSlots)},
			})
			continue
		}

		slot := models.CustomAudioSlots[i]
		err := c.UploadCustomAudio(path, slot, "")
		results = append(results, models.SyncResult{Path: path, Slot: slot, Err: err})
	}
	return results
}

// RenameCustomAudio changes a slot's display name without touching its audio
// content. The API wants id and name as single-element arrays.
func (c *VigiClient) RenameCustomAudio(slot int, newName string) error {
	if !models.IsCustomAudioSlot(slot) {
		return &InvalidParameterError{
			Param:  "slot_id",
			Reason: fmt.Sprintf("%d, want one of %v", slot, models.CustomAudioSlots),
		}
	}
	if newName == "" {
		return &InvalidParameterError{Param: "name", Reason: "must not be empty"}
	}

	_, err := c.do(map[string]interface{}{
		"usr_def_audio_alarm": map[string]interface{}{
			"modify_audio": map[string]interface{}{
				"id":   []int{slot},
				"name": []string{newName},
			},
		},
		"method": "do",
	})
	return err
}

// DeleteCustomAudio removes the given slots' custom sounds.
func (c *VigiClient) DeleteCustomAudio(slots ...int) error {
	if len(slots) == 0 {
		return &InvalidParameterError{Param: "slot_id", Reason: "no slots given"}
	}
	for _, s := range slots {
		if !models.IsCustomAudioSlot(s) {
			return &InvalidParameterError{
				Param:  "slot_id",
				Reason: fmt.Sprintf("%d, want one of %v", s, models.CustomAudioSlots),
			}
		}
	}

	_, err := c.do(map[string]interface{}{
		"usr_def_audio_alarm": map[string]interface{}{
			"delete_audio": map[string]interface{}{
				"id": slots,
			},
		},
		"method": "do",
	})
	return err
}
