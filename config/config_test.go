package config

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadFrom(path)
	assert.NilError(t, err)
	assert.Assert(t, cfg.MasterEnabled)
	assert.Assert(t, cfg.HUDEnabled)
	assert.Equal(t, cfg.HUDPosition, PositionTopRight)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := LoadFrom(path)
	assert.NilError(t, err)
	assert.NilError(t, cfg.SetMasterEnabled(false))
	assert.NilError(t, cfg.SetHUDEnabled(false))
	assert.NilError(t, cfg.SetHUDPosition(PositionCenter))

	loaded, err := LoadFrom(path)
	assert.NilError(t, err)
	assert.Assert(t, !loaded.MasterEnabled)
	assert.Assert(t, !loaded.HUDEnabled)
	assert.Equal(t, loaded.HUDPosition, PositionCenter)
}

func TestLoadPartialFile(t *testing.T) {
	tests := []struct {
		name         string
		data         string
		wantEnabled  bool
		wantHUD      bool
		wantPosition string
	}{
		{"empty object", `{}`, true, true, PositionTopRight},
		{"disabled only", `{"master_enabled": false}`, false, true, PositionTopRight},
		{"unknown position", `{"hud_position": "bottom"}`, true, true, PositionTopRight},
		{"center", `{"hud_enabled": false, "hud_position": "center"}`, true, false, PositionCenter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			assert.NilError(t, os.WriteFile(path, []byte(tt.data), 0644))

			cfg, err := LoadFrom(path)
			assert.NilError(t, err)
			assert.Equal(t, cfg.MasterEnabled, tt.wantEnabled)
			assert.Equal(t, cfg.HUDEnabled, tt.wantHUD)
			assert.Equal(t, cfg.HUDPosition, tt.wantPosition)
		})
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	assert.NilError(t, os.WriteFile(path, []byte("{"), 0644))

	_, err := LoadFrom(path)
	assert.ErrorContains(t, err, "unmarshal config")
}

func TestSetHUDPositionRejectsUnknown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := LoadFrom(path)
	assert.NilError(t, err)

	err = cfg.SetHUDPosition("bottom-left")
	assert.ErrorContains(t, err, "unknown hud position")
	assert.Equal(t, cfg.HUDPosition, PositionTopRight)

	_, err = os.Stat(path)
	assert.Assert(t, os.IsNotExist(err), "rejected change must not be saved")
}

func TestPositions(t *testing.T) {
	assert.Assert(t, is.Contains(Positions, PositionTopRight))
	assert.Assert(t, is.Contains(Positions, PositionCenter))
}
