package app

import (
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"go.aimuz.me/vimualizer/config"
	"go.aimuz.me/vimualizer/tap"
	"go.aimuz.me/vimualizer/visualizer"
)

// stubTap stands in for the platform tap.
type stubTap struct {
	handler tap.Handler
	err     error
}

func (s *stubTap) Start(h tap.Handler) error {
	if s.err != nil {
		return s.err
	}
	s.handler = h
	return nil
}

func (s *stubTap) Stop() error {
	s.handler = nil
	return nil
}

// inline runs dispatched work immediately, like a UI thread with no backlog.
var inline = visualizer.DispatchFunc(func(fn func()) { fn() })

func newTestService(t *testing.T, st *stubTap) (*Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := config.LoadFrom(path)
	assert.NilError(t, err)

	s := New("test", cfg)
	s.setupCore(st, inline)
	s.startTap()
	return s, path
}

func TestServiceRecordsKeys(t *testing.T) {
	st := &stubTap{}
	s, _ := newTestService(t, st)

	for _, code := range []int64{0, 1, 2} {
		assert.Equal(t, st.handler(tap.KeyEvent{Code: code, Kind: tap.KindKeyDown}), tap.PassThrough)
	}

	state := s.GetState()
	assert.DeepEqual(t, state.History, []string{"a", "s", "d"})
	assert.Equal(t, state.Mode, visualizer.DefaultMode)
}

func TestServiceHotkeyConsumed(t *testing.T) {
	st := &stubTap{}
	s, _ := newTestService(t, st)

	d := st.handler(tap.KeyEvent{Code: 35, Modifiers: tap.ModCommand | tap.ModOption, Kind: tap.KindKeyDown})
	assert.Equal(t, d, tap.Consume)
	assert.Equal(t, len(s.GetState().History), 0)
}

func TestServiceSetMasterEnabledPersists(t *testing.T) {
	st := &stubTap{}
	s, path := newTestService(t, st)

	assert.NilError(t, s.SetMasterEnabled(false))
	st.handler(tap.KeyEvent{Code: 0, Kind: tap.KindKeyDown})
	assert.Equal(t, len(s.GetState().History), 0)
	assert.Equal(t, s.GetTapStatus().Phase, string(visualizer.PhaseDisabled))

	saved, err := config.LoadFrom(path)
	assert.NilError(t, err)
	assert.Assert(t, !saved.MasterEnabled)
}

func TestServiceSetHUDVisiblePersists(t *testing.T) {
	s, path := newTestService(t, &stubTap{})

	assert.NilError(t, s.SetHUDVisible(false))
	assert.Assert(t, !s.GetState().HUDVisible)

	saved, err := config.LoadFrom(path)
	assert.NilError(t, err)
	assert.Assert(t, !saved.HUDEnabled)
}

func TestServiceHUDPosition(t *testing.T) {
	s, _ := newTestService(t, &stubTap{})

	assert.Equal(t, s.GetHUDPosition(), config.PositionTopRight)
	assert.NilError(t, s.SetHUDPosition(config.PositionCenter))
	assert.Equal(t, s.GetSettings().HUDPosition, config.PositionCenter)
	assert.ErrorContains(t, s.SetHUDPosition("nowhere"), "unknown hud position")
}

func TestServiceRetryTap(t *testing.T) {
	st := &stubTap{err: tap.ErrTapUnavailable}
	s, _ := newTestService(t, st)

	status := s.GetTapStatus()
	assert.Equal(t, status.Status, visualizer.StatusRegistrationFailed.String())
	assert.Assert(t, is.Contains(status.Error, "unavailable"))

	st.err = nil
	status = s.RetryTap()
	assert.Equal(t, status.Status, visualizer.StatusRegistered.String())
	assert.Equal(t, status.Phase, string(visualizer.PhaseActive))
	assert.Equal(t, status.Error, "")

	// Retrying while registered is a no-op.
	status = s.RetryTap()
	assert.Equal(t, status.Error, "")
}

func TestServiceShutdown(t *testing.T) {
	st := &stubTap{}
	s, _ := newTestService(t, st)
	s.ShowSettings()
	s.Shutdown()
	assert.Assert(t, st.handler == nil)
	assert.Equal(t, s.GetTapStatus().Status, visualizer.StatusUninitialized.String())
}
