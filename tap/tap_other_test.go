//go:build !darwin

package tap

import (
	"testing"

	hook "github.com/robotn/gohook"
	"gotest.tools/v3/assert"
)

func TestKeyEventFromHook(t *testing.T) {
	tests := []struct {
		name   string
		event  hook.Event
		want   KeyEvent
		wantOK bool
	}{
		{
			name:   "press",
			event:  hook.Event{Kind: hook.KeyHold, Keycode: 0x001E},
			want:   KeyEvent{Code: 0, Kind: KindKeyDown},
			wantOK: true,
		},
		{
			name:   "press with meta and alt",
			event:  hook.Event{Kind: hook.KeyHold, Keycode: 0x0019, Mask: uioMaskMetaL | uioMaskAltL},
			want:   KeyEvent{Code: 35, Modifiers: ModCommand | ModOption, Kind: KindKeyDown},
			wantOK: true,
		},
		{
			name:   "modifier press",
			event:  hook.Event{Kind: hook.KeyHold, Keycode: 0x002A, Mask: uioMaskShiftL},
			want:   KeyEvent{Code: CodeUnknown, Modifiers: ModShift, Kind: KindFlagsChanged},
			wantOK: true,
		},
		{
			name:  "typed",
			event: hook.Event{Kind: hook.KeyDown, Keycode: 0x001E},
		},
		{
			name:  "release",
			event: hook.Event{Kind: hook.KeyUp, Keycode: 0x001E},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyEventFromHook(tt.event)
			assert.Equal(t, ok, tt.wantOK)
			assert.Equal(t, got, tt.want)
		})
	}
}
