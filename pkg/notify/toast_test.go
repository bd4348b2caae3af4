package notify

import (
	"testing"
)

type fakeToastSettings struct {
	enabled bool
}

func (f *fakeToastSettings) DesktopToast() bool { return f.enabled }

// The flag is read on every send, so a config reload that disables the
// channel silences it without a rebuild. The disabled path must be a
// silent no-op, not an error.
func TestToastDisabledIsNoOp(t *testing.T) {
	settings := &fakeToastSettings{enabled: true}
	toast := NewToast(settings)

	settings.enabled = false
	if err := toast.Send("Battery Watcher", "hello"); err != nil {
		t.Errorf("Send() with toast disabled: error = %v, want nil", err)
	}
}
