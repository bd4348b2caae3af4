package notify

import (
	"github.com/gen2brain/beeep"
	"github.com/sirupsen/logrus"
)

// ToastSettings is the slice of the daemon config the desktop channel
// needs. The flag is read on every Send so a SIGHUP config reload can
// toggle the channel without rebuilding it.
type ToastSettings interface {
	DesktopToast() bool
}

// Toast shows a local desktop notification via beeep, which handles
// the per-platform plumbing (notify-send/dbus, NSUserNotification,
// Windows toasts).
type Toast struct {
	conf ToastSettings
}

func NewToast(conf ToastSettings) *Toast {
	return &Toast{conf: conf}
}

func (t *Toast) Name() string {
	return "desktop"
}

func (t *Toast) Send(title, message string) error {
	if !t.conf.DesktopToast() {
		logrus.Debug("desktop toast disabled by config, skipping")
		return nil
	}
	return beeep.Notify(title, message, "")
}
