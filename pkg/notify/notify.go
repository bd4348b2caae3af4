// Package notify implements the best-effort notification channels.
// Channels never propagate failures to the watcher loop; a failed send
// is logged and forgotten.
package notify

import (
	"github.com/sirupsen/logrus"
)

// Notifier is a single notification channel.
type Notifier interface {
	// Name identifies the channel in logs.
	Name() string
	// Send delivers one notification. The returned error is
	// informational only; callers must treat a failed send as
	// "notification did not arrive" and move on.
	Send(title, message string) error
}

// Dispatch fans a notification out to every channel independently.
// One channel failing does not stop the others.
func Dispatch(notifiers []Notifier, title, message string) {
	for _, n := range notifiers {
		if err := n.Send(title, message); err != nil {
			logrus.WithField("channel", n.Name()).Warnf("notification send failed: %v", err)
			continue
		}
		logrus.WithField("channel", n.Name()).Debug("notification sent")
	}
}
