package daemon

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"battwatch/pkg/config"
	"battwatch/pkg/events"
	"battwatch/pkg/notify"
	"battwatch/pkg/powerinfo"
	"battwatch/pkg/types"
)

// notifyTitle is the title used for desktop notifications.
const notifyTitle = "Battery Watcher"

// Watcher owns the poll cycle: sample, classify, log, and notify on
// rate-limited status changes.
type Watcher struct {
	conf      config.Config
	notifiers []notify.Notifier
	hub       *events.EventHub

	// Swappable in tests.
	sample func() (*powerinfo.Sample, error)
	now    func() time.Time

	mu         sync.RWMutex
	state      types.WatcherState
	lastSample *powerinfo.Sample
}

func NewWatcher(conf config.Config, notifiers []notify.Notifier, hub *events.EventHub) *Watcher {
	return &Watcher{
		conf:      conf,
		notifiers: notifiers,
		hub:       hub,
		sample:    powerinfo.Read,
		now:       time.Now,
	}
}

// RunCycle executes one poll cycle against the given loop state. When
// no battery can be read the state is left untouched and the cycle is
// a no-op apart from logging.
func (w *Watcher) RunCycle(st *types.WatcherState) {
	sample, err := w.sample()
	if err != nil {
		if errors.Is(err, powerinfo.ErrNoBattery) {
			logrus.Info("no battery detected")
		} else {
			logrus.Errorf("battery read failed: %v", err)
		}
		return
	}

	sample.Status = powerinfo.Classify(sample.Percent, sample.Plugged,
		w.conf.LowThreshold(), w.conf.HighThreshold())

	msg := sample.Message()
	logrus.Info(msg)

	now := w.now()
	cooldown := time.Duration(w.conf.NotifyCooldown()) * time.Second
	if sample.Status != st.LastStatus && now.Sub(st.LastNotifyAt) > cooldown {
		w.hub.Publish(events.StatusChange, events.StatusChangeEvent{
			From:    string(st.LastStatus),
			To:      string(sample.Status),
			Percent: sample.Percent,
			Plugged: sample.Plugged,
			Ts:      now.Unix(),
		})
		notify.Dispatch(w.notifiers, notifyTitle, msg)
		st.LastNotifyAt = now
	}
	st.LastStatus = sample.Status

	w.mu.Lock()
	w.lastSample = sample
	w.state = *st
	w.mu.Unlock()
}

// Run polls forever until stop is closed.
func (w *Watcher) Run(stop <-chan struct{}) {
	st := &types.WatcherState{}
	for {
		w.RunCycle(st)

		select {
		case <-stop:
			return
		case <-time.After(time.Duration(w.conf.PollInterval()) * time.Second):
		}
	}
}

// Snapshot returns the last completed cycle's sample and state.
func (w *Watcher) Snapshot() types.Status {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return types.Status{
		Sample: w.lastSample,
		State:  w.state,
	}
}
