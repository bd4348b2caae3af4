package daemon

import (
	"testing"
	"time"

	"battwatch/pkg/config"
	"battwatch/pkg/events"
	"battwatch/pkg/notify"
	"battwatch/pkg/powerinfo"
	"battwatch/pkg/types"
	"battwatch/pkg/utils/ptr"
)

type fakeNotifier struct {
	calls []string
}

func (f *fakeNotifier) Name() string { return "fake" }

func (f *fakeNotifier) Send(_, message string) error {
	f.calls = append(f.calls, message)
	return nil
}

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func testConfig() config.Config {
	return config.NewFileFromConfig(&config.RawFileConfig{
		LowThreshold:          ptr.To(20),
		HighThreshold:         ptr.To(85),
		PollSeconds:           ptr.To(60),
		NotifyCooldownSeconds: ptr.To(10),
	}, "")
}

func newTestWatcher(t *testing.T, nf *fakeNotifier) (*Watcher, *testClock, *powerinfo.Sample) {
	t.Helper()

	clock := &testClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	sample := &powerinfo.Sample{Percent: 50, Plugged: false, SecondsRemaining: 3600}

	w := NewWatcher(testConfig(), []notify.Notifier{nf}, events.NewEventHub())
	w.now = clock.now
	w.sample = func() (*powerinfo.Sample, error) {
		s := *sample // copy so RunCycle can set Status without aliasing
		return &s, nil
	}

	return w, clock, sample
}

func TestRunCycleFirstSampleNotifies(t *testing.T) {
	nf := &fakeNotifier{}
	w, _, _ := newTestWatcher(t, nf)

	st := &types.WatcherState{}
	w.RunCycle(st)

	if len(nf.calls) != 1 {
		t.Fatalf("got %d notifications, want 1 (first sample always notifies)", len(nf.calls))
	}
	if st.LastStatus != powerinfo.StatusNormal {
		t.Errorf("LastStatus = %q, want normal", st.LastStatus)
	}
	if st.LastNotifyAt.IsZero() {
		t.Error("LastNotifyAt not updated after a send")
	}
}

func TestRunCycleSameStatusNeverResends(t *testing.T) {
	nf := &fakeNotifier{}
	w, clock, _ := newTestWatcher(t, nf)

	st := &types.WatcherState{}
	w.RunCycle(st)
	clock.advance(time.Hour) // way past any cooldown
	w.RunCycle(st)

	if len(nf.calls) != 1 {
		t.Errorf("got %d notifications, want 1 (identical status must not resend)", len(nf.calls))
	}
}

func TestRunCycleCooldownSuppressesChange(t *testing.T) {
	nf := &fakeNotifier{}
	w, clock, sample := newTestWatcher(t, nf)

	st := &types.WatcherState{}
	w.RunCycle(st)

	// Status changes to low 5s later, inside the 10s cooldown.
	sample.Percent = 15
	clock.advance(5 * time.Second)
	w.RunCycle(st)

	if len(nf.calls) != 1 {
		t.Fatalf("got %d notifications, want 1 (change within cooldown suppressed)", len(nf.calls))
	}
	// LastStatus is updated even when the send was suppressed.
	if st.LastStatus != powerinfo.StatusLow {
		t.Errorf("LastStatus = %q, want low", st.LastStatus)
	}
}

func TestRunCycleCooldownBoundaryIsExclusive(t *testing.T) {
	nf := &fakeNotifier{}
	w, clock, sample := newTestWatcher(t, nf)

	st := &types.WatcherState{}
	w.RunCycle(st)

	// Exactly the cooldown is not enough; the gap must exceed it.
	sample.Percent = 15
	clock.advance(10 * time.Second)
	w.RunCycle(st)

	if len(nf.calls) != 1 {
		t.Errorf("got %d notifications, want 1 (gap equal to cooldown still suppressed)", len(nf.calls))
	}
}

func TestRunCycleChangeAfterCooldownNotifies(t *testing.T) {
	nf := &fakeNotifier{}
	w, clock, sample := newTestWatcher(t, nf)

	st := &types.WatcherState{}
	w.RunCycle(st)

	sample.Percent = 15
	clock.advance(11 * time.Second)
	w.RunCycle(st)

	if len(nf.calls) != 2 {
		t.Fatalf("got %d notifications, want 2", len(nf.calls))
	}
	want := "Battery LOW — 15% (plugged: false) — 1:00:00"
	if nf.calls[1] != want {
		t.Errorf("notification = %q, want %q", nf.calls[1], want)
	}
}

func TestRunCycleNoBatteryLeavesStateUntouched(t *testing.T) {
	nf := &fakeNotifier{}
	w, _, _ := newTestWatcher(t, nf)
	w.sample = func() (*powerinfo.Sample, error) {
		return nil, powerinfo.ErrNoBattery
	}

	st := &types.WatcherState{LastStatus: powerinfo.StatusNormal}
	w.RunCycle(st)

	if len(nf.calls) != 0 {
		t.Errorf("got %d notifications, want 0", len(nf.calls))
	}
	if st.LastStatus != powerinfo.StatusNormal {
		t.Errorf("LastStatus = %q, want unchanged normal", st.LastStatus)
	}
}

func TestRunCyclePublishesStatusChangeEvent(t *testing.T) {
	nf := &fakeNotifier{}
	w, _, _ := newTestWatcher(t, nf)
	ch := w.hub.Subscribe()
	defer w.hub.Unsubscribe(ch)

	w.RunCycle(&types.WatcherState{})

	select {
	case ev := <-ch:
		payload, err := events.DecodeAs[events.StatusChangeEvent](ev)
		if err != nil {
			t.Fatalf("DecodeAs: %v", err)
		}
		if payload.From != "" || payload.To != "normal" {
			t.Errorf("event payload = %+v, want From empty, To normal", payload)
		}
	default:
		t.Fatal("no status.change event published")
	}
}

func TestSnapshotReflectsLastCycle(t *testing.T) {
	nf := &fakeNotifier{}
	w, _, _ := newTestWatcher(t, nf)

	if snap := w.Snapshot(); snap.Sample != nil {
		t.Error("Snapshot().Sample should be nil before the first cycle")
	}

	w.RunCycle(&types.WatcherState{})

	snap := w.Snapshot()
	if snap.Sample == nil {
		t.Fatal("Snapshot().Sample is nil after a cycle")
	}
	if snap.Sample.Status != powerinfo.StatusNormal {
		t.Errorf("Snapshot sample status = %q, want normal", snap.Sample.Status)
	}
	if snap.State.LastStatus != powerinfo.StatusNormal {
		t.Errorf("Snapshot state = %q, want normal", snap.State.LastStatus)
	}
}
