package powerinfo

import (
	"errors"
	"math"

	"github.com/distatus/battery"
	"github.com/sirupsen/logrus"
)

// ErrNoBattery is returned by Read when the host has no battery
// hardware (e.g. a desktop machine). This is an expected condition,
// not a failure.
var ErrNoBattery = errors.New("no battery detected")

// Read queries the OS battery sensor and returns a Sample with
// Percent, Plugged and SecondsRemaining filled in. Status is left for
// the caller to derive, since it depends on configured thresholds.
//
// Hosts with multiple batteries are aggregated by capacity; the
// plugged state is taken from the first battery.
func Read() (*Sample, error) {
	batteries, err := battery.GetAll()
	if len(batteries) == 0 {
		if err != nil {
			logrus.Debugf("battery query failed: %v", err)
		}
		return nil, ErrNoBattery
	}
	if err != nil {
		// Partial errors are common on Linux sysfs. Use what we got.
		logrus.Debugf("partial battery read: %v", err)
	}

	totalCapacity := float64(0)
	totalCharge := float64(0)
	for _, bat := range batteries {
		if bat.Design != 0 {
			totalCapacity += bat.Design
		} else {
			totalCapacity += bat.Full
		}
		totalCharge += bat.Current
	}

	percent := 0
	if totalCapacity > 0 {
		percent = int(math.Round(totalCharge / totalCapacity * 100))
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	first := batteries[0]
	plugged := first.State.Raw != battery.Discharging && first.State.Raw != battery.Empty

	return &Sample{
		Percent:          percent,
		Plugged:          plugged,
		SecondsRemaining: secondsRemaining(first.State.Raw, totalCharge, totalCapacity, first.ChargeRate),
	}, nil
}

// secondsRemaining estimates time to empty when discharging, or time
// to full when charging. Rate is in mW, charge in mWh, so hours =
// charge / rate.
func secondsRemaining(state battery.AgnosticState, charge, capacity, rate float64) int {
	if rate <= 0 {
		return TimeUnknown
	}

	switch state {
	case battery.Discharging:
		return int(charge / rate * 3600)
	case battery.Charging:
		return int((capacity - charge) / rate * 3600)
	default:
		// Full, idle, or unknown: nothing meaningful to count down.
		return TimeUnknown
	}
}
