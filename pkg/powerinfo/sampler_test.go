package powerinfo

import (
	"testing"

	"github.com/distatus/battery"
)

func TestSecondsRemaining(t *testing.T) {
	tests := []struct {
		name     string
		state    battery.AgnosticState
		charge   float64
		capacity float64
		rate     float64
		want     int
	}{
		{
			name:     "discharging one hour left",
			state:    battery.Discharging,
			charge:   50000,
			capacity: 100000,
			rate:     50000,
			want:     3600,
		},
		{
			name:     "charging one hour to full",
			state:    battery.Charging,
			charge:   75000,
			capacity: 100000,
			rate:     25000,
			want:     3600,
		},
		{
			name:     "zero rate is unknown",
			state:    battery.Discharging,
			charge:   50000,
			capacity: 100000,
			rate:     0,
			want:     TimeUnknown,
		},
		{
			name:     "full has nothing to count down",
			state:    battery.Full,
			charge:   100000,
			capacity: 100000,
			rate:     1000,
			want:     TimeUnknown,
		},
		{
			name:     "idle has nothing to count down",
			state:    battery.Idle,
			charge:   80000,
			capacity: 100000,
			rate:     1000,
			want:     TimeUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := secondsRemaining(tt.state, tt.charge, tt.capacity, tt.rate)
			if got != tt.want {
				t.Errorf("secondsRemaining() = %d, want %d", got, tt.want)
			}
		})
	}
}
