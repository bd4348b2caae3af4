package events

import (
	"testing"
	"time"
)

func TestHubPublishSubscribe(t *testing.T) {
	hub := NewEventHub()
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	hub.Publish(StatusChange, StatusChangeEvent{From: "normal", To: "low", Percent: 15, Ts: 1})

	select {
	case ev := <-ch:
		if ev.Name != StatusChange {
			t.Errorf("event name = %q, want %q", ev.Name, StatusChange)
		}
		payload, err := DecodeAs[StatusChangeEvent](ev)
		if err != nil {
			t.Fatalf("DecodeAs: %v", err)
		}
		if payload.To != "low" || payload.Percent != 15 {
			t.Errorf("payload = %+v, want To=low Percent=15", payload)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewEventHub()
	ch := hub.Subscribe()
	hub.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("channel still open after Unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	hub.Publish(StatusChange, StatusChangeEvent{})
}
