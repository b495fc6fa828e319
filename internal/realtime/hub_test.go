package realtime

import (
	"testing"
	"time"
)

func TestHubDeliversToTableAndWildcard(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	table := make(chan ChangeEvent, 1)
	wild := make(chan ChangeEvent, 1)
	hub.Subscribe("planted_trees", func(ev ChangeEvent) { table <- ev })
	hub.Subscribe(TableAll, func(ev ChangeEvent) { wild <- ev })

	hub.Publish(ChangeEvent{Table: "planted_trees", Type: ChangeInsert, UID: "u1"})

	for name, ch := range map[string]chan ChangeEvent{"table": table, "wildcard": wild} {
		select {
		case ev := <-ch:
			if ev.UID != "u1" || ev.Type != ChangeInsert {
				t.Fatalf("%s got unexpected event %+v", name, ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("%s subscriber not notified", name)
		}
	}
}

func TestHubIgnoresOtherTables(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	got := make(chan ChangeEvent, 1)
	hub.Subscribe("badges", func(ev ChangeEvent) { got <- ev })

	hub.Publish(ChangeEvent{Table: "planted_trees", UID: "u1"})

	select {
	case ev := <-got:
		t.Fatalf("unexpected delivery %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubCancelStopsDelivery(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	got := make(chan ChangeEvent, 1)
	cancel := hub.Subscribe("planted_trees", func(ev ChangeEvent) { got <- ev })
	cancel()
	cancel() // idempotent

	hub.Publish(ChangeEvent{Table: "planted_trees", UID: "u1"})

	select {
	case ev := <-got:
		t.Fatalf("cancelled subscriber received %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubClosedPublishIsNoop(t *testing.T) {
	hub := NewHub()
	got := make(chan ChangeEvent, 1)
	hub.Subscribe("planted_trees", func(ev ChangeEvent) { got <- ev })
	hub.Close()

	hub.Publish(ChangeEvent{Table: "planted_trees", UID: "u1"})

	select {
	case ev := <-got:
		t.Fatalf("closed hub delivered %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
