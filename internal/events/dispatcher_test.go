package events

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/field-crm/internal/domain"
)

func TestPublishInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []Event
	d.Subscribe(EventLeadCreated, func(ctx context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventLeadAssigned, func(ctx context.Context, e Event) error {
		t.Error("handler for another event type invoked")
		return nil
	})

	event := Event{Type: EventLeadCreated, Kind: domain.KindSolarLead, ItemID: "lead-1"}
	if err := d.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(got) != 1 || got[0].ItemID != "lead-1" {
		t.Fatalf("handler received %v", got)
	}
}

func TestPublishSwallowsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	d.Subscribe(EventPaymentRecorded, func(ctx context.Context, e Event) error {
		return errors.New("notification backend down")
	})
	invoked := false
	d.Subscribe(EventPaymentRecorded, func(ctx context.Context, e Event) error {
		invoked = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventPaymentRecorded}); err != nil {
		t.Fatalf("handler error leaked to publisher: %v", err)
	}
	if !invoked {
		t.Error("later handler skipped after an earlier handler failed")
	}
}
