package event

import (
	"sync"
	"testing"
)

type testEvent struct {
	topic Topic
	value int
}

func (e testEvent) EventTopic() Topic { return e.topic }

func TestBusPublishDelivers(t *testing.T) {
	bus := NewBus()

	var got []int
	_, err := bus.Subscribe("document.change", func(event any) {
		got = append(got, event.(testEvent).value)
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if err := bus.Publish(testEvent{topic: "document.change", value: 1}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if err := bus.Publish(testEvent{topic: "document.load", value: 2}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if err := bus.Publish(testEvent{topic: "document.change", value: 3}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	want := []int{1, 3}
	if len(got) != len(want) {
		t.Fatalf("delivered %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delivered[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBusWildcardSubscription(t *testing.T) {
	bus := NewBus()

	count := 0
	if _, err := bus.Subscribe("document.*", func(any) { count++ }); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	topics := []Topic{"document.change", "document.load", "editor.input"}
	for _, tp := range topics {
		if err := bus.Publish(testEvent{topic: tp}); err != nil {
			t.Fatalf("Publish(%q) error = %v", tp, err)
		}
	}

	if count != 2 {
		t.Errorf("wildcard handler ran %d times, want 2", count)
	}
}

func TestBusSubscribeErrors(t *testing.T) {
	bus := NewBus()

	if _, err := bus.Subscribe("document.change", nil); err != ErrNilHandler {
		t.Errorf("Subscribe(nil handler) error = %v, want ErrNilHandler", err)
	}
	if _, err := bus.Subscribe("", func(any) {}); err != ErrInvalidTopic {
		t.Errorf("Subscribe(empty pattern) error = %v, want ErrInvalidTopic", err)
	}
	if _, err := bus.Subscribe("a..b", func(any) {}); err != ErrInvalidTopic {
		t.Errorf("Subscribe(malformed pattern) error = %v, want ErrInvalidTopic", err)
	}
}

func TestBusPublishErrors(t *testing.T) {
	bus := NewBus()

	if err := bus.Publish(42); err != ErrInvalidEvent {
		t.Errorf("Publish(non-event) error = %v, want ErrInvalidEvent", err)
	}
	if err := bus.Publish(testEvent{topic: ""}); err != ErrInvalidEvent {
		t.Errorf("Publish(empty topic) error = %v, want ErrInvalidEvent", err)
	}
}

func TestSubscriptionCancel(t *testing.T) {
	bus := NewBus()

	count := 0
	sub, err := bus.Subscribe("document.change", func(any) { count++ })
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	if !sub.IsActive() {
		t.Fatal("new subscription is not active")
	}
	if got := bus.SubscriberCount(""); got != 1 {
		t.Fatalf("SubscriberCount() = %d, want 1", got)
	}

	if err := bus.Publish(testEvent{topic: "document.change"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	sub.Cancel()
	sub.Cancel() // second cancel is a no-op

	if sub.IsActive() {
		t.Error("cancelled subscription reports active")
	}
	if got := bus.SubscriberCount(""); got != 0 {
		t.Errorf("SubscriberCount() after cancel = %d, want 0", got)
	}

	if err := bus.Publish(testEvent{topic: "document.change"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if count != 1 {
		t.Errorf("handler ran %d times, want 1", count)
	}
}

func TestBusDeliveryOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		if _, err := bus.Subscribe("document.change", func(any) {
			order = append(order, name)
		}); err != nil {
			t.Fatalf("Subscribe() error = %v", err)
		}
	}

	if err := bus.Publish(testEvent{topic: "document.change"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	want := []string{"a", "b", "c"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("delivery order = %v, want %v", order, want)
		}
	}
}

func TestBusConcurrentSubscribePublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	seen := 0
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub, err := bus.Subscribe("document.*", func(any) {
				mu.Lock()
				seen++
				mu.Unlock()
			})
			if err != nil {
				t.Errorf("Subscribe() error = %v", err)
				return
			}
			sub.Cancel()
		}()
		go func() {
			defer wg.Done()
			if err := bus.Publish(testEvent{topic: "document.change"}); err != nil {
				t.Errorf("Publish() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got := bus.SubscriberCount(""); got != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", got)
	}
}

func TestSubscriberCountByTopic(t *testing.T) {
	bus := NewBus()

	for _, pattern := range []Topic{"document.change", "document.*", "editor.input"} {
		if _, err := bus.Subscribe(pattern, func(any) {}); err != nil {
			t.Fatalf("Subscribe(%q) error = %v", pattern, err)
		}
	}

	tests := []struct {
		topic Topic
		want  int
	}{
		{"", 3},
		{"document.change", 2},
		{"document.load", 1},
		{"editor.input", 1},
		{"other.topic", 0},
	}
	for _, tt := range tests {
		if got := bus.SubscriberCount(tt.topic); got != tt.want {
			t.Errorf("SubscriberCount(%q) = %d, want %d", tt.topic, got, tt.want)
		}
	}
}
