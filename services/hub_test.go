package services

import "testing"

func TestHubPublishReachesSubscribedTopicsOnly(t *testing.T) {
	hub := NewHub()
	sub := hub.Register()
	defer hub.Unregister(sub)

	hub.Subscribe(sub, GameTopic(1))

	if n := hub.Publish(GameTopic(1), "question_created", nil); n != 1 {
		t.Fatalf("expected 1 delivery, got %d", n)
	}
	if n := hub.Publish(GameTopic(2), "question_created", nil); n != 0 {
		t.Fatalf("expected 0 deliveries on an unsubscribed topic, got %d", n)
	}

	ev := <-sub.C()
	if ev.Topic != GameTopic(1) || ev.Type != "question_created" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	sub := hub.Register()
	defer hub.Unregister(sub)

	hub.Subscribe(sub, GroupTopic(7))
	hub.Unsubscribe(sub, GroupTopic(7))

	if n := hub.Publish(GroupTopic(7), "member_joined", nil); n != 0 {
		t.Fatalf("expected 0 deliveries after unsubscribe, got %d", n)
	}
	if got := len(hub.Topics(sub)); got != 0 {
		t.Fatalf("expected no topics, got %d", got)
	}
}

func TestHubUnregisterTearsDownAllTopics(t *testing.T) {
	hub := NewHub()
	sub := hub.Register()
	hub.Subscribe(sub, GameTopic(1))
	hub.Subscribe(sub, GroupTopic(2))

	hub.Unregister(sub)

	if n := hub.SubscriberCount(GameTopic(1)); n != 0 {
		t.Fatalf("game topic still has %d subscribers", n)
	}
	if n := hub.SubscriberCount(GroupTopic(2)); n != 0 {
		t.Fatalf("group topic still has %d subscribers", n)
	}

	// Stream is closed; receive must not block
	if _, ok := <-sub.C(); ok {
		t.Fatal("expected closed event stream after unregister")
	}
}

func TestHubDropsSlowSubscribers(t *testing.T) {
	hub := NewHub()
	sub := hub.Register()
	defer hub.Unregister(sub)
	hub.Subscribe(sub, GameTopic(9))

	// Fill the buffer without draining
	for i := 0; i < subscriberBufferSize; i++ {
		if n := hub.Publish(GameTopic(9), "tick", nil); n != 1 {
			t.Fatalf("delivery %d failed", i)
		}
	}
	// Buffer full: the publish is skipped rather than blocking
	if n := hub.Publish(GameTopic(9), "tick", nil); n != 0 {
		t.Fatalf("expected slow subscriber to be skipped, got %d deliveries", n)
	}
}
