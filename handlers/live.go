// handlers/live.go - Websocket live feed
package handlers

import (
	"log"

	"predictplay/services"

	"github.com/gofiber/websocket/v2"
)

// liveMessage is what clients send to manage their topic set.
type liveMessage struct {
	Action string `json:"action"` // "subscribe", "unsubscribe", "ping"
	Topic  string `json:"topic"`  // e.g. "game:12", "group:7"
}

// LiveFeed runs one websocket session against the hub. The client subscribes
// to game and group topics; every mutation published on those topics is pushed
// down the socket as JSON. Disconnecting tears down all subscriptions.
func LiveFeed(c *websocket.Conn) {
	username, _ := c.Locals("username").(string)
	hub := services.GetHub()
	sub := hub.Register()

	// All socket writes go through the write pump; acks from the read loop
	// are funneled in so the two never write concurrently.
	acks := make(chan interface{}, 8)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case ev, ok := <-sub.C():
				if !ok {
					return
				}
				if err := c.WriteJSON(ev); err != nil {
					return
				}
			case msg := <-acks:
				if err := c.WriteJSON(msg); err != nil {
					return
				}
			}
		}
	}()

	ack := func(msg interface{}) {
		select {
		case acks <- msg:
		default:
		}
	}

	for {
		var msg liveMessage
		if err := c.ReadJSON(&msg); err != nil {
			break
		}

		switch msg.Action {
		case "subscribe":
			if msg.Topic != "" {
				hub.Subscribe(sub, msg.Topic)
				ack(map[string]interface{}{"type": "subscribed", "topic": msg.Topic})
			}
		case "unsubscribe":
			if msg.Topic != "" {
				hub.Unsubscribe(sub, msg.Topic)
				ack(map[string]interface{}{"type": "unsubscribed", "topic": msg.Topic})
			}
		case "ping":
			ack(map[string]interface{}{"type": "pong"})
		default:
			ack(map[string]interface{}{"type": "error", "error": "unknown action"})
		}
	}

	hub.Unregister(sub)
	<-done
	log.Printf("Live feed closed for %s", username)
}
