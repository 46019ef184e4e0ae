package ws_room

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
)

func (h *Hub) StartClientReading(client *Client) {
	defer func() {
		h.RemoveClient(client)
		client.Conn.Close()
	}()

	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			break
		}

		var cmd Command
		if err := json.Unmarshal(raw, &cmd); err != nil {
			h.sendError(client, "bad command")
			continue
		}

		switch {
		case cmd.Action == "subscribe" && IsTopic(cmd.Topic):
			h.Subscribe(context.Background(), client, cmd.Topic)
		case cmd.Action == "unsubscribe" && IsTopic(cmd.Topic):
			h.Unsubscribe(client, cmd.Topic)
		default:
			h.sendError(client, "unknown action or topic")
		}
	}
}

func (h *Hub) StartClientWriting(client *Client) {
	defer client.Conn.Close()

	for message := range client.Send {
		err := client.Conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			break
		}
	}
}

func (h *Hub) sendError(client *Client, msg string) {
	raw, _ := json.Marshal(Event{Type: EventError, Error: msg})
	h.send(client, raw)
}
