package ws_room

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/obkschool/chatgame/internal/model"
	usecase_room "github.com/obkschool/chatgame/internal/usecase/room"
)

type RoomSource interface {
	Get(ctx context.Context, id model.RoomID) (model.Room, error)
}

type MessageSource interface {
	List(ctx context.Context, id model.RoomID, roomType model.RoomType) ([]model.Message, error)
}

type PresenceSource interface {
	List(ctx context.Context, id model.RoomID) ([]model.PresenceRecord, error)
}

type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	RoomID model.RoomID

	// guarded by Hub.mu
	topics map[Topic]bool
}

type Hub struct {
	mu sync.RWMutex

	// Keep track of sets of Clients within each room
	rooms map[model.RoomID]map[*Client]bool

	roomSource     RoomSource
	messageSource  MessageSource
	presenceSource PresenceSource

	logger *slog.Logger
}

type HubOption func(*Hub)

func WithLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

func NewHub(
	roomSource RoomSource,
	messageSource MessageSource,
	presenceSource PresenceSource,
	opts ...HubOption,
) *Hub {
	h := &Hub{
		rooms:          make(map[model.RoomID]map[*Client]bool),
		roomSource:     roomSource,
		messageSource:  messageSource,
		presenceSource: presenceSource,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) RegisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[client.RoomID]; !ok {
		h.rooms[client.RoomID] = make(map[*Client]bool)
	}
	h.rooms[client.RoomID][client] = true
	if client.topics == nil {
		client.topics = make(map[Topic]bool)
	}

	h.logger.Info("client registered", "room_id", client.RoomID)
}

func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[client.RoomID]; ok {
		if room[client] {
			delete(room, client)
			close(client.Send)
		}
		if len(room) == 0 {
			delete(h.rooms, client.RoomID)
		}
	}
	h.logger.Info("client unregistered", "room_id", client.RoomID)
}

// Subscribe marks the topic on the client and immediately pushes the current
// snapshot so a subscriber never starts from a blank screen.
func (h *Hub) Subscribe(ctx context.Context, client *Client, topic Topic) {
	h.mu.Lock()
	client.topics[topic] = true
	h.mu.Unlock()

	raw, err := h.snapshot(ctx, client.RoomID, topic)
	if err != nil {
		h.logger.Error("failed to build snapshot", "error", err, "room_id", client.RoomID, "topic", topic)
		return
	}
	h.send(client, raw)
}

func (h *Hub) Unsubscribe(client *Client, topic Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(client.topics, topic)
}

// BroadcastRoom pushes the full room snapshot to every room-topic subscriber.
// A missing room is pushed as a null payload: that is the eviction signal.
func (h *Hub) BroadcastRoom(ctx context.Context, id model.RoomID) {
	raw, err := h.snapshot(ctx, id, TopicRoom)
	if err != nil {
		h.logger.Error("failed to build room snapshot", "error", err, "room_id", id)
		return
	}
	h.broadcastToTopic(id, TopicRoom, raw)
}

func (h *Hub) BroadcastMessages(ctx context.Context, id model.RoomID, roomType model.RoomType) {
	topic := MessagesTopic(roomType)
	raw, err := h.snapshot(ctx, id, topic)
	if err != nil {
		h.logger.Error("failed to build messages snapshot", "error", err, "room_id", id, "topic", topic)
		return
	}
	h.broadcastToTopic(id, topic, raw)
}

func (h *Hub) BroadcastPresence(ctx context.Context, id model.RoomID) {
	raw, err := h.snapshot(ctx, id, TopicPresence)
	if err != nil {
		h.logger.Error("failed to build presence snapshot", "error", err, "room_id", id)
		return
	}
	h.broadcastToTopic(id, TopicPresence, raw)
}

func (h *Hub) snapshot(ctx context.Context, id model.RoomID, topic Topic) ([]byte, error) {
	event := Event{
		Type:   EventSnapshot,
		Topic:  topic,
		RoomID: string(id),
	}

	switch topic {
	case TopicRoom:
		room, err := h.roomSource.Get(ctx, id)
		switch {
		case err == nil:
			event.Payload = ToRoomDTO(room)
		case errors.Is(err, usecase_room.ErrResourceNotFound):
			event.Payload = nil
		default:
			return nil, err
		}

	case TopicMessagesWaiting, TopicMessagesGame:
		roomType, _ := topic.RoomType()
		msgs, err := h.messageSource.List(ctx, id, roomType)
		if err != nil {
			return nil, err
		}
		event.Payload = ToMessageDTOs(msgs)

	case TopicPresence:
		recs, err := h.presenceSource.List(ctx, id)
		if err != nil {
			return nil, err
		}
		event.Payload = ToPresenceDTOs(recs)
	}

	return json.Marshal(event)
}

func (h *Hub) broadcastToTopic(id model.RoomID, topic Topic, raw []byte) {
	h.mu.RLock()
	clients, ok := h.rooms[id]
	if !ok {
		h.mu.RUnlock()
		return
	}

	// Broadcasts run concurrently under the read lock, so the room map must
	// not be mutated here. Slow clients are only marked and dropped after the
	// lock is upgraded.
	var doomed []*Client
	for client := range clients {
		if !client.topics[topic] {
			continue
		}
		select {
		case client.Send <- raw:
		default:
			doomed = append(doomed, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range doomed {
		h.dropClient(client)
	}
}

// dropClient evicts a slow client. Safe to call twice for the same client,
// the membership check keeps the channel from closing more than once.
func (h *Hub) dropClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.RoomID]
	if !ok || !room[client] {
		return
	}
	delete(room, client)
	close(client.Send)
	if len(room) == 0 {
		delete(h.rooms, client.RoomID)
	}
}

func (h *Hub) send(client *Client, raw []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if room, ok := h.rooms[client.RoomID]; !ok || !room[client] {
		return
	}
	select {
	case client.Send <- raw:
	default:
	}
}
