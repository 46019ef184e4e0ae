package ws_room

import (
	"github.com/obkschool/chatgame/internal/model"
)

const (
	EventSnapshot = "snapshot"
	EventError    = "error"
)

// Topic names one live query a client can follow. Message feeds are split per
// room type so a game-room subscription never sees waiting-room chatter.
type Topic string

const (
	TopicRoom            Topic = "room"
	TopicMessagesWaiting Topic = "messages:waiting"
	TopicMessagesGame    Topic = "messages:game"
	TopicPresence        Topic = "presence"
)

func MessagesTopic(roomType model.RoomType) Topic {
	if roomType == model.RoomTypeGame {
		return TopicMessagesGame
	}
	return TopicMessagesWaiting
}

func (t Topic) RoomType() (model.RoomType, bool) {
	switch t {
	case TopicMessagesWaiting:
		return model.RoomTypeWaiting, true
	case TopicMessagesGame:
		return model.RoomTypeGame, true
	default:
		return "", false
	}
}

func IsTopic(t Topic) bool {
	switch t {
	case TopicRoom, TopicMessagesWaiting, TopicMessagesGame, TopicPresence:
		return true
	}
	return false
}

type Event struct {
	Type    string      `json:"type"`
	Topic   Topic       `json:"topic,omitempty"`
	RoomID  string      `json:"room_id,omitempty"`
	Payload interface{} `json:"payload"`
	Error   string      `json:"error,omitempty"`
}

type Command struct {
	Action string `json:"action"` // "subscribe" | "unsubscribe"
	Topic  Topic  `json:"topic"`
}

type PlayerDTO struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	IsHost   bool   `json:"is_host"`
}

type RoomDTO struct {
	RoomID  string      `json:"room_id"`
	Status  string      `json:"status"`
	Players []PlayerDTO `json:"players"`
}

type MessageDTO struct {
	RoomID    string `json:"room_id"`
	RoomType  string `json:"room_type"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
	Text      string `json:"text"`
	Seq       int64  `json:"seq"`
	CreatedAt int64  `json:"created_at"` // unix millis
}

type PresenceDTO struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	IsTyping   bool   `json:"is_typing"`
	LastActive int64  `json:"last_active"` // unix millis
}

func ToRoomDTO(room model.Room) *RoomDTO {
	dto := &RoomDTO{
		RoomID:  string(room.ID),
		Status:  string(room.Status),
		Players: make([]PlayerDTO, 0, len(room.Players)),
	}
	for _, p := range room.Players {
		dto.Players = append(dto.Players, PlayerDTO{
			UserID:   p.UserID,
			Username: p.Username,
			Avatar:   p.Avatar,
			IsHost:   p.IsHost,
		})
	}
	return dto
}

func ToMessageDTOs(msgs []model.Message) []MessageDTO {
	out := make([]MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageDTO{
			RoomID:    string(m.RoomID),
			RoomType:  string(m.RoomType),
			UserID:    m.UserID,
			Username:  m.Username,
			Avatar:    m.Avatar,
			Text:      m.Text,
			Seq:       m.Seq,
			CreatedAt: m.CreatedAt.UnixMilli(),
		})
	}
	return out
}

func ToPresenceDTOs(recs []model.PresenceRecord) []PresenceDTO {
	out := make([]PresenceDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, PresenceDTO{
			UserID:     rec.UserID,
			Username:   rec.Username,
			Avatar:     rec.Avatar,
			IsTyping:   rec.IsTyping,
			LastActive: rec.LastActive.UnixMilli(),
		})
	}
	return out
}
