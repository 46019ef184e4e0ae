package model

import "time"

// Message is immutable once created. Seq is assigned by storage and is
// monotonic within a room, so ordering never depends on client clocks.
type Message struct {
	RoomID    RoomID
	RoomType  RoomType
	UserID    string
	Username  string
	Avatar    string
	Text      string
	Seq       int64
	CreatedAt time.Time
}
