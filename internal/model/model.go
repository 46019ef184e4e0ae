package model

type RoomID string

const EmptyRoomID RoomID = ""

type RoomStatus string

const (
	StatusWaiting RoomStatus = "waiting"
	StatusPlaying RoomStatus = "playing"
)

func IsRoomStatus(s RoomStatus) bool {
	return s == StatusWaiting || s == StatusPlaying
}

// RoomType scopes a message feed. The waiting room and the game room of the
// same RoomID keep independent feeds.
type RoomType string

const (
	RoomTypeWaiting RoomType = "waiting"
	RoomTypeGame    RoomType = "game"
)

func IsRoomType(t RoomType) bool {
	return t == RoomTypeWaiting || t == RoomTypeGame
}
