package gateway

import (
	"context"
	"errors"

	"github.com/obkschool/chatgame/internal/model"
)

var (
	ErrConnection = errors.New("connection failed")
	ErrValidation = errors.New("rejected by server")
	ErrNotHost    = errors.New("caller is not the host")
	ErrNotFound   = errors.New("no such resource")
)

// CancelFunc tears down one subscription. Calling it more than once is safe.
type CancelFunc func()

// Gateway is everything the client needs from the backend. Snapshots arrive
// whole and in order within a single subscription, there is no ordering
// guarantee across subscriptions.
type Gateway interface {
	CreateRoom(ctx context.Context, user model.User) (model.Room, error)

	// JoinRoom returns (nil, nil) when the room does not exist. A typo'd
	// room code is an expected outcome, not an error.
	JoinRoom(ctx context.Context, id model.RoomID, user model.User) (*model.Room, error)

	// LeaveRoom is idempotent, leaving a room you are not in succeeds.
	LeaveRoom(ctx context.Context, id model.RoomID, userID string) error

	SetRoomStatus(ctx context.Context, id model.RoomID, status model.RoomStatus, callerID string) error

	SendMessage(ctx context.Context, id model.RoomID, roomType model.RoomType, user model.User, text string) error

	UpdatePresence(ctx context.Context, id model.RoomID, user model.User, isTyping bool) error

	// SubscribeRoom pushes the room snapshot immediately and again on every
	// change. A nil snapshot means the room was closed.
	SubscribeRoom(ctx context.Context, id model.RoomID, onUpdate func(*model.Room)) (CancelFunc, error)

	SubscribeMessages(ctx context.Context, id model.RoomID, roomType model.RoomType, onUpdate func([]model.Message)) (CancelFunc, error)

	SubscribePresence(ctx context.Context, id model.RoomID, onUpdate func([]model.PresenceRecord)) (CancelFunc, error)
}
