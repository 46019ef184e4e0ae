package usecase_room

import (
	"context"
	"errors"
	"math/rand"
	"strings"

	"github.com/obkschool/chatgame/internal/model"
)

var (
	ErrCodeConflict     = errors.New("room id conflict")
	ErrRoomsUnavailable = errors.New("no available rooms")
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
	ErrNotHost          = errors.New("caller is not the host")
	ErrBadStatus        = errors.New("unknown room status")
)

//go:generate mockery --name=RoomRepository --output=./mocks/room/repository --filename=repository.go
type RoomRepository interface {
	Create(ctx context.Context, room model.Room) error
	ByID(ctx context.Context, id model.RoomID) (model.Room, error)
	AddPlayer(ctx context.Context, id model.RoomID, player model.Player) error
	RemovePlayer(ctx context.Context, id model.RoomID, userID string) (remaining int, err error)
	SetStatus(ctx context.Context, id model.RoomID, status model.RoomStatus) error
	Delete(ctx context.Context, id model.RoomID) error
}

type Usecase struct {
	RoomRepository RoomRepository
}

func New(RoomRepository RoomRepository) *Usecase {
	return &Usecase{
		RoomRepository: RoomRepository,
	}
}

// Create allocates a fresh room with the caller as its sole, host player.
// Assuming that generated ids can conflict. Retrying...
func (u *Usecase) Create(ctx context.Context, user model.User) (model.Room, error) {
	var retries = 3
	for retries > 0 {
		room := model.Room{
			ID:     u.buildRoomID(),
			Status: model.StatusWaiting,
			Players: []model.Player{{
				UserID:   user.UserID,
				Username: user.Username,
				Avatar:   user.Avatar,
				IsHost:   true,
			}},
		}
		if err := u.RoomRepository.Create(ctx, room); err != nil {
			if errors.Is(err, ErrCodeConflict) {
				retries--
				continue
			}
			return model.Room{}, errors.Join(ErrInternal, err)
		}
		return room, nil
	}
	return model.Room{}, ErrRoomsUnavailable
}

// Join appends the user as a non-host player and returns a fresh snapshot.
// Joining a room you are already in is a no-op.
func (u *Usecase) Join(ctx context.Context, id model.RoomID, user model.User) (model.Room, error) {
	room, err := u.RoomRepository.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Room{}, ErrResourceNotFound
		}
		return model.Room{}, errors.Join(ErrInternal, err)
	}

	if !room.HasPlayer(user.UserID) {
		if err := u.RoomRepository.AddPlayer(ctx, id, model.Player{
			UserID:   user.UserID,
			Username: user.Username,
			Avatar:   user.Avatar,
			IsHost:   false,
		}); err != nil {
			if errors.Is(err, ErrResourceNotFound) {
				return model.Room{}, ErrResourceNotFound
			}
			return model.Room{}, errors.Join(ErrInternal, err)
		}
	}

	room, err = u.RoomRepository.ByID(ctx, id)
	if err != nil {
		return model.Room{}, errors.Join(ErrInternal, err)
	}
	return room, nil
}

// Leave removes the player and garbage-collects the room once it empties.
// Leaving a room you are not in (or one that is already gone) is not an error.
func (u *Usecase) Leave(ctx context.Context, id model.RoomID, userID string) (closed bool, err error) {
	remaining, err := u.RoomRepository.RemovePlayer(ctx, id, userID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return false, nil
		}
		return false, errors.Join(ErrInternal, err)
	}

	if remaining == 0 {
		if err := u.RoomRepository.Delete(ctx, id); err != nil && !errors.Is(err, ErrResourceNotFound) {
			return false, errors.Join(ErrInternal, err)
		}
		return true, nil
	}
	return false, nil
}

// SetStatus transitions the room. Only the host may do this; the check lives
// here, not in any client.
func (u *Usecase) SetStatus(ctx context.Context, id model.RoomID, status model.RoomStatus, callerID string) error {
	if !model.IsRoomStatus(status) {
		return ErrBadStatus
	}

	room, err := u.RoomRepository.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	if room.HostID() != callerID {
		return ErrNotHost
	}

	if err := u.RoomRepository.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (u *Usecase) Get(ctx context.Context, id model.RoomID) (model.Room, error) {
	room, err := u.RoomRepository.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Room{}, ErrResourceNotFound
		}
		return model.Room{}, errors.Join(ErrInternal, err)
	}
	return room, nil
}

func (u *Usecase) buildRoomID() model.RoomID {
	const (
		prefix  = "room_"
		idLen   = 8
		charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	)
	var builder strings.Builder
	builder.Grow(len(prefix) + idLen)
	builder.WriteString(prefix)

	for i := 0; i < idLen; i++ {
		builder.WriteByte(charset[rand.Intn(len(charset))])
	}

	return model.RoomID(builder.String())
}
