package usecase_presence

import (
	"context"
	"errors"
	"time"

	"github.com/obkschool/chatgame/internal/model"
)

var ErrInternal = errors.New("internal error")

//go:generate mockery --name=PresenceRepository --output=./mocks/presence/repository --filename=repository.go
type PresenceRepository interface {
	Upsert(ctx context.Context, rec model.PresenceRecord) error
	ListByRoom(ctx context.Context, id model.RoomID) ([]model.PresenceRecord, error)
	DropRoom(ctx context.Context, id model.RoomID) error
}

type Usecase struct {
	PresenceRepository PresenceRepository

	now func() time.Time
}

type Option func(*Usecase)

func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		u.now = now
	}
}

func New(PresenceRepository PresenceRepository, opts ...Option) *Usecase {
	u := &Usecase{
		PresenceRepository: PresenceRepository,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Update upserts the caller's presence record with LastActive stamped here.
// Records are never deleted on write; readers judge staleness themselves.
func (u *Usecase) Update(ctx context.Context, id model.RoomID, user model.User, isTyping bool) error {
	if err := u.PresenceRepository.Upsert(ctx, model.PresenceRecord{
		RoomID:     id,
		UserID:     user.UserID,
		Username:   user.Username,
		Avatar:     user.Avatar,
		IsTyping:   isTyping,
		LastActive: u.now(),
	}); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (u *Usecase) List(ctx context.Context, id model.RoomID) ([]model.PresenceRecord, error) {
	recs, err := u.PresenceRepository.ListByRoom(ctx, id)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return recs, nil
}

// Drop clears all presence for a room. Called when the room itself is closed.
func (u *Usecase) Drop(ctx context.Context, id model.RoomID) error {
	if err := u.PresenceRepository.DropRoom(ctx, id); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}
