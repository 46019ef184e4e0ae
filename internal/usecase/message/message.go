package usecase_message

import (
	"context"
	"errors"
	"strings"

	"github.com/obkschool/chatgame/internal/model"
)

var (
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
	ErrEmptyText        = errors.New("empty message text")
)

//go:generate mockery --name=MessageRepository --output=./mocks/message/repository --filename=repository.go
type MessageRepository interface {
	Append(ctx context.Context, msg model.Message) error
	ListByRoom(ctx context.Context, id model.RoomID, roomType model.RoomType) ([]model.Message, error)
}

type Usecase struct {
	MessageRepository MessageRepository
}

func New(MessageRepository MessageRepository) *Usecase {
	return &Usecase{
		MessageRepository: MessageRepository,
	}
}

// Send appends a message to the (room, roomType) feed. Seq and creation time
// are assigned by storage.
func (u *Usecase) Send(ctx context.Context, id model.RoomID, roomType model.RoomType, user model.User, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}

	if err := u.MessageRepository.Append(ctx, model.Message{
		RoomID:   id,
		RoomType: roomType,
		UserID:   user.UserID,
		Username: user.Username,
		Avatar:   user.Avatar,
		Text:     text,
	}); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// List returns the feed ordered by per-room sequence.
func (u *Usecase) List(ctx context.Context, id model.RoomID, roomType model.RoomType) ([]model.Message, error) {
	msgs, err := u.MessageRepository.ListByRoom(ctx, id, roomType)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return msgs, nil
}
