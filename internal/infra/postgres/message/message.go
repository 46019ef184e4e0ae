package infra_postgres_message

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/obkschool/chatgame/internal/model"
	usecase_message "github.com/obkschool/chatgame/internal/usecase/message"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type messageDTO struct {
	ID        int64     `db:"id"`
	RoomID    string    `db:"room_id"`
	RoomType  string    `db:"room_type"`
	UserID    string    `db:"user_id"`
	Username  string    `db:"username"`
	Avatar    string    `db:"avatar"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}

func (d *Driver) Append(ctx context.Context, msg model.Message) error {
	query := `
		INSERT INTO messages (room_id, room_type, user_id, username, avatar, body)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := d.db.ExecContext(ctx, query,
		string(msg.RoomID),
		string(msg.RoomType),
		msg.UserID,
		msg.Username,
		msg.Avatar,
		msg.Text,
	)
	if err != nil {
		if strings.Contains(err.Error(), "foreign key") {
			return usecase_message.ErrResourceNotFound
		}
		return err
	}
	return nil
}

func (d *Driver) ListByRoom(ctx context.Context, id model.RoomID, roomType model.RoomType) ([]model.Message, error) {
	var rows []messageDTO

	// id is a BIGSERIAL, so feed order is write order regardless of clocks
	query := `
		SELECT id, room_id, room_type, user_id, username, avatar, body, created_at
		FROM messages
		WHERE room_id = $1 AND room_type = $2
		ORDER BY id
	`

	if err := d.db.SelectContext(ctx, &rows, query, string(id), string(roomType)); err != nil {
		return nil, err
	}

	msgs := make([]model.Message, 0, len(rows))
	for _, row := range rows {
		msgs = append(msgs, model.Message{
			RoomID:    model.RoomID(row.RoomID),
			RoomType:  model.RoomType(row.RoomType),
			UserID:    row.UserID,
			Username:  row.Username,
			Avatar:    row.Avatar,
			Text:      row.Body,
			Seq:       row.ID,
			CreatedAt: row.CreatedAt,
		})
	}
	return msgs, nil
}
