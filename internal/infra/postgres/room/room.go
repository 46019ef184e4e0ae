package infra_postgres_room

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/obkschool/chatgame/internal/model"
	usecase_room "github.com/obkschool/chatgame/internal/usecase/room"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

type roomDTO struct {
	ID     string `db:"id"`
	Status string `db:"status"`
}

type playerDTO struct {
	RoomID   string `db:"room_id"`
	UserID   string `db:"user_id"`
	Username string `db:"username"`
	Avatar   string `db:"avatar"`
	IsHost   bool   `db:"is_host"`
}

func (d *Driver) Create(ctx context.Context, room model.Room) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO rooms (id, status)
		VALUES (:id, :status)
	`
	_, err = tx.NamedExecContext(ctx, query, roomDTO{
		ID:     string(room.ID),
		Status: string(room.Status),
	})
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "duplicate key") {
			return usecase_room.ErrCodeConflict
		}
		return err
	}

	for _, p := range room.Players {
		if err := insertPlayer(ctx, tx, room.ID, p); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *Driver) ByID(ctx context.Context, id model.RoomID) (model.Room, error) {
	var room roomDTO

	query := `
        SELECT id, status
        FROM rooms
        WHERE id = $1
    `

	err := d.db.GetContext(ctx, &room, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Room{}, usecase_room.ErrResourceNotFound
		}
		return model.Room{}, err
	}

	var players []playerDTO

	// seat keeps the join order stable across snapshots
	queryPlayers := `
        SELECT room_id, user_id, username, avatar, is_host
        FROM players
        WHERE room_id = $1
        ORDER BY seat
    `

	if err := d.db.SelectContext(ctx, &players, queryPlayers, string(id)); err != nil {
		return model.Room{}, err
	}

	out := model.Room{
		ID:      model.RoomID(room.ID),
		Status:  model.RoomStatus(room.Status),
		Players: make([]model.Player, 0, len(players)),
	}
	for _, p := range players {
		out.Players = append(out.Players, model.Player{
			UserID:   p.UserID,
			Username: p.Username,
			Avatar:   p.Avatar,
			IsHost:   p.IsHost,
		})
	}
	return out, nil
}

func (d *Driver) AddPlayer(ctx context.Context, id model.RoomID, player model.Player) error {
	err := insertPlayer(ctx, d.db, id, player)
	if err != nil {
		if strings.Contains(err.Error(), "foreign key") {
			return usecase_room.ErrResourceNotFound
		}
		return err
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func insertPlayer(ctx context.Context, e execer, id model.RoomID, p model.Player) error {
	query := `
        INSERT INTO players (room_id, user_id, username, avatar, is_host)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (room_id, user_id) DO NOTHING
    `

	_, err := e.ExecContext(ctx, query, string(id), p.UserID, p.Username, p.Avatar, p.IsHost)
	return err
}

func (d *Driver) RemovePlayer(ctx context.Context, id model.RoomID, userID string) (int, error) {
	query := `
        DELETE FROM players
        WHERE room_id = $1 AND user_id = $2
    `

	result, err := d.db.ExecContext(ctx, query, string(id), userID)
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if rowsAffected == 0 {
		var exists bool
		queryExists := `SELECT EXISTS(SELECT 1 FROM rooms WHERE id = $1)`
		if err := d.db.GetContext(ctx, &exists, queryExists, string(id)); err != nil {
			return 0, err
		}
		if !exists {
			return 0, usecase_room.ErrResourceNotFound
		}
	}

	var remaining int
	queryCount := `SELECT COUNT(*) FROM players WHERE room_id = $1`
	if err := d.db.GetContext(ctx, &remaining, queryCount, string(id)); err != nil {
		return 0, err
	}

	return remaining, nil
}

func (d *Driver) SetStatus(ctx context.Context, id model.RoomID, status model.RoomStatus) error {
	query := `
        UPDATE rooms
        SET status = $1
        WHERE id = $2
    `

	result, err := d.db.ExecContext(ctx, query, string(status), string(id))
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}

	return nil
}

func (d *Driver) Delete(ctx context.Context, id model.RoomID) error {
	query := `
        DELETE FROM rooms
        WHERE id = $1
    `

	result, err := d.db.ExecContext(ctx, query, string(id))
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}

	return nil
}
