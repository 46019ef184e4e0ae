package http_room

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	http_common "github.com/obkschool/chatgame/internal/delivery/http/common"
	ws_room "github.com/obkschool/chatgame/internal/delivery/ws/room"
	"github.com/obkschool/chatgame/internal/model"
	usecase_room "github.com/obkschool/chatgame/internal/usecase/room"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// PresenceDropper clears presence records once a room is gone.
type PresenceDropper interface {
	Drop(ctx context.Context, id model.RoomID) error
}

type Controller struct {
	uc       *usecase_room.Usecase
	presence PresenceDropper
	hub      *ws_room.Hub

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_room.Usecase,
	presence PresenceDropper,
	hub *ws_room.Hub,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:       uc,
		presence: presence,
		hub:      hub,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms")
	rooms.POST("", c.create)

	room := router.Group("rooms/:room_id")
	room.GET("", c.get)
	room.GET("/ws", c.roomWS)
	room.POST("/players", c.join)
	room.DELETE("/players/:user_id", c.leave)
	room.PUT("/status", c.setStatus)
}

// UserDTO carries the caller's session identity with every mutation. There is
// no account system, identity lives only as long as the session.
type UserDTO struct {
	UserID   string `json:"user_id" binding:"required"`
	Username string `json:"username" binding:"required"`
	Avatar   string `json:"avatar" binding:"required"`
}

func (dto UserDTO) toModel() (model.User, bool) {
	username := strings.TrimSpace(dto.Username)
	if username == "" || !model.IsAvatar(dto.Avatar) || dto.UserID == "" {
		return model.User{}, false
	}
	return model.User{
		UserID:   dto.UserID,
		Username: username,
		Avatar:   dto.Avatar,
	}, true
}

// @Summary Create a room
// @Description Creates a room in waiting status with the caller as host
// @Tags Rooms
// @Accept json
// @Produce json
// @Success 201 {object} ws_room.RoomDTO "Room created"
// @Failure 400 {object} http_common.ErrorResponse "Malformed user"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /rooms [post]
func (c *Controller) create(ctx *gin.Context) {
	var req UserDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}
	user, ok := req.toModel()
	if !ok {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid user",
		})
		return
	}

	room, err := c.uc.Create(ctx, user)
	if err != nil {
		c.logger.Error("failed to create room", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_room.ErrRoomsUnavailable):
			ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
				Message: "unavailable",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusCreated, ws_room.ToRoomDTO(room))
}

// @Summary Get a room snapshot
// @Tags Rooms
// @Produce json
// @Success 200 {object} ws_room.RoomDTO "Room snapshot"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Router /rooms/{room_id} [get]
func (c *Controller) get(ctx *gin.Context) {
	id := model.RoomID(ctx.Param("room_id"))

	room, err := c.uc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to get room", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, ws_room.ToRoomDTO(room))
}

// @Summary Join a room
// @Description Appends the caller as a non-host player and returns a fresh snapshot
// @Tags Rooms
// @Accept json
// @Produce json
// @Success 200 {object} ws_room.RoomDTO "Room snapshot including the joiner"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Router /rooms/{room_id}/players [post]
func (c *Controller) join(ctx *gin.Context) {
	id := model.RoomID(ctx.Param("room_id"))

	var req UserDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}
	user, ok := req.toModel()
	if !ok {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid user",
		})
		return
	}

	room, err := c.uc.Join(ctx, id, user)
	if err != nil {
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to join room", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	c.hub.BroadcastRoom(ctx, id)
	ctx.JSON(http.StatusOK, ws_room.ToRoomDTO(room))
}

// @Summary Leave a room
// @Description Removes the player. Leaving a room you are not in is a no-op.
// @Tags Rooms
// @Success 204 "Player removed"
// @Router /rooms/{room_id}/players/{user_id} [delete]
func (c *Controller) leave(ctx *gin.Context) {
	id := model.RoomID(ctx.Param("room_id"))
	userID := ctx.Param("user_id")

	closed, err := c.uc.Leave(ctx, id, userID)
	if err != nil {
		c.logger.Error("failed to leave room", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	c.hub.BroadcastRoom(ctx, id)
	if closed {
		if err := c.presence.Drop(ctx, id); err != nil {
			c.logger.Warn("failed to drop presence for closed room",
				slog.String("room_id", string(id)),
				slog.String("error", err.Error()),
			)
		}
		c.logger.Info("room closed", slog.String("room_id", string(id)))
	}

	ctx.Status(http.StatusNoContent)
}

type StatusRequestDTO struct {
	Status string `json:"status" binding:"required" enums:"waiting,playing"`
}

// @Summary Update room status
// @Description Transitions the room status. Host only, the caller is identified by X-user-token.
// @Tags Rooms
// @Accept json
// @Success 204 "Status updated"
// @Failure 401 {object} http_common.ErrorResponse "Missing token"
// @Failure 403 {object} http_common.ErrorResponse "Caller is not the host"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Security UserToken
// @Router /rooms/{room_id}/status [put]
func (c *Controller) setStatus(ctx *gin.Context) {
	id := model.RoomID(ctx.Param("room_id"))

	userToken := ctx.GetHeader("X-user-token")
	if userToken == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "X-user-token not found",
		})
		return
	}

	var req StatusRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	err := c.uc.SetStatus(ctx, id, model.RoomStatus(req.Status), userToken)
	if err != nil {
		c.logger.Error("failed to set status", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_room.ErrBadStatus):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "unknown status",
			})
		case errors.Is(err, usecase_room.ErrNotHost):
			ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
				Message: "only the host may change room status",
			})
		case errors.Is(err, usecase_room.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	c.hub.BroadcastRoom(ctx, id)
	ctx.Status(http.StatusNoContent)
}

func (c *Controller) roomWS(ctx *gin.Context) {
	id := model.RoomID(ctx.Param("room_id"))

	if _, err := c.uc.Get(ctx, id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("failed to upgrade to websocket",
			slog.String("error", err.Error()),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	client := &ws_room.Client{
		Hub:    c.hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		RoomID: id,
	}

	c.hub.RegisterClient(client)

	go c.hub.StartClientReading(client)
	go c.hub.StartClientWriting(client)
}
