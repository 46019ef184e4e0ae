package http_message

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	http_common "github.com/obkschool/chatgame/internal/delivery/http/common"
	ws_room "github.com/obkschool/chatgame/internal/delivery/ws/room"
	"github.com/obkschool/chatgame/internal/model"
	usecase_message "github.com/obkschool/chatgame/internal/usecase/message"
)

type Controller struct {
	uc  *usecase_message.Usecase
	hub *ws_room.Hub

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_message.Usecase,
	hub *ws_room.Hub,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		hub:    hub,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	messages := router.Group("rooms/:room_id/messages")
	messages.POST("", c.send)
	messages.GET("", c.list)
}

type SendRequestDTO struct {
	RoomType string `json:"room_type" binding:"required" enums:"waiting,game"`
	UserID   string `json:"user_id" binding:"required"`
	Username string `json:"username" binding:"required"`
	Avatar   string `json:"avatar" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

// @Summary Send a message
// @Description Appends a message to the room's waiting or game feed
// @Tags Messages
// @Accept json
// @Success 201 "Message stored"
// @Failure 400 {object} http_common.ErrorResponse "Blank text or bad room type"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Router /rooms/{room_id}/messages [post]
func (c *Controller) send(ctx *gin.Context) {
	id := model.RoomID(ctx.Param("room_id"))

	var req SendRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	roomType := model.RoomType(req.RoomType)
	if !model.IsRoomType(roomType) {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "unknown room type",
		})
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || !model.IsAvatar(req.Avatar) {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid user",
		})
		return
	}
	user := model.User{
		UserID:   req.UserID,
		Username: username,
		Avatar:   req.Avatar,
	}

	if err := c.uc.Send(ctx, id, roomType, user, req.Text); err != nil {
		switch {
		case errors.Is(err, usecase_message.ErrEmptyText):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "empty message text",
			})
		case errors.Is(err, usecase_message.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		default:
			c.logger.Error("failed to send message", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	c.hub.BroadcastMessages(ctx, id, roomType)
	ctx.Status(http.StatusCreated)
}

// @Summary List messages
// @Description Returns the room's feed for the given room type, oldest first
// @Tags Messages
// @Produce json
// @Param room_type query string true "waiting or game"
// @Success 200 {array} ws_room.MessageDTO "Ordered feed"
// @Failure 400 {object} http_common.ErrorResponse "Bad room type"
// @Router /rooms/{room_id}/messages [get]
func (c *Controller) list(ctx *gin.Context) {
	id := model.RoomID(ctx.Param("room_id"))

	roomType := model.RoomType(ctx.Query("room_type"))
	if !model.IsRoomType(roomType) {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "unknown room type",
		})
		return
	}

	msgs, err := c.uc.List(ctx, id, roomType)
	if err != nil {
		c.logger.Error("failed to list messages", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, ws_room.ToMessageDTOs(msgs))
}
