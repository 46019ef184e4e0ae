package http_presence

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	http_common "github.com/obkschool/chatgame/internal/delivery/http/common"
	ws_room "github.com/obkschool/chatgame/internal/delivery/ws/room"
	"github.com/obkschool/chatgame/internal/model"
	usecase_presence "github.com/obkschool/chatgame/internal/usecase/presence"
)

type Controller struct {
	uc  *usecase_presence.Usecase
	hub *ws_room.Hub

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_presence.Usecase,
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
	presence := router.Group("rooms/:room_id/presence")
	presence.PUT("", c.update)
	presence.GET("", c.list)
}

type UpdateRequestDTO struct {
	UserID   string `json:"user_id" binding:"required"`
	Username string `json:"username" binding:"required"`
	Avatar   string `json:"avatar" binding:"required"`
	IsTyping *bool  `json:"is_typing" binding:"required"`
}

// @Summary Update presence
// @Description Upserts the caller's typing flag and activity timestamp
// @Tags Presence
// @Accept json
// @Success 204 "Presence recorded"
// @Failure 400 {object} http_common.ErrorResponse "Malformed user"
// @Router /rooms/{room_id}/presence [put]
func (c *Controller) update(ctx *gin.Context) {
	id := model.RoomID(ctx.Param("room_id"))

	var req UpdateRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
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

	if err := c.uc.Update(ctx, id, user, *req.IsTyping); err != nil {
		c.logger.Error("failed to update presence", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	c.hub.BroadcastPresence(ctx, id)
	ctx.Status(http.StatusNoContent)
}

// @Summary List presence
// @Description Returns every presence record for the room, stale ones included
// @Tags Presence
// @Produce json
// @Success 200 {array} ws_room.PresenceDTO "Presence records"
// @Router /rooms/{room_id}/presence [get]
func (c *Controller) list(ctx *gin.Context) {
	id := model.RoomID(ctx.Param("room_id"))

	recs, err := c.uc.List(ctx, id)
	if err != nil {
		c.logger.Error("failed to list presence", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, ws_room.ToPresenceDTOs(recs))
}
