package roomhandler

import (
	"net/http"

	"chatrelay/internal/chat"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	registry *chat.Registry
}

func New(registry *chat.Registry) *Handler { return &Handler{registry: registry} }

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/rooms", h.list)
	r.GET("/rooms/:id", h.info)
}

// @Summary		List active rooms
// @Description	Returns every room that currently has members, with its user count.
// @Tags			Rooms
// @Success		200	{array}	RoomSummary
// @Router			/rooms [get]
func (h *Handler) list(c *gin.Context) {
	rooms := h.registry.Rooms()
	out := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomSummary{RoomID: r.ID(), UserCount: r.MemberCount()})
	}
	c.JSON(http.StatusOK, out)
}

// @Summary		Get room details
// @Description	Returns the member names of one active room.
// @Tags			Rooms
// @Param			id	path		string	true	"Room ID"	default(lobby)
// @Success		200	{object}	RoomDetail
// @Failure		404	{object}	ErrorResponse
// @Router			/rooms/{id} [get]
func (h *Handler) info(c *gin.Context) {
	room, ok := h.registry.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}
	c.JSON(http.StatusOK, RoomDetail{
		RoomID:    room.ID(),
		UserCount: room.MemberCount(),
		Users:     room.Members(),
	})
}
