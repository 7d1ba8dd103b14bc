package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"tutorhub/internal/pkg/response"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.List)
	rg.PATCH("/notifications/:id/read", h.MarkAsRead)
	rg.POST("/notifications/read-all", h.MarkAllAsRead)
	rg.GET("/notifications/ws", h.Stream)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, unread, err := h.service.GetUserNotifications(c.Request.Context(), c.GetInt64("user_id"), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications": toResponseList(list),
		"unread_count":  unread,
	})
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid notification id")
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		if err == gorm.ErrRecordNotFound {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Notification not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to mark notification as read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"marked": true})
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	if err := h.service.MarkAllAsRead(c.Request.Context(), c.GetInt64("user_id")); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to mark notifications as read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"marked": true})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Stream upgrades to a websocket and pushes notifications to the connected
// user until they disconnect. The client is not expected to send anything;
// the read loop only detects the close.
func (h *Handler) Stream(c *gin.Context) {
	userID := c.GetInt64("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
