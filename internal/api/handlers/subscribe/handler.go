package subscribe

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/notify"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgUnknownGroup  = "неизвестный канал уведомлений"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Handler struct {
	hub    Hub
	logger Logger
}

func NewHandler(hub Hub, logger Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// Admin GET /ws/admin/{group}; доступ проверяет RequireStaff
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	group := mux.Vars(r)["group"]
	if !notify.IsAdminGroup(group) {
		h.logger.Warn("GET /ws/admin/{group} - Unknown group: %q", group)
		handlers.RespondNotFound(w, msgUnknownGroup)
		return
	}

	h.serve(w, r, group)
}

// Parking GET /ws/parking: изменения статусов мест для всех пользователей
func (h *Handler) Parking(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, notify.GroupParkingUpdates)
}

// Me GET /ws/me: события бронирований, оплат и автомобилей текущего пользователя
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	h.serve(w, r, notify.UserGroup(principal.UserID))
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, groups ...string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		h.logger.Warn("GET %s - WebSocket upgrade failed: %v", r.URL.Path, err)
		return
	}

	id := middleware.GetRequestID(r.Context())
	if id == "" {
		id = uuid.NewString()
	}

	h.hub.Serve(conn, id, groups...)
}
