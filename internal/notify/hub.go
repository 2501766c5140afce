package notify

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// DefaultClientBuffer размер очереди сообщений одного клиента
const DefaultClientBuffer = 64

// Hub рассылает события подписчикам групп внутри одного процесса
// Publish никогда не блокируется: клиент с переполненной очередью отключается
type Hub struct {
	mu      sync.RWMutex
	groups  map[string]map[*Client]struct{}
	clients map[*Client][]string

	buffer  int
	metrics Metrics
	logger  Logger
}

// NewHub создает новый хаб; buffer <= 0 заменяется DefaultClientBuffer, metrics может быть nil
func NewHub(buffer int, metrics Metrics, logger Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultClientBuffer
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &Hub{
		groups:  make(map[string]map[*Client]struct{}),
		clients: make(map[*Client][]string),
		buffer:  buffer,
		metrics: metrics,
		logger:  logger,
	}
}

type noopMetrics struct{}

func (noopMetrics) IncNotification(string, string) {}

// Serve регистрирует соединение в группах и обслуживает его до закрытия
func (h *Hub) Serve(conn *websocket.Conn, id string, groups ...string) {
	client := newClient(id, conn, h.buffer)
	h.register(client, groups...)
	h.logger.Info("Hub: client %s subscribed to %v", id, groups)

	go client.writePump()
	client.readPump()

	h.unregister(client)
	h.logger.Info("Hub: client %s disconnected", id)
}

func (h *Hub) register(c *Client, groups ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, g := range groups {
		members, ok := h.groups[g]
		if !ok {
			members = make(map[*Client]struct{})
			h.groups[g] = members
		}
		members[c] = struct{}{}
	}
	h.clients[c] = append(h.clients[c], groups...)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	groups, ok := h.clients[c]
	if !ok {
		return
	}

	for _, g := range groups {
		delete(h.groups[g], c)
		if len(h.groups[g]) == 0 {
			delete(h.groups, g)
		}
	}
	delete(h.clients, c)
	c.close()
}

// Publish рассылает событие во все группы, определенные Route
// Ошибки сериализации логируются и не возвращаются вызывающему
func (h *Hub) Publish(event domain.Event) {
	groups := Route(event)
	if len(groups) == 0 {
		return
	}

	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Hub: failed to marshal %s event: %v", event.Name(), err)
		return
	}

	for _, g := range groups {
		h.Broadcast(g, message)
	}
}

// Broadcast отправляет сообщение всем клиентам группы без ожидания
func (h *Hub) Broadcast(group string, message []byte) {
	var slow []*Client

	h.mu.RLock()
	for c := range h.groups[group] {
		select {
		case c.Send <- message:
			h.metrics.IncNotification(group, "delivered")
		default:
			slow = append(slow, c)
			h.metrics.IncNotification(group, "dropped")
		}
	}
	h.mu.RUnlock()

	if len(slow) == 0 {
		return
	}

	h.mu.Lock()
	for _, c := range slow {
		h.logger.Warn("Hub: dropping slow client %s from %s", c.ID, group)
		h.removeLocked(c)
	}
	h.mu.Unlock()
}

// ClientCount возвращает количество подписчиков группы
func (h *Hub) ClientCount(group string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[group])
}

// Close отключает всех клиентов
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		h.removeLocked(c)
	}
}
