package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"taskboard/internal/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 64
)

const (
	MessageNotification = "notification"
	MessageRefresh      = "refresh"
)

type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub владеет набором подключённых клиентов и рассылает им сообщения.
// Набор клиентов меняется только в горутине Run
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	count      atomic.Int64
	upgrader   websocket.Upgrader
}

func NewHub(allowedOrigins []string) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, sendBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for c := range h.clients {
				h.drop(c)
			}
			logger.Info("Notify: Хаб остановлен")
			return
		case c := <-h.register:
			h.clients[c] = true
			h.count.Add(1)
			logger.Debug("Notify: Клиент подключён", zap.Int64("clients", h.count.Load()))
		case c := <-h.unregister:
			if h.clients[c] {
				h.drop(c)
				logger.Debug("Notify: Клиент отключён", zap.Int64("clients", h.count.Load()))
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					logger.Warn("Notify: Буфер клиента переполнен, отключаем")
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Add(-1)
}

func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

func (h *Hub) Notify(message string, kind Kind) {
	h.publish(Message{Type: MessageNotification, Data: Notification{Message: message, Kind: kind}})
}

// Refreshed сообщает клиентам новое значение счётчика обновлений
func (h *Hub) Refreshed(key int64) {
	h.publish(Message{Type: MessageRefresh, Data: map[string]int64{"refreshKey": key}})
}

func (h *Hub) publish(m Message) {
	data, err := json.Marshal(m)
	if err != nil {
		logger.Error("Notify: Ошибка сериализации сообщения", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Notify: Очередь рассылки переполнена, сообщение отброшено", zap.String("type", m.Type))
	}
}

// ServeWS переводит соединение на websocket и подписывает клиента на рассылку
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Notify: Ошибка перехода на websocket", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump только поддерживает соединение: входящие сообщения клиентов не используются
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("Notify: Ошибка чтения websocket", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
