// planning-auto/internal/handlers/notification_hub.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/UniversMood/planning-auto/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Для разработки разрешаем все источники
	},
}

// GlobalHub - единственный экземпляр хаба для всего приложения.
var GlobalHub = NewHub()

// Client - одно websocket-подключение пользователя. Уведомления идут только
// от сервера к клиенту, входящие сообщения не обрабатываются.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// Hub отслеживает открытые подключения и доставляет уведомления адресату,
// если тот сейчас онлайн. Доставка необязательна: уведомление в любом случае
// лежит в базе и будет показано при следующем запросе списка.
type Hub struct {
	clients    map[uint][]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uint][]*Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.userID] = append(h.clients[client.userID], client)
			h.mu.Unlock()
			slog.Info("Notification client registered", "userID", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			conns := h.clients[client.userID]
			for i, c := range conns {
				if c == client {
					h.clients[client.userID] = append(conns[:i], conns[i+1:]...)
					close(client.send)
					break
				}
			}
			if len(h.clients[client.userID]) == 0 {
				delete(h.clients, client.userID)
			}
			h.mu.Unlock()
			slog.Info("Notification client unregistered", "userID", client.userID)
		}
	}
}

// Push отправляет уведомление во все открытые сессии его владельца.
func (h *Hub) Push(notification models.Notification) {
	messageBytes, err := json.Marshal(gin.H{
		"type":    "notification",
		"payload": notification,
	})
	if err != nil {
		slog.Error("Failed to marshal notification for push", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.clients[notification.UserID]
	alive := conns[:0]
	for _, client := range conns {
		select {
		case client.send <- messageBytes:
			alive = append(alive, client)
		default:
			// Переполненный канал означает мертвое подключение. Клиент сразу
			// убирается из хаба, иначе следующий Push упадет на закрытом канале.
			close(client.send)
		}
	}
	if len(alive) == 0 {
		delete(h.clients, notification.UserID)
	} else {
		h.clients[notification.UserID] = alive
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		// Клиент ничего не присылает, но читать нужно, чтобы замечать закрытие.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("Unexpected websocket close error", "error", err)
			}
			break
		}
	}
}

func (c *Client) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			slog.Error("Failed to write message to websocket", "error", err)
			return
		}
	}
}

// NotificationWSEndpoint открывает websocket для живой доставки уведомлений.
func NotificationWSEndpoint(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}

	client := &Client{
		hub:    GlobalHub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID.(uint),
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
