package handlers

import (
	"testing"

	"github.com/UniversMood/planning-auto/models"
)

func pushTestNotification(hub *Hub, userID uint) {
	hub.Push(models.Notification{
		UserID:  userID,
		Title:   "Nouvelle leçon planifiée",
		Message: "Leçon de conduite avec Sophie Martin",
		Type:    models.NotificationInfo,
	})
}

func TestHubPushDeliversToLiveClient(t *testing.T) {
	hub := NewHub()
	live := &Client{hub: hub, send: make(chan []byte, 1), userID: 7}
	hub.clients[7] = []*Client{live}

	pushTestNotification(hub, 7)

	select {
	case msg := <-live.send:
		if len(msg) == 0 {
			t.Error("push payload is empty")
		}
	default:
		t.Fatal("live client did not receive the notification")
	}
	if len(hub.clients[7]) != 1 {
		t.Errorf("live client must stay registered, got %d clients", len(hub.clients[7]))
	}
}

func TestHubPushDropsDeadClient(t *testing.T) {
	hub := NewHub()
	// Канал без буфера и без читателя: запись в него никогда не пройдет.
	dead := &Client{hub: hub, send: make(chan []byte), userID: 7}
	hub.clients[7] = []*Client{dead}

	pushTestNotification(hub, 7)

	if _, ok := hub.clients[7]; ok {
		t.Fatal("dead client must be removed from the hub")
	}

	// Повторная отправка тому же пользователю не должна падать на закрытом канале.
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("repeated Push panicked: %v", r)
		}
	}()
	pushTestNotification(hub, 7)
}

func TestHubPushKeepsOtherSessions(t *testing.T) {
	hub := NewHub()
	dead := &Client{hub: hub, send: make(chan []byte), userID: 7}
	live := &Client{hub: hub, send: make(chan []byte, 1), userID: 7}
	hub.clients[7] = []*Client{dead, live}

	pushTestNotification(hub, 7)

	conns := hub.clients[7]
	if len(conns) != 1 || conns[0] != live {
		t.Fatalf("only the dead session must be dropped, got %d sessions", len(conns))
	}
}
