package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// AwardEvent is pushed to a connected mini-app client the moment one of its
// awards lands, so dashboards update without polling.
type AwardEvent struct {
	Kind        string   `json:"kind"`
	Points      int      `json:"points"`
	TotalPoints int      `json:"total_points"`
	Badges      []string `json:"badges,omitempty"`
}

type awardDelivery struct {
	UserID uuid.UUID
	Event  AwardEvent
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var awards = make(chan awardDelivery, 64)

// PushAward queues an event for the user's live connection, if any. Never
// blocks the request path.
func PushAward(userID uuid.UUID, event AwardEvent) {
	select {
	case awards <- awardDelivery{UserID: userID, Event: event}:
	default:
		log.Printf("⚠️ Award event dropped for %s: hub queue full", userID)
	}
}

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case delivery := <-awards:
			clientsMu.RLock()
			conn, ok := clients[delivery.UserID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(delivery.Event); err != nil {
				log.Printf("Error sending award event to client %s: %v", delivery.UserID, err)
				conn.Close()
				clientsMu.Lock()
				delete(clients, delivery.UserID)
				clientsMu.Unlock()
			}
		}
	}
}
