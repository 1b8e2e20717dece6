package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"perps-arcade-backend/internal/models"
	"perps-arcade-backend/pkg/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GameFeed pushes lobby events (game created / settled / cancelled) to
// every connected client, so open-game lists update without polling.
type GameFeed struct {
	hub *feedHub
}

type feedHub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan *FeedMessage
}

type FeedMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

func NewGameFeed() *GameFeed {
	hub := &feedHub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan *FeedMessage, 100),
	}

	go hub.run()

	return &GameFeed{hub: hub}
}

func (f *GameFeed) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("failed to upgrade to WebSocket: ", err)
		return
	}

	f.hub.register <- conn

	defer func() {
		f.hub.unregister <- conn
		conn.Close()
	}()

	for {
		var msg FeedMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket error: ", err)
			}
			break
		}

		if msg.Type == "PING" {
			conn.WriteJSON(FeedMessage{Type: "PONG", Timestamp: time.Now().UnixMilli()})
		}
	}
}

func (hub *feedHub) run() {
	for {
		select {
		case conn := <-hub.register:
			hub.clients[conn] = true

		case conn := <-hub.unregister:
			delete(hub.clients, conn)

		case message := <-hub.broadcast:
			for conn := range hub.clients {
				if err := conn.WriteJSON(message); err != nil {
					conn.Close()
					delete(hub.clients, conn)
				}
			}
		}
	}
}

func (f *GameFeed) BroadcastGameCreated(game *models.Game) {
	f.send("GAME_CREATED", game)
}

func (f *GameFeed) BroadcastGameSettled(game *models.Game) {
	f.send("GAME_SETTLED", game)
}

func (f *GameFeed) BroadcastGameCancelled(game *models.Game) {
	f.send("GAME_CANCELLED", game)
}

func (f *GameFeed) send(msgType string, game *models.Game) {
	select {
	case f.hub.broadcast <- &FeedMessage{Type: msgType, Data: game, Timestamp: time.Now().UnixMilli()}:
	default:
		// feed full; lobby events are best-effort
	}
}
