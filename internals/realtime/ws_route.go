// file: internals/realtime/ws_route.go
package realtime

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	helperAuth "github.com/mardavsj/wisestudent-sub021/internals/helpers/auth"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// WebsocketRoute mounts GET /ws. Must sit behind the auth middleware so the
// locals are populated; each connection joins its user room plus, for
// school-scoped roles, the school room.
func WebsocketRoute(router fiber.Router, hub *Hub) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals(helperAuth.LocUserID).(string)
		schoolID, _ := conn.Locals(helperAuth.LocSchoolID).(string)

		rooms := []string{UserRoom(userID)}
		if schoolID != "" {
			rooms = append(rooms, SchoolRoom(schoolID))
		}

		client := NewClient(rooms...)
		hub.Register(client)
		defer hub.Unregister(client)

		go writePump(conn, client)
		readPump(conn)
	}))
}

func readPump(conn *websocket.Conn) {
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		// inbound frames are ignored; the feed is one-way
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()
	for {
		select {
		case msg, ok := <-client.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[WARN] ws write: %v", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
