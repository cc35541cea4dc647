package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/5h3r42/savzix-store-antigravity/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

// OrderWebSocketHandler is the backoffice live feed: every new order is
// pushed to connected dashboards.
func OrderWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			wsMu.Lock()
			delete(wsClients, conn)
			wsMu.Unlock()
			break
		}
	}
}

// BroadcastNewOrder loads the order and fans it out to every connected
// client. Dead connections are dropped on the next read, not here.
func BroadcastNewOrder(orders *store.Orders) func(orderID string) {
	return func(orderID string) {
		order, err := orders.GetByID(orderID)
		if err != nil {
			return
		}
		data, err := json.Marshal(order)
		if err != nil {
			return
		}

		wsMu.Lock()
		defer wsMu.Unlock()
		for client := range wsClients {
			client.WriteMessage(websocket.TextMessage, data)
		}
	}
}
