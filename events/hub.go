package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/pos-app/models"
)

// Event types pushed to connected dashboard clients. The dashboard itself
// still refreshes by pulling; these only tell it when a pull is worthwhile.
const (
	EventOrderCreated    = "order_created"
	EventOrderUpdated    = "order_updated"
	EventPaymentRecorded = "payment_recorded"
	EventReceiptCreated  = "receipt_created"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua dashboard client untuk broadcast
type Hub struct {
	clients map[*websocket.Conn]struct{}
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]struct{}),
}

// RegisterClient -> menambahkan connection ke set
func RegisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = struct{}{}
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreated announces a newly persisted order (open or paid).
func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{
		Event: EventOrderCreated,
		Data:  order,
	})
}

// BroadcastOrderUpdated announces an edited order.
func BroadcastOrderUpdated(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdated,
		Data:  order,
	})
}

// BroadcastPaymentRecorded announces a settled payment together with its
// order.
func BroadcastPaymentRecorded(payment models.Payment, order models.Order) {
	broadcast(Message{
		Event: EventPaymentRecorded,
		Data: map[string]interface{}{
			"payment": payment,
			"order":   order,
		},
	})
}

// BroadcastReceiptCreated announces a generated receipt.
func BroadcastReceiptCreated(receipt models.Receipt) {
	broadcast(Message{
		Event: EventReceiptCreated,
		Data:  receipt,
	})
}

// broadcast -> fungsi internal untuk mengirim pesan
func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
