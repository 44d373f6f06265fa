package handler

import (
	"context"
	"sync"

	"github.com/yamamaalobaid/damascus-tour-guide/database"
	"github.com/yamamaalobaid/damascus-tour-guide/model"

	"github.com/gofiber/contrib/websocket"
)

var (
	chatConns = make(map[uint]map[*websocket.Conn]bool)
	chatMu    sync.Mutex
)

// ChatSocket streams new messages for one chat over a websocket. The chat
// is addressed by its public code, which doubles as the access capability.
// Messages are published to Redis by SendMessage, so fanout works across
// processes.
func ChatSocket(c *websocket.Conn) {
	code := c.Params("chatCode")

	var chat model.Chat
	if err := database.DB.Where("public_code = ?", code).First(&chat).Error; err != nil {
		c.Close()
		return
	}
	chatID := chat.ID

	defer func() {
		chatMu.Lock()
		if chatConns[chatID] != nil {
			delete(chatConns[chatID], c)
		}
		chatMu.Unlock()
		c.Close()
	}()

	chatMu.Lock()
	if chatConns[chatID] == nil {
		chatConns[chatID] = make(map[*websocket.Conn]bool)
	}
	chatConns[chatID][c] = true
	chatMu.Unlock()

	if redisCli == nil {
		return
	}
	pubsub := redisCli.Subscribe(context.Background(), chatChannel(chatID))
	defer pubsub.Close()

	// Read pump: the client never sends data here, but reading is the only
	// way to notice the peer going away. Closing done ends the write loop
	// below, which in turn closes the Redis subscription.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			payload := []byte(msg.Payload)

			chatMu.Lock()
			for conn := range chatConns[chatID] {
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					conn.Close()
					delete(chatConns[chatID], conn)
				}
			}
			chatMu.Unlock()
		case <-done:
			return
		}
	}
}
