package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"ops-collab-be/internal/dto"
	"ops-collab-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLogger struct{}

func (stubLogger) Debug(module, message string, details map[string]interface{}) {}
func (stubLogger) Info(module, message string, details map[string]interface{})  {}
func (stubLogger) Warn(module, message string, details map[string]interface{})  {}
func (stubLogger) Error(module, message string, details map[string]interface{}) {}
func (stubLogger) Sync() error                                                  { return nil }
func (stubLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (stubLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

func startHub(t *testing.T, rdb *redis.Client) *Hub {
	t.Helper()
	h := NewHub(rdb, stubLogger{})
	go h.Run()
	return h
}

func registerClient(t *testing.T, h *Hub, userID uuid.UUID, buffer int) *Client {
	t.Helper()
	c := &Client{Hub: h, UserID: userID, Send: make(chan []byte, buffer)}
	h.register <- c

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		h.mu.RLock()
		n := len(h.clients[userID])
		h.mu.RUnlock()
		if n > 0 {
			return c
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("client never registered")
	return nil
}

func TestSendDeliversOncePerCall(t *testing.T) {
	h := startHub(t, nil)
	userID := uuid.New()
	client := registerClient(t, h, userID, 4)

	h.Send(userID, dto.NotificationResponse{Title: "first"})
	h.Send(userID, dto.NotificationResponse{Title: "second"})

	require.Len(t, client.Send, 2)
	var msg struct {
		Type string                   `json:"type"`
		Data dto.NotificationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(<-client.Send, &msg))
	assert.Equal(t, "notification", msg.Type)
	assert.Equal(t, "first", msg.Data.Title)
}

func TestSlowClientIsDroppedWithoutPanic(t *testing.T) {
	h := startHub(t, nil)
	userID := uuid.New()
	client := registerClient(t, h, userID, 1)

	// Wedge the client so the next pushes find a full buffer.
	client.Send <- []byte("backlog")

	assert.NotPanics(t, func() {
		h.Send(userID, dto.NotificationResponse{Title: "dropped"})
		h.Send(userID, dto.NotificationResponse{Title: "also dropped"})
	})

	// Run tears the wedged client down and closes its channel once.
	<-client.Send
	select {
	case _, open := <-client.Send:
		assert.False(t, open, "channel must be closed after unregistration")
	case <-time.After(time.Second):
		t.Fatal("channel was never closed")
	}

	h.mu.RLock()
	_, stillRegistered := h.clients[userID]
	h.mu.RUnlock()
	assert.False(t, stillRegistered)
}

func TestSlowClientDuringBroadcast(t *testing.T) {
	h := startHub(t, nil)
	wedgedID := uuid.New()
	healthyID := uuid.New()
	wedged := registerClient(t, h, wedgedID, 1)
	healthy := registerClient(t, h, healthyID, 4)

	wedged.Send <- []byte("backlog")

	assert.NotPanics(t, func() {
		h.Broadcast(dto.NotificationResponse{Title: "all hands"})
	})

	require.Len(t, healthy.Send, 1)

	<-wedged.Send
	select {
	case _, open := <-wedged.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("wedged client channel was never closed")
	}
}

func TestClusteredSendSkipsDirectLocalDelivery(t *testing.T) {
	// Unreachable Redis: publishes go nowhere and the subscription stays
	// silent, so any message arriving locally came from a direct push.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	h := startHub(t, rdb)
	userID := uuid.New()
	client := registerClient(t, h, userID, 4)

	h.Send(userID, dto.NotificationResponse{Title: "clustered"})
	h.Broadcast(dto.NotificationResponse{Title: "clustered broadcast"})

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, client.Send, "cluster mode delivers through the subscription only")
}
