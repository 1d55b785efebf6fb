package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
)

func TestHub_BroadcastReachesClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	hub := NewHub()
	hub.Register(r.Group(""))

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// wait for the server side to register the connection
	deadline := time.Now().Add(time.Second)
	for {
		hub.mu.Lock()
		n := len(hub.conns)
		hub.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("connection never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	want := Update{
		Position:      domain.Position{Lat: 40.7128, Lng: -74.0060},
		PendingAlerts: 2,
		Device:        domain.DeviceHealth{Battery: 82, Status: domain.DeviceOnline},
	}
	hub.Broadcast(want)

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var got Update
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Position != want.Position || got.PendingAlerts != 2 {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestHub_DropsClosedConnections(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	hub := NewHub()
	hub.Register(r.Group(""))

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn.Close()

	// broadcasting to a closed connection prunes it
	deadline := time.Now().Add(time.Second)
	for {
		hub.Broadcast(Update{})
		hub.mu.Lock()
		n := len(hub.conns)
		hub.mu.Unlock()
		if n == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("closed connection never pruned")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
