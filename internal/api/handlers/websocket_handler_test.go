package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/hwigle/reactStudy/internal/database"
	"github.com/hwigle/reactStudy/internal/models"
	"github.com/hwigle/reactStudy/internal/services"
	ws "github.com/hwigle/reactStudy/internal/websocket"
	"github.com/stretchr/testify/require"
)

func newChatServer(t *testing.T) (*httptest.Server, *services.ChatService) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.New("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	chat := services.NewChatService(db)
	hub := ws.NewHub()
	go hub.Run()

	handler := NewWebSocketHandler(hub, chat)
	r := chi.NewRouter()
	r.Get("/ws/chat/{roomId}", handler.Serve)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, chat
}

func dialRoom(t *testing.T, srv *httptest.Server, room string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat/" + room
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ws.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg ws.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func sendMessage(t *testing.T, conn *websocket.Conn, msg ws.Message) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func TestChatRelayRoundTrip(t *testing.T) {
	srv, _ := newChatServer(t)

	alice := dialRoom(t, srv, "lobby")
	sendMessage(t, alice, ws.Message{Sender: "alice", Type: models.ChatMessageJoin})

	joined := readMessage(t, alice)
	require.Equal(t, models.ChatMessageJoin, joined.Type)
	require.Equal(t, "alice", joined.Sender)
	require.Equal(t, "lobby", joined.RoomID)

	// A late joiner first receives the stored history.
	bob := dialRoom(t, srv, "lobby")
	replayed := readMessage(t, bob)
	require.Equal(t, models.ChatMessageJoin, replayed.Type)
	require.Equal(t, "alice", replayed.Sender)

	sendMessage(t, bob, ws.Message{Sender: "bob", Type: models.ChatMessageJoin})
	for _, conn := range []*websocket.Conn{alice, bob} {
		msg := readMessage(t, conn)
		require.Equal(t, models.ChatMessageJoin, msg.Type)
		require.Equal(t, "bob", msg.Sender)
	}

	sendMessage(t, alice, ws.Message{Sender: "alice", Content: "hi bob", Type: models.ChatMessageChat})
	msg := readMessage(t, bob)
	require.Equal(t, models.ChatMessageChat, msg.Type)
	require.Equal(t, "hi bob", msg.Content)
}

func TestChatRelayRoomIsolation(t *testing.T) {
	srv, _ := newChatServer(t)

	alice := dialRoom(t, srv, "room1")
	bob := dialRoom(t, srv, "room2")

	sendMessage(t, alice, ws.Message{Sender: "alice", Type: models.ChatMessageJoin})
	msg := readMessage(t, alice)
	require.Equal(t, "room1", msg.RoomID)

	// Nothing crosses over into room2.
	require.NoError(t, bob.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var stray ws.Message
	require.Error(t, bob.ReadJSON(&stray))
}

func TestLeaveBroadcastOnDisconnect(t *testing.T) {
	srv, chat := newChatServer(t)

	alice := dialRoom(t, srv, "lobby")
	sendMessage(t, alice, ws.Message{Sender: "alice", Type: models.ChatMessageJoin})
	readMessage(t, alice)

	bob := dialRoom(t, srv, "lobby")
	readMessage(t, bob) // alice's join from history
	sendMessage(t, bob, ws.Message{Sender: "bob", Type: models.ChatMessageJoin})
	readMessage(t, alice)
	readMessage(t, bob)

	require.NoError(t, bob.Close())

	left := readMessage(t, alice)
	require.Equal(t, models.ChatMessageLeave, left.Type)
	require.Equal(t, "bob", left.Sender)

	// The leave is persisted before it is broadcast.
	history, err := chat.History("lobby", 10)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	last := history[len(history)-1]
	require.Equal(t, models.ChatMessageLeave, last.Type)
	require.Equal(t, "bob", last.Sender)
}

func TestUnknownMessageType(t *testing.T) {
	srv, _ := newChatServer(t)

	conn := dialRoom(t, srv, "lobby")
	sendMessage(t, conn, ws.Message{Sender: "alice", Type: "SHOUT"})

	msg := readMessage(t, conn)
	require.Equal(t, "ERROR", msg.Type)
}
