package websocket

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/robotalks/imu.go/pkg/frame"
	"github.com/robotalks/imu.go/pkg/msgs"
)

func waitClients(t *testing.T, hub *Hub, n int) {
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expect %d clients, got %d", n, hub.Clients())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + SamplesPath
	conn, err := websocket.Dial(url, "", "http://localhost/")
	require.NoError(t, err)
	return conn
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub("left")
	srv := httptest.NewServer((&Server{Hub: hub}).Mux())
	defer srv.Close()

	conns := []*websocket.Conn{dial(t, srv), dial(t, srv)}
	waitClients(t, hub, len(conns))

	s := frame.Decode(frame.NewBuilder().Timer(258).Accel(0x1000, 0, -0x1000).Frame())
	require.NoError(t, hub.HandleSample(context.Background(), s))

	for _, conn := range conns {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var text string
		require.NoError(t, websocket.Message.Receive(conn, &text))
		msg, err := msgs.FormatJSON.Decode([]byte(text))
		require.NoError(t, err)
		require.Equal(t, "left", msg.Device)
		require.Equal(t, s, msg.Frame())
	}

	conns[0].Close()
	waitClients(t, hub, 1)
	conns[1].Close()
	waitClients(t, hub, 0)
}

func TestHubProtoFormat(t *testing.T) {
	hub := NewHub("right")
	hub.Format = msgs.FormatProto
	srv := httptest.NewServer((&Server{Hub: hub}).Mux())
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	waitClients(t, hub, 1)

	s := frame.Decode(frame.NewBuilder().MessageID(0x31).Gyro(1, 2, 3).Frame())
	require.NoError(t, hub.HandleSample(context.Background(), s))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var payload []byte
	require.NoError(t, websocket.Message.Receive(conn, &payload))
	msg, err := msgs.FormatProto.Decode(payload)
	require.NoError(t, err)
	require.Equal(t, "right", msg.Device)
	require.Equal(t, s, msg.Frame())
}

func TestHubWithoutClients(t *testing.T) {
	hub := NewHub("none")
	require.NoError(t, hub.HandleSample(context.Background(), frame.Sample{}))
	require.Equal(t, 0, hub.Clients())
}

func TestHubClose(t *testing.T) {
	hub := NewHub("left")
	srv := httptest.NewServer((&Server{Hub: hub}).Mux())
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	waitClients(t, hub, 1)

	require.NoError(t, hub.Close())
	waitClients(t, hub, 0)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var text string
	require.Error(t, websocket.Message.Receive(conn, &text))
}
