package websocket

import (
	"context"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/imu.go/pkg/frame"
	"github.com/robotalks/imu.go/pkg/msgs"
)

// DefaultQueueSize is the number of samples buffered per client.
const DefaultQueueSize = 16

// Hub broadcasts samples to connected websocket clients.
// It implements stream.SampleHandler. Slow clients lose samples
// instead of blocking the reader.
type Hub struct {
	Device    string
	Format    msgs.Format
	QueueSize int

	lock    sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	conn  *websocket.Conn
	queue chan []byte
}

// NewHub creates a Hub sending JSON samples.
func NewHub(device string) *Hub {
	return &Hub{
		Device:    device,
		Format:    msgs.FormatJSON,
		QueueSize: DefaultQueueSize,
		clients:   make(map[*client]struct{}),
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.clients)
}

// Handler returns the websocket handler to be mounted on a HTTP server.
func (h *Hub) Handler() websocket.Handler {
	return h.serve
}

// HandleSample implements stream.SampleHandler.
func (h *Hub) HandleSample(ctx context.Context, s frame.Sample) error {
	payload, err := h.Format.Encode(h.Device, s)
	if err != nil {
		return err
	}
	h.lock.RLock()
	defer h.lock.RUnlock()
	for c := range h.clients {
		select {
		case c.queue <- payload:
		default:
			glog.V(2).Infof("websocket %s: client too slow, sample dropped", c.conn.Request().RemoteAddr)
		}
	}
	return nil
}

// Close disconnects all clients.
func (h *Hub) Close() error {
	h.lock.RLock()
	defer h.lock.RUnlock()
	for c := range h.clients {
		c.conn.Close()
	}
	return nil
}

func (h *Hub) serve(conn *websocket.Conn) {
	size := h.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}
	c := &client{conn: conn, queue: make(chan []byte, size)}
	h.add(c)
	defer h.remove(c)
	glog.Infof("websocket client connected: %s", conn.Request().RemoteAddr)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		var msg []byte
		for {
			if err := websocket.Message.Receive(conn, &msg); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			glog.Infof("websocket client disconnected: %s", conn.Request().RemoteAddr)
			return
		case payload := <-c.queue:
			if err := h.send(conn, payload); err != nil {
				glog.Warningf("websocket %s: %v", conn.Request().RemoteAddr, err)
				return
			}
		}
	}
}

func (h *Hub) send(conn *websocket.Conn, payload []byte) error {
	if h.Format == msgs.FormatJSON {
		return websocket.Message.Send(conn, string(payload))
	}
	return websocket.Message.Send(conn, payload)
}

func (h *Hub) add(c *client) {
	h.lock.Lock()
	if h.clients == nil {
		h.clients = make(map[*client]struct{})
	}
	h.clients[c] = struct{}{}
	h.lock.Unlock()
}

func (h *Hub) remove(c *client) {
	h.lock.Lock()
	delete(h.clients, c)
	h.lock.Unlock()
}
