package websocket

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/golang/glog"
)

// SamplesPath is where the Hub is mounted.
const SamplesPath = "/samples"

// Config provides options for the websocket server.
type Config struct {
	// Addr is the listen address, empty disables the server.
	Addr string
}

var defaultConfig Config

func init() {
	if val, ok := os.LookupEnv("IMU_WS_ADDR"); ok {
		defaultConfig.Addr = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Addr, "ws-addr", defaultConfig.Addr, "Websocket listen address, e.g. :8080, empty to disable.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Server serves a Hub over HTTP.
type Server struct {
	Addr string
	Hub  *Hub
}

// NewServer creates the server for hub.
func (c *Config) NewServer(hub *Hub) *Server {
	return &Server{Addr: c.Addr, Hub: hub}
}

// Name implements framework.Named.
func (s *Server) Name() string {
	return "websocket " + s.Addr
}

// Mux returns the HTTP handler routing SamplesPath to the Hub.
func (s *Server) Mux() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(SamplesPath, s.Hub.Handler())
	return mux
}

// Run serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.Mux()}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	glog.Infof("websocket listening on %s%s", s.Addr, SamplesPath)
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		srv.Close()
	}
	// Shutdown does not track hijacked websocket connections.
	s.Hub.Close()
	return ctx.Err()
}
