package display

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// WSTransport serves the terminal byte stream over a websocket, so the
// character terminal can live in a browser or on another machine. Exactly
// one viewer is painted at a time; Send blocks until a viewer is attached,
// the same wait-until-ready contract the serial line on the rig gives.
type WSTransport struct {
	addr     string
	upgrader websocket.Upgrader
	logger   *log.Logger
	viewers  chan *websocket.Conn
	current  *websocket.Conn
}

// NewWSTransport creates a websocket transport that will listen on addr
func NewWSTransport(addr string, logger *log.Logger) *WSTransport {
	return &WSTransport{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:  logger.WithPrefix("ws"),
		viewers: make(chan *websocket.Conn),
	}
}

// Listen serves the websocket endpoint until the context is cancelled
func (t *WSTransport) Listen(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/terminal", t.handleViewer)

	server := &http.Server{Addr: t.addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t.logger.Info("terminal endpoint listening", "addr", t.addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("terminal server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return server.Close()
	})
	return g.Wait()
}

func (t *WSTransport) handleViewer(w http.ResponseWriter, r *http.Request) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		t.logger.Error("viewer upgrade failed", "error", err)
		return
	}
	t.logger.Info("viewer connected", "remote", conn.RemoteAddr())
	t.viewers <- conn
}

// conn returns the connected viewer, blocking until one attaches
func (t *WSTransport) conn() *websocket.Conn {
	if t.current == nil {
		t.current = <-t.viewers
	}
	return t.current
}

func (t *WSTransport) write(p []byte) error {
	err := t.conn().WriteMessage(websocket.TextMessage, p)
	if err != nil {
		// Viewer went away; drop it and let the next Send block for a
		// replacement.
		t.logger.Warn("viewer dropped", "error", err)
		_ = t.current.Close()
		t.current = nil
	}
	return err
}

// Send streams a string to the viewer
func (t *WSTransport) Send(s string) error {
	return t.write([]byte(s))
}

// SendChar streams a single byte to the viewer
func (t *WSTransport) SendChar(c byte) error {
	return t.write([]byte{c})
}
