package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/dshills/hotkeys/internal/input"
)

const (
	// writeDeadline bounds a single write to the client.
	writeDeadline = 5 * time.Second

	// readDeadline is extended on every pong; three missed pings drop
	// the connection.
	readDeadline = 90 * time.Second

	pingInterval = 30 * time.Second

	// maxFrameSize limits incoming frames. Input frames are well under 1 KiB.
	maxFrameSize = 4 * 1024
)

// CheckOrigin accepts any origin because the server only binds to loopback
// addresses by default and webviews use custom schemes.
var upgrader = websocket.Upgrader{
	CheckOrigin:     func(*http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Options configures a Hub.
type Options struct {
	// Addr is the listen address. Defaults to "127.0.0.1:0".
	Addr string

	// Logger receives connection and protocol diagnostics.
	Logger zerolog.Logger

	// OnReset is called, serialized with event dispatch, when the client
	// blurs or disconnects. Key releases after that point are never
	// reported, so it usually resets the keyboard tracker.
	OnReset func()
}

// Hub serves a single WebSocket client and dispatches its input frames to
// a target. A new connection replaces the current one.
//
// Lock ordering: writeMu before mu. writeMu serializes writes, which
// gorilla/websocket does not allow concurrently.
type Hub struct {
	opts   Options
	target *input.Target
	log    zerolog.Logger

	// mu guards conn and url.
	mu   sync.RWMutex
	conn *websocket.Conn
	url  string

	writeMu sync.Mutex

	server *http.Server

	closeOnce sync.Once
}

// NewHub creates a hub dispatching to target. Call Start to listen.
func NewHub(target *input.Target, opts Options) *Hub {
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:0"
	}
	return &Hub{
		opts:   opts,
		target: target,
		log:    opts.Logger,
	}
}

// Start listens on the configured address and serves /ws in the
// background. Stop shuts the server down.
func (h *Hub) Start(ctx context.Context) error {
	if h.server != nil {
		return errors.New("bridge: already started")
	}

	ln, err := net.Listen("tcp", h.opts.Addr)
	if err != nil {
		return fmt.Errorf("bridge: listen: %w", err)
	}
	url := fmt.Sprintf("ws://%s/ws", ln.Addr().String())
	h.mu.Lock()
	h.url = url
	h.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWS)

	h.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.log.Error().Err(err).Msg("bridge server failed")
		}
	}()

	h.log.Info().Str("url", url).Msg("bridge listening")
	return nil
}

// Stop closes the active connection and shuts the server down.
// It is safe to call more than once.
func (h *Hub) Stop() error {
	var stopErr error
	h.closeOnce.Do(func() {
		h.mu.Lock()
		conn := h.conn
		h.conn = nil
		h.mu.Unlock()

		if conn != nil {
			h.closeConn(conn, "stop")
			h.reset()
		}

		if h.server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := h.server.Shutdown(ctx); err != nil {
				stopErr = fmt.Errorf("bridge: shutdown: %w", err)
			}
		}
		h.log.Info().Msg("bridge stopped")
	})
	return stopErr
}

// URL returns the WebSocket URL, or "" before Start.
func (h *Hub) URL() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.url
}

// Connected reports whether a client is connected.
func (h *Hub) Connected() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.conn != nil
}

// Notify tells the connected client that combo was triggered.
// It does nothing when no client is connected. A failed write closes the
// connection; the read loop then clears it. Notify may be called from a
// shortcut callback.
func (h *Hub) Notify(combo string) {
	h.mu.RLock()
	conn := h.conn
	h.mu.RUnlock()
	if conn == nil {
		return
	}

	payload, err := encodeShortcut(combo)
	if err != nil {
		h.log.Warn().Err(err).Msg("encode shortcut frame")
		return
	}
	if err := h.write(conn, websocket.TextMessage, payload); err != nil {
		h.log.Warn().Err(err).Str("combo", combo).Msg("notify failed, closing connection")
		h.closeConn(conn, "notify write error")
	}
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn.SetReadLimit(maxFrameSize)
	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		h.closeConn(conn, "initial read deadline")
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	h.mu.Lock()
	old := h.conn
	h.conn = conn
	h.mu.Unlock()

	if old != nil {
		h.closeConn(old, "replaced by new connection")
		h.reset()
	}

	log := h.log.With().Str("remote", conn.RemoteAddr().String()).Logger()
	log.Info().Msg("bridge client connected")

	pingDone := make(chan struct{})
	go h.pingLoop(conn, pingDone)

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Interface("panic", rec).
				Str("stack", string(debug.Stack())).
				Msg("bridge read loop panicked")
		}
		close(pingDone)
		h.drop(conn, "read loop exit")
		log.Info().Msg("bridge client disconnected")
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("bridge read failed")
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		f, err := decodeFrame(data)
		if err != nil {
			log.Debug().Err(err).Msg("rejected frame")
			h.sendError(conn, err.Error())
			continue
		}
		if !h.isCurrent(conn) {
			continue
		}
		h.dispatch(f)
	}
}

func (h *Hub) dispatch(f frame) {
	switch f.kind {
	case typeKeyDown, typeKeyUp:
		h.target.DispatchKey(f.key)
	case typeMouseMove:
		h.target.DispatchMouse(f.move)
	case typeBlur:
		h.reset()
	}
}

func (h *Hub) reset() {
	if h.opts.OnReset != nil {
		h.target.Run(h.opts.OnReset)
	}
}

func (h *Hub) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := h.write(conn, websocket.PingMessage, nil); err != nil {
				h.log.Debug().Err(err).Msg("ping failed")
				h.drop(conn, "ping failure")
				return
			}
		}
	}
}

func (h *Hub) sendError(conn *websocket.Conn, message string) {
	payload, err := encodeError(message)
	if err != nil {
		h.log.Debug().Err(err).Msg("encode error frame")
		return
	}
	if err := h.write(conn, websocket.TextMessage, payload); err != nil {
		h.log.Debug().Err(err).Msg("send error frame failed")
		h.drop(conn, "error write failure")
	}
}

// write sends one message with a deadline.
func (h *Hub) write(conn *websocket.Conn, msgType int, data []byte) error {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	if err := conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := conn.WriteMessage(msgType, data); err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Time{}); err != nil {
		h.log.Debug().Err(err).Msg("clear write deadline")
	}
	return nil
}

func (h *Hub) isCurrent(conn *websocket.Conn) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.conn == conn
}

// drop closes conn and, if it was the active connection, clears it and
// resets input state.
func (h *Hub) drop(conn *websocket.Conn, reason string) {
	h.mu.Lock()
	current := h.conn == conn
	if current {
		h.conn = nil
	}
	h.mu.Unlock()

	h.closeConn(conn, reason)
	if current {
		h.reset()
	}
}

// closeConn closes conn. Closing an already closed connection only logs.
func (h *Hub) closeConn(conn *websocket.Conn, reason string) {
	if err := conn.Close(); err != nil {
		h.log.Debug().Err(err).Str("reason", reason).Msg("close connection")
	}
}
