// Package server hosts drawing sessions over WebSockets. Each connection
// either starts a new session or joins an existing one by id, sends ops as
// JSON, and receives a snapshot of its session after every op. Every client
// of a session is pushed the new snapshot whenever anyone changes it.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/osuushi/polypath/config"
	"github.com/osuushi/polypath/internal"
	"github.com/osuushi/polypath/render"
	"github.com/osuushi/polypath/session"
	"github.com/osuushi/polypath/viewport"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// Messages queued for a client before it's considered too slow
const outboxSize = 16

type Server struct {
	config         config.ServerConfig
	sessionOptions []session.Option
	log            *slog.Logger

	mu       sync.Mutex
	rooms    map[string]*room
	serveMux http.ServeMux
}

// A room is one session and the clients connected to it.
type room struct {
	id          string
	session     *session.Session
	unsubscribe func()

	mu      sync.Mutex
	clients map[*client]struct{}
	// Bumped on every change to the session
	version uint64
}

type client struct {
	id      string
	out     chan []byte
	limiter *rate.Limiter
	conn    *websocket.Conn
}

func New(c config.ServerConfig, sessionOptions ...session.Option) *Server {
	s := &Server{
		config:         c,
		sessionOptions: sessionOptions,
		log:            internal.Logger(),
		rooms:          make(map[string]*room),
	}
	s.serveMux.HandleFunc("/connect", s.connectHandler)
	s.serveMux.HandleFunc("/svg", s.svgHandler)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.serveMux.ServeHTTP(w, r)
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.config.Addr)
	}
	s.log.Info("listening", "addr", l.Addr().String())

	hs := &http.Server{Handler: s}
	errc := make(chan error, 1)
	go func() {
		errc <- hs.Serve(l)
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return hs.Shutdown(shutdownCtx)
}

// Find the room for id, or make a new one when id is empty.
func (s *Server) room(id string) (*room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" {
		if _, err := uuid.Parse(id); err != nil {
			return nil, errors.Wrapf(err, "session id %q", id)
		}
		r, ok := s.rooms[id]
		if !ok {
			return nil, errors.Errorf("no session %s", id)
		}
		return r, nil
	}

	id = uuid.NewString()
	options := append([]session.Option{session.WithLogger(s.log.With("session", id))}, s.sessionOptions...)
	r := &room{
		id:      id,
		session: session.New(options...),
		clients: make(map[*client]struct{}),
	}
	r.unsubscribe = r.session.Subscribe(r.broadcast)
	s.rooms[id] = r
	s.log.Info("session created", "session", id)
	return r, nil
}

func (s *Server) leave(r *room, c *client) {
	r.mu.Lock()
	delete(r.clients, c)
	empty := len(r.clients) == 0
	r.mu.Unlock()
	if !empty {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Someone may have joined while the lock was released
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.clients) == 0 {
		r.unsubscribe()
		delete(s.rooms, r.id)
		s.log.Info("session closed", "session", r.id)
	}
}

func (r *room) broadcast(snapshot session.Snapshot) {
	content, err := json.Marshal(newSnapshotMessage(r.id, snapshot))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.version++
	if err != nil {
		internal.Logger().Warn("marshal snapshot", "session", r.id, "error", err)
		return
	}
	for c := range r.clients {
		c.send(content)
	}
}

func (r *room) currentVersion() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

// Queue a message without blocking. A client that can't keep up is dropped.
func (c *client) send(content []byte) {
	select {
	case c.out <- content:
	default:
		c.conn.Close(websocket.StatusPolicyViolation, "connection too slow to keep up with messages")
	}
}

func (c *client) sendJSON(v interface{}) {
	content, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.send(content)
}

// connectHandler accepts a WebSocket connection. The session query parameter
// joins an existing session.
func (s *Server) connectHandler(w http.ResponseWriter, r *http.Request) {
	rm, err := s.room(r.URL.Query().Get("session"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.log.Warn("accept failed", "error", err)
		s.leave(rm, &client{})
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")

	c := &client{
		id:      uuid.NewString(),
		out:     make(chan []byte, outboxSize),
		limiter: rate.NewLimiter(rate.Limit(s.config.MessagesPerSecond), s.config.Burst),
		conn:    conn,
	}
	log := s.log.With("session", rm.id, "client", c.id)
	log.Info("client connected")

	rm.mu.Lock()
	rm.clients[c] = struct{}{}
	rm.mu.Unlock()
	defer s.leave(rm, c)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go s.clientWriter(ctx, c, log)

	c.sendJSON(newSnapshotMessage(rm.id, rm.session.Snapshot()))
	err = s.clientReader(ctx, rm, c)
	switch {
	case errors.Is(err, context.Canceled),
		websocket.CloseStatus(err) == websocket.StatusNormalClosure,
		websocket.CloseStatus(err) == websocket.StatusGoingAway:
		log.Info("client disconnected")
		conn.Close(websocket.StatusNormalClosure, "")
	default:
		log.Warn("client dropped", "error", err)
	}
}

// clientReader loops reading requests from a client until the connection
// fails.
func (s *Server) clientReader(ctx context.Context, rm *room, c *client) error {
	for {
		req, err := s.readTimeout(ctx, c.conn)
		if err != nil {
			return err
		}
		if !c.limiter.Allow() {
			c.sendJSON(errorMessage{Error: "rate limited"})
			continue
		}

		before := rm.currentVersion()
		if err := apply(rm.session, req); err != nil {
			c.sendJSON(errorMessage{Error: err.Error()})
			continue
		}
		// Changes reach every client through the subscription. When nothing
		// changed, the sender still gets an answer.
		if rm.currentVersion() == before {
			c.sendJSON(newSnapshotMessage(rm.id, rm.session.Snapshot()))
		}
	}
}

// clientWriter loops writing queued messages to a client.
func (s *Server) clientWriter(ctx context.Context, c *client, log *slog.Logger) {
	for {
		select {
		case content := <-c.out:
			if err := s.writeTimeout(ctx, c.conn, content); err != nil {
				log.Debug("write failed", "error", err)
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func apply(s *session.Session, req request) error {
	switch req.Op {
	case opAdd:
		p := session.Point{X: req.X, Y: req.Y}
		if req.CTM != nil {
			if len(req.CTM) != 6 {
				return errors.Errorf("ctm needs 6 values, got %d", len(req.CTM))
			}
			view := viewport.FromCTM(req.CTM[0], req.CTM[1], req.CTM[2], req.CTM[3], req.CTM[4], req.CTM[5])
			if !view.Invertible() {
				return errors.New("ctm is not invertible")
			}
			p = view.ToLocal(req.X, req.Y)
		}
		s.AddVertex(p)
	case opUndo:
		s.Undo()
	case opClear:
		s.Clear()
	case opTriangulate:
		s.Triangulate()
	case opShowDual:
		s.SetShowDual(req.Value)
	case opShowTriangulation:
		s.SetShowTriangulation(req.Value)
	default:
		return errors.Errorf("unknown op %q", req.Op)
	}
	return nil
}

func (s *Server) readTimeout(ctx context.Context, conn *websocket.Conn) (request, error) {
	if s.config.ReadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ReadTimeout)
		defer cancel()
	}
	var req request
	err := wsjson.Read(ctx, conn, &req)
	return req, err
}

func (s *Server) writeTimeout(ctx context.Context, conn *websocket.Conn, content []byte) error {
	if s.config.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.WriteTimeout)
		defer cancel()
	}
	return conn.Write(ctx, websocket.MessageText, content)
}

// svgHandler renders a session as an SVG document.
func (s *Server) svgHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	s.mu.Lock()
	rm, ok := s.rooms[id]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "no such session", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.WriteSVG(w, rm.session.Snapshot(), render.DefaultOptions()); err != nil {
		s.log.Warn("svg failed", "session", id, "error", err)
	}
}
