package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	_ "embed"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pixel-invaders/internal/game"
	"pixel-invaders/internal/sprite"
)

// WebSocket settings
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

//go:embed index.html
var indexHTML []byte

// WebServer serves the browser client: one world per websocket. Pixel
// frames go out as binary messages, game state as JSON.
type WebServer struct {
	addr   string
	assets *sprite.Assets
	scores *Scores
	log    *zap.Logger
}

// NewWebServer creates a web server bound to the given address.
func NewWebServer(addr string, assets *sprite.Assets, scores *Scores, log *zap.Logger) *WebServer {
	return &WebServer{
		addr:   addr,
		assets: assets,
		scores: scores,
		log:    log,
	}
}

// Start begins serving HTTP and websocket traffic.
func (s *WebServer) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/scores", s.handleScores)

	s.log.Info("web server listening", zap.String("addr", s.addr))
	return http.ListenAndServe(s.addr, mux)
}

func (s *WebServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *WebServer) handleScores(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.scores.Top(10))
}

func (s *WebServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "anonymous"
	}
	if len(name) > 24 {
		name = name[:24]
	}
	s.log.Info("websocket opened", zap.String("player", name), zap.String("remote", r.RemoteAddr))

	client := newWebClient(conn, name, s.assets, s.scores, s.log)
	go client.writePump()
	go client.readPump()
	client.run()

	s.log.Info("websocket closed", zap.String("player", name))
}

// wsMessage is one outbound websocket message.
type wsMessage struct {
	binary bool
	data   []byte
}

// clientInput is the JSON input message from the browser. Dir is level
// triggered; Fire and Restart latch until the next simulation tick.
type clientInput struct {
	Dir     string `json:"dir"` // "left", "right", or "none"
	Fire    bool   `json:"fire"`
	Restart bool   `json:"restart"`
}

type helloMessage struct {
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	TickHz int    `json:"tickHz"`
	Best   int    `json:"best"`
}

type stateMessage struct {
	Type     string `json:"type"`
	Tick     uint64 `json:"tick"`
	Score    int    `json:"score"`
	Invaders int    `json:"invaders"`
	State    string `json:"state"`
	Best     int    `json:"best"`
}

// webClient owns one websocket connection and its world.
type webClient struct {
	conn   *websocket.Conn
	name   string
	assets *sprite.Assets
	scores *Scores
	log    *zap.Logger

	mu    sync.Mutex
	input clientInput

	send chan wsMessage
	done chan struct{}
	once sync.Once
}

func newWebClient(conn *websocket.Conn, name string, assets *sprite.Assets, scores *Scores, log *zap.Logger) *webClient {
	return &webClient{
		conn:   conn,
		name:   name,
		assets: assets,
		scores: scores,
		log:    log,
		send:   make(chan wsMessage, 8),
		done:   make(chan struct{}),
	}
}

func (c *webClient) close() {
	c.once.Do(func() { close(c.done) })
}

// run drives the session's world at the fixed tick rate.
func (c *webClient) run() {
	world := game.NewWorld(c.assets)
	c.enqueueJSON(helloMessage{
		Type:   "hello",
		Width:  game.ScreenWidth,
		Height: game.ScreenHeight,
		TickHz: 60,
		Best:   c.scores.Best(),
	})

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	last := time.Now()
	submitted := false
	frame := 0

	for {
		select {
		case <-c.done:
			c.submit(world.Score())
			return
		case now := <-ticker.C:
			controls, restart := c.takeInput()
			if restart && world.State() != game.StatePlaying {
				world = game.NewWorld(c.assets)
				submitted = false
			}
			world.Update(now.Sub(last), controls)
			last = now

			if world.State() != game.StatePlaying && !submitted {
				c.submit(world.Score())
				submitted = true
			}

			frame++
			if frame%2 == 0 {
				// The draw buffer is reused each tick; the copy keeps
				// the async write from racing the next frame.
				pix := world.Draw()
				out := make([]byte, len(pix))
				copy(out, pix)
				c.enqueue(wsMessage{binary: true, data: out})
			}
			if frame%30 == 0 {
				c.enqueueJSON(stateMessage{
					Type:     "state",
					Tick:     world.Ticks(),
					Score:    world.Score(),
					Invaders: world.InvadersLeft(),
					State:    world.State().String(),
					Best:     c.scores.Best(),
				})
			}
		}
	}
}

func (c *webClient) takeInput() (game.Controls, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var controls game.Controls
	switch c.input.Dir {
	case "left":
		controls.Dir = game.DirLeft
	case "right":
		controls.Dir = game.DirRight
	}
	controls.Fire = c.input.Fire
	restart := c.input.Restart
	c.input.Fire = false
	c.input.Restart = false
	return controls, restart
}

func (c *webClient) enqueue(msg wsMessage) {
	select {
	case c.send <- msg:
	default: // drop rather than stall the simulation
	}
}

func (c *webClient) enqueueJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.enqueue(wsMessage{data: data})
}

func (c *webClient) submit(score int) {
	changed, err := c.scores.Submit(c.name, score)
	if err != nil {
		c.log.Warn("save scores", zap.Error(err))
		return
	}
	if changed {
		c.log.Info("new personal best", zap.String("player", c.name), zap.Int("score", score))
	}
}

// readPump applies input messages until the connection drops.
func (c *webClient) readPump() {
	defer func() {
		c.close()
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		var in clientInput
		if err := c.conn.ReadJSON(&in); err != nil {
			return
		}
		c.mu.Lock()
		c.input.Dir = in.Dir
		if in.Fire {
			c.input.Fire = true
		}
		if in.Restart {
			c.input.Restart = true
		}
		c.mu.Unlock()
	}
}

// writePump serializes all writes to the connection.
func (c *webClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, nil)
			return
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			kind := websocket.TextMessage
			if msg.binary {
				kind = websocket.BinaryMessage
			}
			if err := c.conn.WriteMessage(kind, msg.data); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		}
	}
}
